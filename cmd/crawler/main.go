package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"credcheck/common"
	"credcheck/config"
	"credcheck/embeddings"
	"credcheck/ingest"
	"credcheck/vectorstore"

	"github.com/joho/godotenv"
)

func main() {
	// Log to stderr so the archive on stdout-adjacent tooling stays clean
	log.SetOutput(os.Stderr)

	_ = godotenv.Load()

	feed := flag.String("feed", ingest.DefaultFeedPreset, "RSS feed preset name or URL (use -feeds to list presets)")
	count := flag.Int("count", ingest.DefaultCount, "Maximum number of items to fetch")
	archive := flag.String("archive", ingest.DefaultArchivePath, "Path to the feed item archive")
	listFeeds := flag.Bool("feeds", false, "List available feed presets and exit")
	flag.Parse()

	if *listFeeds {
		fmt.Println("Available feed presets:")

		names := make([]string, 0, len(ingest.FeedPresets))
		for name := range ingest.FeedPresets {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("  %-12s %s\n", name, ingest.FeedPresets[name])
		}
		fmt.Printf("\nDefault: %s\n", ingest.DefaultFeedPreset)
		os.Exit(0)
	}

	embedder, err := embeddings.NewDefaultProvider(os.Getenv("EMBEDDING_MODEL"))
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	store, err := vectorstore.New(vectorstore.Config{
		Host:           config.GetEnvOrDefault("CHROMA_HOST", "localhost"),
		Port:           config.GetEnvIntOrDefault("CHROMA_PORT", 8000),
		CollectionName: config.GetEnvOrDefault("CHROMA_COLLECTION", "news"),
	})
	if err != nil {
		log.Fatalf("failed to connect to evidence store: %v", err)
	}
	defer store.Close()

	job := ingest.NewJob(store, embedder)
	job.FeedURL = ingest.ResolveFeedURL(*feed)
	job.MaxItems = *count
	job.ArchivePath = *archive

	if bloom, err := ingest.NewRedisBloomFromEnv(); err != nil {
		log.Printf("Warning: bloom filter disabled: %v", err)
	} else if bloom != nil {
		job.Bloom = bloom
		defer bloom.Close()
	}

	ctx := context.Background()
	if err := job.Run(ctx); err != nil {
		log.Fatalf("ingestion failed: %v", err)
	}

	uploadArchive(ctx, *archive)
}

// uploadArchive pushes the rewritten archive document to S3 when configured.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX, S3_USE_PATH_STYLE=true
func uploadArchive(ctx context.Context, path string) {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Printf("S3 not configured; skipping archive upload")
		return
	}

	cfg := common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := common.NewS3(ctx, cfg)
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (upload skipped)", err)
		return
	}

	prefix := strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/")
	if prefix != "" {
		prefix += "/"
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: failed to open archive for upload: %v", err)
		return
	}
	defer f.Close()

	key := prefix + "archive/" + filepath.Base(path)
	uctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.Put(uctx, bucket, key, f, "application/json"); err != nil {
		log.Printf("Warning: S3 upload failed: %v", err)
		return
	}
	log.Printf("Uploaded archive to s3://%s/%s", bucket, key)
}
