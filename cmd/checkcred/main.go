package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"credcheck/config"
	"credcheck/credibility"
	"credcheck/embeddings"
	"credcheck/extract"
	"credcheck/llm"
	"credcheck/retrieval"
	"credcheck/vectorstore"

	"github.com/joho/godotenv"
)

func main() {
	log.SetOutput(os.Stderr)

	_ = godotenv.Load()

	topN := flag.Int("top", config.DefaultTopN, "Number of evidence snippets to retrieve")
	noEvidence := flag.Bool("no-evidence", false, "Skip evidence retrieval and score the article text directly")
	flag.Parse()

	model, err := llm.NewDefaultClient()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	var retriever retrieval.Retriever = retrieval.NoopRetriever{}
	if !*noEvidence {
		embedder, err := embeddings.NewDefaultProvider(os.Getenv("EMBEDDING_MODEL"))
		if err != nil {
			log.Printf("Evidence retrieval disabled: %v", err)
		} else {
			store, err := vectorstore.New(vectorstore.Config{
				Host:           config.GetEnvOrDefault("CHROMA_HOST", "localhost"),
				Port:           config.GetEnvIntOrDefault("CHROMA_PORT", 8000),
				CollectionName: config.GetEnvOrDefault("CHROMA_COLLECTION", "news"),
			})
			if err != nil {
				log.Fatalf("failed to connect to evidence store: %v", err)
			}
			defer store.Close()
			retriever = retrieval.NewVectorRetriever(store, embedder, 0)
		}
	}

	service := credibility.NewService(extract.NewReadabilityExtractor(), retriever, model)

	url := strings.TrimSpace(flag.Arg(0))
	if url == "" {
		fmt.Print("Enter the URL of the news article to check: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			log.Fatalf("failed to read URL: %v", err)
		}
		url = strings.TrimSpace(line)
	}
	if url == "" {
		log.Fatal("no URL provided")
	}

	result, err := service.Check(context.Background(), url, *topN)
	if err != nil {
		log.Fatalf("check failed: %v", err)
	}

	fmt.Println("\nExtracted article (preview):")
	fmt.Println(result.Article)
	fmt.Println()

	if len(result.Documents) > 0 {
		fmt.Printf("Evidence snippets used: %d\n", len(result.Documents))
		for _, link := range result.Links {
			fmt.Printf("  %s\n", link)
		}
		fmt.Println()
	}

	if result.Score != nil {
		fmt.Printf("Credibility Score: %d\n", *result.Score)
	} else {
		fmt.Println("Credibility Score: unavailable")
	}
	fmt.Printf("Reason: %s\n", result.Reason)
}
