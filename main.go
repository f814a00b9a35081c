package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"credcheck/api"
	"credcheck/config"
	"credcheck/credibility"
	"credcheck/embeddings"
	"credcheck/extract"
	"credcheck/llm"
	"credcheck/retrieval"
	"credcheck/vectorstore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	if !strings.EqualFold(os.Getenv("DEBUG"), "true") {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	model, err := llm.NewDefaultClient()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	log.Printf("Using language model: %s", model.ModelName())

	// Vector-backed retrieval needs an embeddings provider and a reachable
	// store; without one the service falls back to scoring raw article text.
	var store *vectorstore.Chroma
	var retriever retrieval.Retriever = retrieval.NoopRetriever{}
	embedder, err := embeddings.NewDefaultProvider(os.Getenv("EMBEDDING_MODEL"))
	if err != nil {
		log.Printf("Evidence retrieval disabled: %v", err)
	} else {
		store, err = vectorstore.New(vectorstore.Config{
			Host:           config.GetEnvOrDefault("CHROMA_HOST", "localhost"),
			Port:           config.GetEnvIntOrDefault("CHROMA_PORT", 8000),
			CollectionName: config.GetEnvOrDefault("CHROMA_COLLECTION", "news"),
		})
		if err != nil {
			log.Fatalf("failed to connect to evidence store: %v", err)
		}
		retriever = retrieval.NewVectorRetriever(store, embedder, 0)
		log.Printf("Evidence retrieval enabled (embeddings: %s)", embedder.ModelName())
	}

	service := credibility.NewService(extract.NewReadabilityExtractor(), retriever, model)

	var evidence api.EvidenceStore
	if store != nil {
		evidence = store
	}

	r := api.NewRouter(service, evidence)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/check")
	log.Println("  GET  /api/evidence/count")
	log.Println("  GET  /api/evidence/entries")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
