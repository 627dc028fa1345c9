// cmd/stubapi/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"mediastore/internal/stubapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	store := stubapi.NewStore()
	if getEnv("STUB_SEED", "true") == "true" {
		if err := stubapi.Seed(store); err != nil {
			log.Fatalf("Failed to seed stub store: %v", err)
		}
		log.Println("Seeded demo data (admin/admin123, alice/alice123)")
	}

	server := stubapi.NewServer(store, getEnv("JWT_SECRET", "stub-dev-secret"))

	port := getEnv("PORT", "9760")
	fmt.Printf("🚀 Starting media store stub backend on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, server.Handler()))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
