package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	// Get database URL
	dbURL := os.Getenv("POSTGRES_DB_URL")
	if dbURL == "" {
		log.Fatalf("POSTGRES_DB_URL environment variable not set")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	// Apply migration files in name order
	files, err := filepath.Glob("scripts/migrations/*.sql")
	if err != nil {
		log.Fatalf("Unable to list migration files: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No migration files found under scripts/migrations")
	}
	sort.Strings(files)

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Unable to read migration file %s: %v", file, err)
		}

		if _, err := pool.Exec(context.Background(), string(migrationSQL)); err != nil {
			log.Fatalf("Failed to execute migration %s: %v", file, err)
		}

		fmt.Printf("Applied %s\n", file)
	}

	fmt.Println("Migrations successfully executed!")
}
