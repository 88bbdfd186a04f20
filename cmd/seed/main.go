// Command seed populates the development database with demo users,
// businesses and reviews.
package main

import (
	"flag"
	"log"

	"weconnect/internal/config"
	"weconnect/internal/database"
	"weconnect/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of users to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, *users); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d users (password %q)", *users, seed.DefaultPassword)
}
