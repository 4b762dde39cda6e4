// Command main runs database migrations for the SkillSwap backend.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "connect and report without applying migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect already auto-migrates outside production; running the command
	// explicitly covers production deploys where auto-migration is off.
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *dryRun {
		log.Println("Dry run: connection OK, no migrations applied")
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied successfully")
}
