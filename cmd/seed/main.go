// Command main seeds the database with demo data for development.
package main

import (
	"flag"
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/seed"
)

func main() {
	users := flag.Int("users", 20, "number of demo users to create")
	swaps := flag.Int("swaps", 0, "number of swap requests to create (default 2x users)")
	clean := flag.Bool("clean", false, "delete existing data before seeding")
	preset := flag.String("preset", "", "path to a YAML seed preset")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:    *users,
		NumSwaps:    *swaps,
		ShouldClean: *clean,
	}
	if *preset != "" {
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		opts.Preset = p
		if p.Users > 0 {
			opts.NumUsers = p.Users
		}
		if p.Swaps > 0 {
			opts.NumSwaps = p.Swaps
		}
	}

	seeder := seed.NewSeeder(db)
	if err := seeder.Run(opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if _, err := seed.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to ensure admin account: %v", err)
	}

	log.Printf("Demo accounts use the password %q", seed.DemoPassword)
}
