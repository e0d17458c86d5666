package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mewzone/mewzone/config"
	"github.com/mewzone/mewzone/pkg/helpers"
)

var categories = []string{"Pedigree", "Mixed Breed", "Kittens", "Adults", "Show Quality"}

var breeds = []string{
	"Persian", "Maine Coon", "British Shorthair", "Ragdoll", "Bengal",
	"Siamese", "Sphynx", "Abyssinian", "Scottish Fold", "Russian Blue",
	"Norwegian Forest", "Turkish Angora", "Munchkin", "Domestic Shorthair",
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@mewzone.com"
	password := "changeme123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, phone, role, is_verified, is_staff)
		VALUES ($1, $2, 'Mew', 'Admin', '+10000000000', 'NORMAL', TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_staff = TRUE
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	for _, name := range categories {
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		if _, err := db.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, name, slug); err != nil {
			log.Fatalf("failed to seed category %s: %v", name, err)
		}
	}
	fmt.Printf("categories ensured: %d\n", len(categories))

	for _, name := range breeds {
		if _, err := db.Exec(`
			INSERT INTO breeds (name) VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			log.Fatalf("failed to seed breed %s: %v", name, err)
		}
	}
	fmt.Printf("breeds ensured: %d\n", len(breeds))
}
