// The seed binary bootstraps a local database with an admin account and
// a couple of sample bootcamps so the API is explorable out of the box.
package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/devtrails/campdirect/config"
	"github.com/devtrails/campdirect/pkg/credentials"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@campdirect.dev"
	password := "password123"
	hash, err := credentials.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, 'admin', $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Admin Account", email, hash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	pubHash, err := credentials.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var pubID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, 'publisher', $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Publisher", "publisher@campdirect.dev", pubHash).Scan(&pubID)
	if err != nil {
		log.Fatalf("failed to seed publisher: %v", err)
	}

	var bootcampID string
	err = db.QueryRow(`
		INSERT INTO bootcamps (name, slug, description, careers, latitude, longitude, city, state, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id
	`, "Devworks Bootcamp", "devworks-bootcamp",
		"Devworks is a full stack JavaScript bootcamp located in the heart of Boston that focuses on the technologies you need to get a high paying job as a web developer",
		`{"Web Development","UI/UX","Business"}`, 42.350499, -71.104028, "Boston", "MA", pubID).Scan(&bootcampID)
	if err != nil {
		log.Fatalf("failed to seed bootcamp: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO courses (title, description, weeks, tuition, minimum_skill, scholarship_available, bootcamp_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING
	`, "Full Stack Web Development",
		"In this course you will learn full stack web development, first learning all about the frontend with HTML/CSS/JS/Vue and then the backend with Node.js/Express/MongoDB",
		"12", 10000.0, "intermediate", true, bootcampID, pubID)
	if err != nil {
		log.Fatalf("failed to seed course: %v", err)
	}

	fmt.Printf("seeded bootcamp %s with a sample course\n", bootcampID)
}
