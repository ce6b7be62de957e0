package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/example/workwear/internal/config"
	"github.com/example/workwear/internal/database"
	"github.com/example/workwear/internal/repository"
	"github.com/example/workwear/internal/utils"
)

// create-admin stores an admin account, or resets its password when the email exists.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" {
		log.Fatal("usage: create-admin -email admin@example.com -password secret")
	}

	cfg := config.Load()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connect error: %v", err)
	}
	defer database.Close(db)

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin, err := repository.NewAdminRepo(db).Save(context.Background(), *email, hash)
	if err != nil {
		log.Fatalf("failed to save admin: %v", err)
	}

	log.Printf("admin %s saved (id %d)", admin.Email, admin.ID)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		log.Println("note: ADMIN_EMAIL and ADMIN_PASSWORD are set and take precedence over stored accounts")
	}
}
