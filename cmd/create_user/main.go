package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"agenda_backend/internal/db"
	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
	"agenda_backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "dev@example.com", "user email")
	username := flag.String("username", "dev", "username")
	password := flag.String("password", "devpassword", "password")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}

	u := &domain.User{
		Email:        *email,
		Username:     *username,
		PasswordHash: hash,
	}
	if err := repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			existing, err := repo.GetByEmail(ctx, *email)
			if err != nil {
				log.Fatalf("get existing user failed: %v", err)
			}
			log.Printf("user already exists id=%d\n", existing.ID)
			return
		}
		log.Fatalf("create user failed: %v", err)
	}

	log.Printf("user created id=%d email=%s\n", u.ID, u.Email)
}
