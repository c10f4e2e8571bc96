package main

import (
	"context"
	"log"
	"time"

	"usermgmt/internal/auth"
	"usermgmt/internal/config"
	"usermgmt/internal/db"
	"usermgmt/internal/model"
	"usermgmt/internal/repository"
)

// seedUser describes one demo account to insert.
type seedUser struct {
	Name     string
	Email    string
	Password string
	Status   string
	LoginAgo time.Duration // zero means never logged in
}

var seedUsers = []seedUser{
	{Name: "Alice Carter", Email: "alice@example.com", Password: "alice-password", Status: model.StatusActive, LoginAgo: 2 * time.Hour},
	{Name: "Bob Lindqvist", Email: "bob@example.com", Password: "bob-password", Status: model.StatusActive, LoginAgo: 48 * time.Hour},
	{Name: "Carol Mensah", Email: "carol@example.com", Password: "carol-password", Status: model.StatusUnverified},
	{Name: "Dmitry Orlov", Email: "dmitry@example.com", Password: "dmitry-password", Status: model.StatusBlocked, LoginAgo: 240 * time.Hour},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created := 0
	for _, s := range seedUsers {
		hash, err := auth.HashPassword(s.Password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", s.Email, err)
		}

		user := &model.User{
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: hash,
			Status:       s.Status,
		}
		if s.LoginAgo > 0 {
			at := time.Now().Add(-s.LoginAgo)
			user.LastLoginTime = &at
		}

		if err := repo.Create(ctx, user); err != nil {
			// Already seeded rows are skipped, everything else aborts.
			log.Printf("skip %s: %v", s.Email, err)
			continue
		}
		created++
	}

	log.Printf("Seed complete: %d users created", created)
}
