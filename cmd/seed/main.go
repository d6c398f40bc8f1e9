package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/gamescorehub/backend/internal/config"
	"github.com/gamescorehub/backend/internal/database"
	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/repository"
	"github.com/gamescorehub/backend/internal/utils"
)

var seedGames = []models.Game{
	{Name: "Super Mario", Category: "Platformer", Description: "Jump through the Mushroom Kingdom"},
	{Name: "Luigi Kart", Category: "Racing", Description: "A mario kart crossover on wheels"},
	{Name: "Zelda Quest", Category: "Adventure", Description: "Explore dungeons and solve puzzles"},
	{Name: "Space Raiders", Category: "Shooter", Description: "Defend the galaxy wave after wave"},
}

func main() {
	cfg := config.Load()

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing environment variables: ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin, err := userRepo.Create(ctx, &models.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	})
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		log.Println("Admin user already exists:", adminEmail)
	case err != nil:
		log.Fatal("Failed to create admin:", err)
	default:
		log.Println("Admin user created:", admin.Username)
	}

	for i := range seedGames {
		game, err := gameRepo.Create(ctx, &seedGames[i])
		switch {
		case errors.Is(err, repository.ErrDuplicateName):
			log.Println("Game already exists:", seedGames[i].Name)
		case err != nil:
			log.Fatal("Failed to create game:", err)
		default:
			log.Println("Game created:", game.Name)
		}
	}
}
