package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamescorehub/backend/internal/models"
)

// UserStore is the user-collection surface the services depend on.
// Implemented by repository.UserRepository; tests substitute an
// in-memory fake.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	AddLike(ctx context.Context, userID, gameID primitive.ObjectID) error
	RemoveLike(ctx context.Context, userID, gameID primitive.ObjectID) error
}

// GameStore is the game-collection surface the services depend on.
// Implemented by repository.GameRepository.
type GameStore interface {
	ListRankedByLikes(ctx context.Context) ([]models.Game, error)
	Search(ctx context.Context, text string) ([]models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	Create(ctx context.Context, game *models.Game) (*models.Game, error)
	Update(ctx context.Context, id string, game *models.Game) (*models.Game, error)
	Delete(ctx context.Context, id string) error
	AddLiker(ctx context.Context, gameID, userID primitive.ObjectID) error
	RemoveLiker(ctx context.Context, gameID, userID primitive.ObjectID) error
}
