package testutil

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/utils"
)

// NewTestUser builds a user with a hashed password, ready to Put into a
// FakeUserStore.
func NewTestUser(username, email, password string, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Likes:        []models.LikeRef{},
	}, nil
}

// NewTestGame builds a game, ready to Put into a FakeGameStore.
func NewTestGame(name, category, description string) *models.Game {
	return &models.Game{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Category:    category,
		Description: description,
		Image:       models.DefaultGameImage,
		LikesBy:     []models.LikedBy{},
	}
}

// LikePair wires an existing like between a user and a game on both
// sides, keeping the references consistent the way a successful toggle
// would.
func LikePair(user *models.User, game *models.Game) {
	user.Likes = append(user.Likes, models.LikeRef{
		ID:   primitive.NewObjectID(),
		Game: game.ID,
	})
	game.LikesBy = append(game.LikesBy, models.LikedBy{
		ID:   primitive.NewObjectID(),
		User: user.ID,
	})
}
