package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/repository"
	"github.com/gamescorehub/backend/pkg/logger"
)

var (
	ErrUserOrGameMissing = errors.New("user or game does not exist")
	ErrLikeCapExceeded   = fmt.Errorf("like limit of %d games reached", models.MaxLikes)
	ErrAlreadyLiked      = errors.New("game already liked")
)

// ToggleResult reports the outcome of a like toggle. User is only set
// when the toggle added a like; it is the refreshed user document.
type ToggleResult struct {
	Liked bool
	User  *models.PublicUser
}

// LikeService keeps user.likes and game.likesBy mutually consistent:
// a user references a game iff the game references the user back. Both
// sides live in different collections and the store offers no
// cross-document transaction, so every toggle performs two sequential
// single-document writes, user side first, then game side. A crash
// between the two leaves the references out of sync until the next
// toggle of the same pair re-reads both sides. Concurrent toggles of
// the same pair, and concurrent toggles by the same user against the
// cap, can race for the same reason.
type LikeService struct {
	userStore UserStore
	gameStore GameStore
}

func NewLikeService(userStore UserStore, gameStore GameStore) *LikeService {
	return &LikeService{
		userStore: userStore,
		gameStore: gameStore,
	}
}

// ToggleLike flips the like state between the user and the game. Liking
// an already-liked game removes the like.
func (s *LikeService) ToggleLike(ctx context.Context, userID, gameID string) (*ToggleResult, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, s.missingOrFailed(err, "user", userID)
	}
	game, err := s.gameStore.GetByID(ctx, gameID)
	if err != nil {
		return nil, s.missingOrFailed(err, "game", gameID)
	}

	// The game side is authoritative for the current state.
	if game.LikedByUser(user.ID) {
		return s.unlike(ctx, user, game)
	}
	return s.like(ctx, user, game)
}

func (s *LikeService) unlike(ctx context.Context, user *models.User, game *models.Game) (*ToggleResult, error) {
	if err := s.userStore.RemoveLike(ctx, user.ID, game.ID); err != nil {
		logger.Log.Error("Failed to remove like from user",
			zap.String("user_id", user.ID.Hex()),
			zap.String("game_id", game.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := s.gameStore.RemoveLiker(ctx, game.ID, user.ID); err != nil {
		// User side already updated; the pair stays inconsistent until
		// the next toggle re-reads the game side.
		logger.Log.Error("Failed to remove liker from game, references out of sync",
			zap.String("user_id", user.ID.Hex()),
			zap.String("game_id", game.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Like removed",
		zap.String("user_id", user.ID.Hex()),
		zap.String("game_id", game.ID.Hex()),
	)
	return &ToggleResult{Liked: false}, nil
}

func (s *LikeService) like(ctx context.Context, user *models.User, game *models.Game) (*ToggleResult, error) {
	if len(user.Likes) >= models.MaxLikes {
		logger.Log.Warn("Like rejected: cap reached",
			zap.String("user_id", user.ID.Hex()),
			zap.String("game_id", game.ID.Hex()),
			zap.Int("likes", len(user.Likes)),
		)
		return nil, ErrLikeCapExceeded
	}

	// The user side is checked independently of the game side: the two
	// collections are updated without a transaction, so they can disagree.
	if user.HasLiked(game.ID) {
		logger.Log.Warn("Like rejected: user already references game",
			zap.String("user_id", user.ID.Hex()),
			zap.String("game_id", game.ID.Hex()),
		)
		return nil, ErrAlreadyLiked
	}

	if err := s.userStore.AddLike(ctx, user.ID, game.ID); err != nil {
		logger.Log.Error("Failed to add like to user",
			zap.String("user_id", user.ID.Hex()),
			zap.String("game_id", game.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := s.gameStore.AddLiker(ctx, game.ID, user.ID); err != nil {
		logger.Log.Error("Failed to add liker to game, references out of sync",
			zap.String("user_id", user.ID.Hex()),
			zap.String("game_id", game.ID.Hex()),
			zap.Error(err),
		)
		return nil, err
	}

	refreshed, err := s.userStore.GetByID(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Like added",
		zap.String("user_id", user.ID.Hex()),
		zap.String("game_id", game.ID.Hex()),
	)

	public := refreshed.Public()
	return &ToggleResult{Liked: true, User: &public}, nil
}

func (s *LikeService) missingOrFailed(err error, kind, id string) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		logger.Log.Warn("Like toggle rejected: "+kind+" missing", zap.String("id", id))
		return ErrUserOrGameMissing
	}
	logger.Log.Error("Failed to load "+kind, zap.String("id", id), zap.Error(err))
	return err
}
