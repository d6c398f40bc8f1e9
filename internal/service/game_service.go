package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/pkg/logger"
)

type GameService struct {
	gameStore GameStore
}

func NewGameService(gameStore GameStore) *GameService {
	return &GameService{gameStore: gameStore}
}

// ListRanked returns the whole catalog ordered by like count descending.
func (s *GameService) ListRanked(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameStore.ListRankedByLikes(ctx)
	if err != nil {
		logger.Log.Error("Failed to list games", zap.Error(err))
		return nil, err
	}

	logger.Log.Debug("Listed games", zap.Int("count", len(games)))
	return games, nil
}

// Search returns games matching the text, ordered by like count descending.
func (s *GameService) Search(ctx context.Context, text string) ([]models.Game, error) {
	games, err := s.gameStore.Search(ctx, text)
	if err != nil {
		logger.Log.Error("Failed to search games",
			zap.String("search_input", text),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Debug("Searched games",
		zap.String("search_input", text),
		zap.Int("count", len(games)),
	)
	return games, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*models.Game, error) {
	return s.gameStore.GetByID(ctx, id)
}

func (s *GameService) Create(ctx context.Context, game *models.Game) (*models.Game, error) {
	if err := validateGame(game); err != nil {
		logger.Log.Warn("Game validation failed",
			zap.String("name", game.Name),
			zap.Error(err),
		)
		return nil, err
	}

	created, err := s.gameStore.Create(ctx, game)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Game created",
		zap.String("game_id", created.ID.Hex()),
		zap.String("name", created.Name),
	)
	return created, nil
}

func (s *GameService) Update(ctx context.Context, id string, game *models.Game) (*models.Game, error) {
	if err := validateGame(game); err != nil {
		logger.Log.Warn("Game validation failed",
			zap.String("game_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	updated, err := s.gameStore.Update(ctx, id, game)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Game updated",
		zap.String("game_id", id),
		zap.String("name", updated.Name),
	)
	return updated, nil
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	if err := s.gameStore.Delete(ctx, id); err != nil {
		return err
	}

	logger.Log.Info("Game deleted", zap.String("game_id", id))
	return nil
}

func validateGame(game *models.Game) error {
	if game.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if len(game.Name) > models.MaxGameNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, models.MaxGameNameLen)
	}
	if len(game.Category) > models.MaxGameCategoryLen {
		return fmt.Errorf("%w: category exceeds %d characters", ErrInvalidInput, models.MaxGameCategoryLen)
	}
	if len(game.Description) > models.MaxGameDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, models.MaxGameDescriptionLen)
	}
	return nil
}
