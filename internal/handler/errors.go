package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gamescorehub/backend/internal/repository"
	"github.com/gamescorehub/backend/internal/service"
	"github.com/gamescorehub/backend/internal/utils"
	"github.com/gamescorehub/backend/pkg/logger"
)

// respondError maps service and store errors onto stable status codes.
// Unrecognized errors are logged with full detail but answered with a
// generic message so store internals never reach clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidID),
		errors.Is(err, service.ErrUserOrGameMissing),
		errors.Is(err, service.ErrLikeCapExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyLiked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, utils.ErrExpiredToken),
		errors.Is(err, utils.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	default:
		logger.Log.Error("Unhandled error in handler",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upstream service failure"})
	}
}
