package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/service"
)

type GameHandler struct {
	gameService *service.GameService
	likeService *service.LikeService
}

func NewGameHandler(gameService *service.GameService, likeService *service.LikeService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		likeService: likeService,
	}
}

type GameRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image"`
}

func (r *GameRequest) toModel() *models.Game {
	return &models.Game{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Image:       r.Image,
	}
}

// GetAllGames returns the catalog ranked by like count.
func (h *GameHandler) GetAllGames(c *gin.Context) {
	games, err := h.gameService.ListRanked(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// SearchGames filters the catalog by a case-insensitive substring of
// name, category or description.
func (h *GameHandler) SearchGames(c *gin.Context) {
	searchInput := c.Query("searchInput")
	games, err := h.gameService.Search(c.Request.Context(), searchInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *GameHandler) GetOneGame(c *gin.Context) {
	game, err := h.gameService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	game, err := h.gameService.Create(c.Request.Context(), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

func (h *GameHandler) UpdateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	game, err := h.gameService.Update(c.Request.Context(), c.Param("id"), req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.gameService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Game deleted",
	})
}

// LikeGame toggles the like state between the user and the game.
func (h *GameHandler) LikeGame(c *gin.Context) {
	result, err := h.likeService.ToggleLike(c.Request.Context(), c.Param("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Liked {
		c.JSON(http.StatusOK, gin.H{
			"message": "Like removed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Like added",
		"user":    result.User,
	})
}
