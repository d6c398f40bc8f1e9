package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gamescorehub/backend/internal/config"
	"github.com/gamescorehub/backend/internal/database"
	"github.com/gamescorehub/backend/internal/handler"
	"github.com/gamescorehub/backend/internal/middleware"
	"github.com/gamescorehub/backend/internal/repository"
	"github.com/gamescorehub/backend/internal/service"
	"github.com/gamescorehub/backend/internal/uploader"
	"github.com/gamescorehub/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Document store
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(ctx)

	// Redis for the rate limiter
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Object storage
	imageUploader, err := uploader.NewCloudinaryUploader(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		log.Fatalf("Failed to initialize uploader: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.LoginTokenTTL)
	gameService := service.NewGameService(gameRepo)
	likeService := service.NewLikeService(userRepo, gameRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService, likeService)
	uploadHandler := handler.NewUploadHandler(imageUploader)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(rateLimiter.Middleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Bienvenido a GameScoreHub",
		})
	})
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify", authHandler.Verify)
	}

	// Game routes: the catalog is public, mutations are not
	games := router.Group("/games")
	{
		games.GET("/getAllGames", gameHandler.GetAllGames)
		games.GET("/searchGames", gameHandler.SearchGames)
		games.GET("/getOneGame/:id", gameHandler.GetOneGame)

		liked := games.Group("")
		liked.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			liked.POST("/likeGame/:id/:userID", gameHandler.LikeGame)
		}

		admin := games.Group("")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
		{
			admin.POST("/createGame", gameHandler.CreateGame)
			admin.PUT("/updateGame/:id", gameHandler.UpdateGame)
			admin.DELETE("/deleteGame/:id", gameHandler.DeleteGame)
		}
	}

	// Upload routes
	upload := router.Group("/upload")
	upload.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
	{
		upload.POST("/image", uploadHandler.UploadImage)
	}

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
