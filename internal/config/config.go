package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURL      string
	MongoDatabase string
	ServerPort    string
	Environment   string
	Origin        string

	JWTSecret     string
	LoginTokenTTL time.Duration

	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string

	RedisURL string

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
	RateLimitBlockTime   time.Duration
}

func Load() *Config {
	// Try to load .env file, but don't fail if it doesn't exist
	// (containers use environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	cfg := &Config{
		MongoURL:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "game_score_hub"),
		ServerPort:    getEnv("SERVER_PORT", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		Origin:        getEnv("ORIGIN", "http://localhost:5173"),

		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		LoginTokenTTL: getEnvAsDuration("LOGIN_TOKEN_TTL", "6h"),

		CloudinaryName:   os.Getenv("CLOUDINARY_NAME"),
		CloudinaryKey:    os.Getenv("CLOUDINARY_KEY"),
		CloudinarySecret: os.Getenv("CLOUDINARY_SECRET"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		RateLimitBlockTime:   getEnvAsDuration("RATE_LIMIT_BLOCK_TIME", "5m"),
	}

	return cfg
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
