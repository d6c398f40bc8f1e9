package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/repository"
	"github.com/gamescorehub/backend/internal/utils"
	"github.com/gamescorehub/backend/pkg/logger"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	userStore UserStore
	jwtSecret string
	loginTTL  time.Duration
}

func NewAuthService(userStore UserStore, jwtSecret string, loginTTL time.Duration) *AuthService {
	return &AuthService{
		userStore: userStore,
		jwtSecret: jwtSecret,
		loginTTL:  loginTTL,
	}
}

// Signup registers a new user and returns its public view. The password
// is hashed before anything is persisted; the plaintext never leaves
// this function.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, role models.Role) (*models.PublicUser, error) {
	if err := validateSignupInput(username, email, password); err != nil {
		logger.Log.Warn("Signup validation failed",
			zap.String("username", username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: role must be ADMIN or USER", ErrInvalidInput)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Likes:        []models.LikeRef{},
	}

	created, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.Log.Warn("Signup rejected: email taken", zap.String("email", email))
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Error("Failed to create user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("username", created.Username),
		zap.String("role", string(created.Role)),
	)

	public := created.Public()
	return &public, nil
}

// Login verifies credentials and issues a session token carrying a
// snapshot of the user's likes. An unknown email and a wrong password
// fail identically so the response never reveals which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Log.Warn("Login failed: unknown email", zap.String("email", email))
			return "", ErrInvalidCredentials
		}
		logger.Log.Error("Failed to look up user",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", err
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		logger.Log.Warn("Login failed: wrong password",
			zap.String("email", email),
			zap.String("user_id", user.ID.Hex()),
		)
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.loginTTL)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("username", user.Username),
	)

	return token, nil
}

// VerifySession validates a session token and returns its claims.
func (s *AuthService) VerifySession(token string) (*utils.Claims, error) {
	return utils.ValidateToken(token, s.jwtSecret)
}

func validateSignupInput(username, email, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(password) < 4 {
		return fmt.Errorf("%w: password must be at least 4 characters", ErrInvalidInput)
	}
	return nil
}
