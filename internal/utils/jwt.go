package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamescorehub/backend/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// DefaultTokenTTL applies when a caller asks for a token without a
// lifetime. Login issues longer-lived tokens (see config.LoginTokenTTL).
const DefaultTokenTTL = time.Hour

// LikeClaim is one entry of the likes snapshot embedded in a token,
// with ids stringified for the client.
type LikeClaim struct {
	Game string `json:"game"`
	ID   string `json:"_id"`
}

type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Likes    []LikeClaim `json:"likes"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the user. The subject is the
// user's email and the likes snapshot is materialized at issuance time;
// it is not refreshed when the user likes or unlikes a game later.
func GenerateToken(user *models.User, secretKey string, expiresIn time.Duration) (string, error) {
	// Zero means the caller omitted the lifetime; a negative value is
	// an explicit lifetime in the past and produces an expired token.
	if expiresIn == 0 {
		expiresIn = DefaultTokenTTL
	}

	likes := make([]LikeClaim, 0, len(user.Likes))
	for _, like := range user.Likes {
		likes = append(likes, LikeClaim{
			Game: like.Game.Hex(),
			ID:   like.ID.Hex(),
		})
	}

	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		Likes:    likes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and verifies a session token. Expired tokens
// return ErrExpiredToken; any other parse or signature failure returns
// ErrInvalidToken.
func ValidateToken(tokenString, secretKey string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(secretKey), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
