package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamescorehub/backend/internal/models"
)

const (
	testSecret        = "test-secret-key-for-jwt-testing"
	testWrongSecret   = "wrong-secret-key-for-jwt-testing"
	testTokenDuration = 1 * time.Hour
)

func newTokenUser(role models.Role, likeCount int) *models.User {
	likes := make([]models.LikeRef, 0, likeCount)
	for i := 0; i < likeCount; i++ {
		likes = append(likes, models.LikeRef{
			ID:   primitive.NewObjectID(),
			Game: primitive.NewObjectID(),
		})
	}
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "testuser",
		Email:    "test@example.com",
		Role:     role,
		Likes:    likes,
	}
}

func TestGenerateToken_Success(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)

	token, err := GenerateToken(user, testSecret, testTokenDuration)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Contains(t, token, ".", "JWT token should contain dots")
}

func TestGenerateToken_LikesSnapshot(t *testing.T) {
	user := newTokenUser(models.RoleUser, 3)

	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	require.Len(t, claims.Likes, 3, "Snapshot should carry every like")
	for i, like := range claims.Likes {
		assert.Equal(t, user.Likes[i].Game.Hex(), like.Game, "Game ids should be stringified")
		assert.Equal(t, user.Likes[i].ID.Hex(), like.ID, "Like ids should be stringified")
	}
}

func TestGenerateToken_SubjectAndExpiry(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)

	token, err := GenerateToken(user, testSecret, 6*time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, user.Email, claims.Subject, "Subject should be the user's email")
	expected := time.Now().Add(6 * time.Hour)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute,
		"Expiry should be issuance time plus the requested lifetime")
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)

	token, err := GenerateToken(user, testSecret, 0)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	expected := time.Now().Add(DefaultTokenTTL)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute,
		"Zero lifetime should fall back to the default")
}

func TestGenerateToken_NegativeTTLKept(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)

	token, err := GenerateToken(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken,
		"A negative lifetime should not fall back to the default")
}

func TestValidateToken_Roles(t *testing.T) {
	for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			user := newTokenUser(role, 0)

			token, err := GenerateToken(user, testSecret, testTokenDuration)
			require.NoError(t, err)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, role, claims.Role)
			assert.Equal(t, user.Username, claims.Username)
		})
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)
	token, err := GenerateToken(user, testSecret, -1*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid.token.here",
		"not-a-jwt-token",
		"a.b",
	}

	for _, invalidToken := range invalidTokens {
		t.Run(invalidToken, func(t *testing.T) {
			claims, err := ValidateToken(invalidToken, testSecret)

			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testWrongSecret)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_TamperedToken(t *testing.T) {
	user := newTokenUser(models.RoleUser, 0)
	token, err := GenerateToken(user, testSecret, testTokenDuration)
	require.NoError(t, err)

	tamperedToken := token[:len(token)-5] + "XXXXX"

	claims, err := ValidateToken(tamperedToken, testSecret)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
