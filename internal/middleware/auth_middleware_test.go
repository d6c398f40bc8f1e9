package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gamescorehub/backend/internal/models"
	"github.com/gamescorehub/backend/internal/utils"
)

const authTestSecret = "middleware-test-secret"

func newProtectedRouter(adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(authTestSecret)}
	if adminOnly {
		handlers = append(handlers, AdminMiddleware())
	}
	group := router.Group("/", handlers...)
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("user_email")})
	})
	return router
}

func tokenFor(t *testing.T, role models.Role, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateToken(&models.User{
		ID:       primitive.NewObjectID(),
		Username: "mario",
		Email:    "mario@example.com",
		Role:     role,
	}, authTestSecret, ttl)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	router := newProtectedRouter(false)

	testCases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing_header", authHeader: "", wantStatus: http.StatusForbidden},
		{name: "no_bearer_prefix", authHeader: "token-without-prefix", wantStatus: http.StatusUnauthorized},
		{name: "garbage_token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "expired_token", authHeader: "Bearer " + tokenFor(t, models.RoleUser, -time.Minute), wantStatus: http.StatusUnauthorized},
		{name: "valid_token", authHeader: "Bearer " + tokenFor(t, models.RoleUser, time.Hour), wantStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	router := newProtectedRouter(true)

	t.Run("user_role_forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleUser, time.Hour))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin_role_allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleAdmin, time.Hour))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
