package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Juantrevi/next-match/internal/auth"
	"github.com/Juantrevi/next-match/internal/config"
	"github.com/Juantrevi/next-match/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60
}

func newProtectedRouter(adminOnly bool) *gin.Engine {
	router := gin.New()
	group := router.Group("/")
	group.Use(AuthMiddleware())
	if adminOnly {
		group.Use(AdminMiddleware())
	}
	group.GET("ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": GetUserID(c)})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	router := newProtectedRouter(false)

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "garbage").Code)

	token, err := auth.GenerateToken("user-1", string(models.UserRoleMember))
	require.NoError(t, err)

	rec := doRequest(router, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user-1")
}

func TestAdminMiddleware(t *testing.T) {
	router := newProtectedRouter(true)

	memberToken, err := auth.GenerateToken("user-1", string(models.UserRoleMember))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(router, memberToken).Code)

	adminToken, err := auth.GenerateToken("admin-1", string(models.UserRoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(router, adminToken).Code)
}
