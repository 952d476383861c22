package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presenceRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPresenceEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	manager := NewManager()
	go manager.Run()

	alice := newTestClient(manager, "user-a")
	register(t, manager, alice)

	handler := NewWebSocketHandler(manager, nil)

	router := gin.New()
	router.GET("/presence", func(c *gin.Context) { c.Set("userID", "viewer") }, handler.Presence)

	rec := presenceRequest(router, "/presence")
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		UserIDs []string `json:"userIds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []string{"user-a"}, list.UserIDs)

	assert.Contains(t, presenceRequest(router, "/presence?userId=user-a").Body.String(), `"online":true`)
	assert.Contains(t, presenceRequest(router, "/presence?userId=user-b").Body.String(), `"online":false`)
}

func TestPresenceRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewWebSocketHandler(NewManager(), nil)
	router := gin.New()
	router.GET("/presence", handler.Presence)

	assert.Equal(t, http.StatusUnauthorized, presenceRequest(router, "/presence").Code)
}
