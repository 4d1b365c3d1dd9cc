package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/utils"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetInt("user_id"), "role": c.GetString("user_role")})
	})
	router.GET("/admin", AuthMiddleware(), AdminMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return router
}

func doGet(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := doGet(setupAuthRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	w := doGet(setupAuthRouter(), "/protected", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	w := doGet(setupAuthRouter(), "/protected", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := utils.GenerateToken(7, "buyer@example.com", "customer")
	require.NoError(t, err)

	w := doGet(setupAuthRouter(), "/protected", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAdminMiddlewareDeniesCustomer(t *testing.T) {
	token, err := utils.GenerateToken(7, "buyer@example.com", "customer")
	require.NoError(t, err)

	w := doGet(setupAuthRouter(), "/admin", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	token, err := utils.GenerateToken(1, "admin@example.com", "admin")
	require.NoError(t, err)

	w := doGet(setupAuthRouter(), "/admin", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}
