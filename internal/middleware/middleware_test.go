package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cuattro/internal/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testTokens = auth.TokenConfig{Secret: []byte("test-secret-key-for-testing-only")}

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(testTokens, zap.NewNop()))
	handlers := append(extra, func(c *gin.Context) {
		p := auth.PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"userID": p.Subject, "userEmail": p.Email})
	})
	router.GET("/test", handlers...)
	return router
}

func serve(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, role auth.Role) string {
	t.Helper()
	token, err := auth.GenerateToken(testTokens, auth.Principal{
		Subject: "test-user-id",
		Email:   "test@example.com",
		Role:    role,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	w := serve(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	w := serve(protectedRouter(), "InvalidFormat")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w := serve(protectedRouter(), "Bearer invalid_token_xyz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	w := serve(protectedRouter(), "Bearer "+tokenFor(t, auth.RoleCliente))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-user-id")
}

func TestRequireStaff(t *testing.T) {
	r := protectedRouter(RequireStaff())

	assert.Equal(t, http.StatusForbidden, serve(r, "Bearer "+tokenFor(t, auth.RoleCliente)).Code)
	assert.Equal(t, http.StatusOK, serve(r, "Bearer "+tokenFor(t, auth.RoleFuncionario)).Code)
	assert.Equal(t, http.StatusOK, serve(r, "Bearer "+tokenFor(t, auth.RoleAdmin)).Code)
}

func TestRequireRole_WithoutAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/test", RequireRole(auth.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, serve(router, "").Code)
}

func TestRateLimiter_Window(t *testing.T) {
	rl := NewRateLimiter(2, 50*time.Millisecond)
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "k"))
	assert.True(t, rl.Allow(ctx, "k"))
	assert.False(t, rl.Allow(ctx, "k"))
	assert.True(t, rl.Allow(ctx, "other"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow(ctx, "k"))

	time.Sleep(60 * time.Millisecond)
	rl.Cleanup()
	assert.Empty(t, rl.entries)
}

func TestRedisRateLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRedisRateLimiter(client, 2, time.Hour, zap.NewNop())
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "ai:u1"))
	assert.True(t, rl.Allow(ctx, "ai:u1"))
	assert.False(t, rl.Allow(ctx, "ai:u1"))
	assert.True(t, rl.Allow(ctx, "ai:u2"))

	mr.Close()
	assert.True(t, rl.Allow(ctx, "ai:u1"), "fails open when redis is down")
}

func TestRateLimit_Middleware(t *testing.T) {
	router := gin.New()
	router.GET("/test", RateLimit(NewRateLimiter(1, time.Minute), "ai"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, serve(router, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, "").Code)
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/boom", entries[2].ContextMap()["path"])
}

func bearerFor(t *testing.T, subject string) string {
	t.Helper()
	token, err := auth.GenerateToken(testTokens, auth.Principal{Subject: subject}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRateLimit_KeyedByAuthenticatedUser(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/test", AuthMiddleware(testTokens, nil), RateLimit(NewRateLimiter(1, time.Minute), "ai"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	ana, bia := bearerFor(t, "ana"), bearerFor(t, "bia")
	assert.Equal(t, http.StatusOK, serve(router, ana).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, ana).Code)
	assert.Equal(t, http.StatusOK, serve(router, bia).Code, "each user has its own budget")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "ana", entries[0].ContextMap()["user_id"])
	assert.Equal(t, "bia", entries[2].ContextMap()["user_id"])
}
