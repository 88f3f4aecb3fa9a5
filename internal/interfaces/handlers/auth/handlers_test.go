package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	authsvc "lumina-backend/internal/application/auth"
	"lumina-backend/internal/domain"
	"lumina-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserFinder for tests: returns the configured user or error.
type fakeUserFinder struct {
	user *domain.User
}

func (f *fakeUserFinder) FindByEmailAndPassword(email, password string) (*domain.User, error) {
	if f.user != nil && f.user.Email == email && password == "password123" {
		return f.user, nil
	}
	if f.user != nil && f.user.Email == email {
		return nil, authsvc.ErrIncorrectPassword
	}
	return nil, authsvc.ErrInvalidEmail
}

func setupAuthHandlers(t *testing.T, finder authsvc.UserFinder) (*Handlers, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	h := &Handlers{
		UserFinder: finder,
		Rdb:        rdb,
		Config: middleware.SessionConfig{
			AllowCrossSiteDev: false,
			IsProduction:      false,
		},
	}
	return h, rdb
}

func TestLogin_MissingCredentials(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "a@b.com"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "admin@lumina.test"}
	h, _ := setupAuthHandlers(t, &fakeUserFinder{user: user})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "admin@lumina.test", "password": "nope"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_Success_SetsCookieAndTracksSession(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "admin@lumina.test"}
	h, rdb := setupAuthHandlers(t, &fakeUserFinder{user: user})
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "admin@lumina.test", "password": "password123"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookieVal string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookieVal = c.Value
		}
	}
	require.NotEmpty(t, cookieVal)

	members, err := rdb.SMembers(req.Context(), "user_sessions:"+user.ID.String()).Result()
	require.NoError(t, err)
	assert.Contains(t, members, cookieVal)
}

func TestMe_NotAuthenticated(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Get("/me", h.Me)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_WithSessionUser(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": "550e8400-e29b-41d4-a716-446655440000",
			"email":   "admin@lumina.test",
		})
		return c.Next()
	})
	app.Get("/me", h.Me)

	req := httptest.NewRequest("GET", "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])
}

func TestLogout_ClearsSession(t *testing.T) {
	h, rdb := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_id", "sess-1")
		c.Locals("user", map[string]interface{}{"user_id": "u-1", "email": "a@b.com"})
		return c.Next()
	})
	app.Delete("/logout", h.Logout)

	ctx := httptest.NewRequest("DELETE", "/logout", nil).Context()
	require.NoError(t, rdb.Set(ctx, middleware.SessionRedisPrefix+"sess-1", "{}", 0).Err())
	require.NoError(t, rdb.SAdd(ctx, "user_sessions:u-1", "sess-1").Err())

	req := httptest.NewRequest("DELETE", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	exists, err := rdb.Exists(ctx, middleware.SessionRedisPrefix+"sess-1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}
