package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret", Env: "test"}
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	swapRepo := repository.NewSwapRepository(db)

	return &Server{
		config:            cfg,
		db:                db,
		userRepo:          userRepo,
		userService:       service.NewUserService(userRepo, skillRepo, swapRepo),
		swapService:       service.NewSwapService(db, nil),
		feedbackService:   service.NewFeedbackService(db),
		moderationService: service.NewModerationService(db, nil),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func postJSON(t *testing.T, app *fiber.App, url string, body any) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, url, jsonBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	app := fiber.New()
	app.Post("/signup", s.Signup)

	valid := map[string]string{
		"first_name": "Alice",
		"last_name":  "Smith",
		"email":      "Alice@Example.com",
		"password":   "SecurePass12",
		"location":   "Berlin",
	}

	t.Run("success", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", valid)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "alice@example.com", body.User.Email, "email is normalized")
		assert.True(t, body.User.IsPublic)
		assert.False(t, body.User.IsAdmin)
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", valid)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		weak := map[string]string{
			"first_name": "Bob", "last_name": "Jones",
			"email": "bob@example.com", "password": "short",
		}
		resp := postJSON(t, app, "/signup", weak)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		bad := map[string]string{
			"first_name": "Bob", "last_name": "Jones",
			"email": "not-an-email", "password": "SecurePass12",
		}
		resp := postJSON(t, app, "/signup", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := postJSON(t, app, "/signup", map[string]string{"email": "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	app := fiber.New()
	app.Post("/login", s.Login)

	hash, err := bcrypt.GenerateFromPassword([]byte("SecurePass12"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FirstName: "Alice", LastName: "Smith",
		Email: "alice@example.com", PasswordHash: string(hash),
	}
	require.NoError(t, s.db.Create(user).Error)

	t.Run("success", func(t *testing.T) {
		resp := postJSON(t, app, "/login", map[string]string{
			"email": "ALICE@example.com ", "password": "SecurePass12",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := postJSON(t, app, "/login", map[string]string{
			"email": "alice@example.com", "password": "WrongPass12",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := postJSON(t, app, "/login", map[string]string{
			"email": "ghost@example.com", "password": "SecurePass12",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("banned account", func(t *testing.T) {
		require.NoError(t, s.db.Model(user).Update("is_banned", true).Error)
		resp := postJSON(t, app, "/login", map[string]string{
			"email": "alice@example.com", "password": "SecurePass12",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	app := fiber.New()
	app.Get("/api/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})
	app.Get("/api/ws/echo", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	user := &models.User{FirstName: "A", LastName: "B", Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, s.db.Create(user).Error)
	token, err := s.generateToken(user.ID, user.Email)
	require.NoError(t, err)

	doGet := func(url, bearer string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("valid token", func(t *testing.T) {
		resp := doGet("/api/protected", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := doGet("/api/protected", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doGet("/api/protected", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := &Server{config: &config.Config{JWTSecret: "other-secret"}}
		forged, err := other.generateToken(user.ID, user.Email)
		require.NoError(t, err)
		resp := doGet("/api/protected", forged)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("query token only accepted on websocket paths", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ws/echo?token="+token, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/protected?token="+token, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deleted account", func(t *testing.T) {
		ghost := &models.User{FirstName: "G", LastName: "H", Email: "g@example.com", PasswordHash: "x"}
		require.NoError(t, s.db.Create(ghost).Error)
		ghostToken, err := s.generateToken(ghost.ID, ghost.Email)
		require.NoError(t, err)
		require.NoError(t, s.db.Delete(ghost).Error)

		resp := doGet("/api/protected", ghostToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("banned account", func(t *testing.T) {
		require.NoError(t, s.db.Model(user).Update("is_banned", true).Error)
		resp := doGet("/api/protected", token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
