package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileEndpoints(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	app := fiber.New()

	alice := createHandlerTestUser(t, s, 1)
	bob := createHandlerTestUser(t, s, 2)

	app.Get("/users/me", registerAs(alice.ID, s.GetMyProfile))
	app.Put("/users/me", registerAs(alice.ID, s.UpdateMyProfile))
	app.Put("/users/me/visibility", registerAs(bob.ID, s.UpdateMyVisibility))
	app.Get("/users/:id", registerAs(alice.ID, s.GetUserProfile))

	t.Run("own profile", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/me", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, alice.ID, user.ID)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/users/me",
			jsonBody(t, map[string]string{"location": "Lisbon"}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, "Lisbon", user.Location)
		assert.Equal(t, alice.FirstName, user.FirstName)
	})

	t.Run("hidden profile reads as not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/users/me/visibility",
			jsonBody(t, map[string]bool{"is_public": false}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		getResp, err := app.Test(httptest.NewRequest(http.MethodGet, fmt.Sprintf("/users/%d", bob.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
	})

	t.Run("visibility requires an explicit flag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/users/me/visibility",
			jsonBody(t, map[string]string{}))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSkillEndpoints(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	app := fiber.New()

	alice := createHandlerTestUser(t, s, 1)
	bob := createHandlerTestUser(t, s, 2)

	app.Post("/skills/offered", registerAs(alice.ID, s.AddOfferedSkill))
	app.Delete("/skills/offered/:id", registerAs(alice.ID, s.RemoveOfferedSkill))
	app.Delete("/intruder/offered/:id", registerAs(bob.ID, s.RemoveOfferedSkill))
	app.Post("/skills/wanted", registerAs(alice.ID, s.AddWantedSkill))

	var skillID uint

	t.Run("add offered", func(t *testing.T) {
		resp := postJSON(t, app, "/skills/offered", map[string]string{
			"name": "Guitar", "category": "music",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var skill models.Skill
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&skill))
		assert.Equal(t, alice.ID, skill.UserID)
		skillID = skill.ID
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/skills/offered", map[string]string{
			"name": "Tarot", "category": "divination",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("add wanted defaults category", func(t *testing.T) {
		resp := postJSON(t, app, "/skills/wanted", map[string]string{"name": "Chess"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var skill models.SkillWanted
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&skill))
		assert.Equal(t, "other", skill.Category)
	})

	t.Run("cannot remove another member's skill", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/intruder/offered/%d", skillID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner removes skill", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/skills/offered/%d", skillID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestBrowseUsersEndpoint(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)
	app := fiber.New()

	viewer := createHandlerTestUser(t, s, 1)
	teacher := createHandlerTestUser(t, s, 2)
	require.NoError(t, s.db.Create(&models.Skill{Name: "Flamenco Guitar", Category: "music", UserID: teacher.ID}).Error)

	app.Get("/users", registerAs(viewer.ID, s.BrowseUsers))

	t.Run("skill search", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?skill=guitar", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Users []models.User `json:"users"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body.Users, 1)
		assert.Equal(t, teacher.ID, body.Users[0].ID)
	})

	t.Run("invalid category is rejected", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users?category=divination", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
