package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
)

func postForm(t *testing.T, handler gin.HandlerFunc, form url.Values) (int, dto.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/test", handler)

	req := httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var envelope dto.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body interface{}) (int, dto.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/test", handler)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/test", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var envelope dto.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

func TestActionDispatch(t *testing.T) {
	authController := NewAuthController(nil, zerolog.Nop())

	t.Run("unknown form action", func(t *testing.T) {
		status, envelope := postForm(t, authController.Handle, url.Values{"action": {"teleport"}})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Invalid action", envelope.Message)
	})

	t.Run("missing form action", func(t *testing.T) {
		status, envelope := postForm(t, authController.Handle, url.Values{})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid action", envelope.Message)
	})

	t.Run("unknown json action", func(t *testing.T) {
		status, envelope := postJSON(t, authController.Handle, gin.H{"action": "teleport"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid action", envelope.Message)
	})

	t.Run("gated action without a session", func(t *testing.T) {
		status, envelope := postForm(t, authController.Handle, url.Values{"action": {"get_profile"}})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Not authenticated", envelope.Message)
	})

	t.Run("json body is re-read after resolving the action", func(t *testing.T) {
		// The action resolves from the same cached body the typed binding
		// re-reads; a missing password then fails validation, not parsing.
		status, envelope := postJSON(t, authController.Handle, gin.H{
			"action":   "signin",
			"username": "maria",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Username and password are required", envelope.Message)
	})

	t.Run("form binding validates required fields", func(t *testing.T) {
		status, envelope := postForm(t, authController.Handle, url.Values{
			"action":   {"signin"},
			"username": {"maria"},
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Username and password are required", envelope.Message)
	})
}

func TestUserControllerDispatch(t *testing.T) {
	userController := NewUserController(nil, zerolog.Nop())

	t.Run("unknown action", func(t *testing.T) {
		status, envelope := postForm(t, userController.Handle, url.Values{"action": {"promote"}})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid action", envelope.Message)
	})

	t.Run("reporting requires a session with its own message", func(t *testing.T) {
		status, envelope := postJSON(t, userController.Handle, gin.H{
			"action":    "report_user",
			"target_id": 7,
			"reason":    "spam",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "You must be logged in to report a user", envelope.Message)
	})
}

func TestTreeControllerDispatch(t *testing.T) {
	treeController := NewTreeController(nil, zerolog.Nop())

	t.Run("map requires a session", func(t *testing.T) {
		status, envelope := postForm(t, treeController.Handle, url.Values{"action": {"get_all_trees"}})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Not authenticated", envelope.Message)
	})

	t.Run("single tree lookup validates its id", func(t *testing.T) {
		status, envelope := postJSON(t, treeController.Handle, gin.H{"action": "get_tree_by_id"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Tree ID is required", envelope.Message)
	})
}
