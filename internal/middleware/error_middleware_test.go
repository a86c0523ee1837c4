package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
)

func runHandleAPIError(t *testing.T, err error) (int, dto.Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/test", nil)

	HandleAPIError(c, err)

	var envelope dto.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return recorder.Code, envelope
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"pending account", apperrors.ErrAccountPending, http.StatusForbidden, "Your account is pending activation"},
		{"suspended account", apperrors.ErrAccountSuspended, http.StatusForbidden, "Your account has been suspended"},
		{"missing session", apperrors.ErrSessionNotFound, http.StatusUnauthorized, "Not authenticated"},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, "Unauthorized access"},
		{"identifier conflict", apperrors.ErrIdentifierExists, http.StatusConflict, "Email or username already exists"},
		{"wrong password", apperrors.ErrWrongPassword, http.StatusBadRequest, "Current password is incorrect"},
		{"missing tree", apperrors.ErrTreeNotFound, http.StatusNotFound, "Tree not found"},
		{"species in use", apperrors.ErrTreeTypeInUse, http.StatusConflict, "Cannot delete tree type that is in use"},
		{"duplicate favorite", apperrors.ErrFavoriteExists, http.StatusConflict, "Tree is already in favorites"},
		{"oversized image", apperrors.ErrImageTooLarge, http.StatusBadRequest, "Image size must be less than 5MB"},
		{"unsupported image type", apperrors.ErrUnsupportedImageType, http.StatusBadRequest, "Invalid image format. Only JPG, PNG, and GIF are allowed"},
		{"invalid request status", apperrors.ErrInvalidRequestStatus, http.StatusBadRequest, "Invalid status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, envelope.Success)
			assert.Equal(t, tt.message, envelope.Message)
		})
	}

	t.Run("wrapped sentinels still match", func(t *testing.T) {
		status, envelope := runHandleAPIError(t, fmt.Errorf("while signing in: %w", apperrors.ErrInvalidCredentials))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid credentials", envelope.Message)
	})

	t.Run("custom message overrides the default", func(t *testing.T) {
		err := apperrors.NewForbiddenError("Only active users can access the tree map")
		status, envelope := runHandleAPIError(t, err)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "Only active users can access the tree map", envelope.Message)
	})

	t.Run("unknown errors become a generic 500", func(t *testing.T) {
		status, envelope := runHandleAPIError(t, errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Server error occurred", envelope.Message)
	})
}
