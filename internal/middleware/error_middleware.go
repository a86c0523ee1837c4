package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/logger"
)

type errorMapping struct {
	status  int
	message string
}

// errorMappings fixes the HTTP status and user-safe message per sentinel.
// Store errors never leak into responses.
var errorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{apperrors.ErrInvalidCredentials, errorMapping{http.StatusUnauthorized, "Invalid credentials"}},
	{apperrors.ErrAccountPending, errorMapping{http.StatusForbidden, "Your account is pending activation"}},
	{apperrors.ErrAccountSuspended, errorMapping{http.StatusForbidden, "Your account has been suspended"}},
	{apperrors.ErrAccountInactive, errorMapping{http.StatusForbidden, "Account is not active"}},
	{apperrors.ErrNotAuthenticated, errorMapping{http.StatusUnauthorized, "Not authenticated"}},
	{apperrors.ErrSessionNotFound, errorMapping{http.StatusUnauthorized, "Not authenticated"}},
	{apperrors.ErrPermissionDenied, errorMapping{http.StatusForbidden, "Unauthorized access"}},
	{apperrors.ErrIdentifierExists, errorMapping{http.StatusConflict, "Email or username already exists"}},
	{apperrors.ErrUsernameTaken, errorMapping{http.StatusConflict, "Username is already taken"}},
	{apperrors.ErrWrongPassword, errorMapping{http.StatusBadRequest, "Current password is incorrect"}},
	{apperrors.ErrUserNotFound, errorMapping{http.StatusNotFound, "User not found"}},
	{apperrors.ErrTreeNotFound, errorMapping{http.StatusNotFound, "Tree not found"}},
	{apperrors.ErrTreeTypeNotFound, errorMapping{http.StatusNotFound, "Tree type not found"}},
	{apperrors.ErrTreeTypeExists, errorMapping{http.StatusConflict, "A tree type with this name already exists"}},
	{apperrors.ErrTreeTypeInUse, errorMapping{http.StatusConflict, "Cannot delete tree type that is in use"}},
	{apperrors.ErrFavoriteExists, errorMapping{http.StatusConflict, "Tree is already in favorites"}},
	{apperrors.ErrImageTooLarge, errorMapping{http.StatusBadRequest, "Image size must be less than 5MB"}},
	{apperrors.ErrUnsupportedImageType, errorMapping{http.StatusBadRequest, "Invalid image format. Only JPG, PNG, and GIF are allowed"}},
	{apperrors.ErrRequestNotFound, errorMapping{http.StatusNotFound, "Request not found"}},
	{apperrors.ErrInvalidRequestStatus, errorMapping{http.StatusBadRequest, "Invalid status"}},
	{apperrors.ErrResourceNotFound, errorMapping{http.StatusNotFound, "Resource not found"}},
	{apperrors.ErrBadRequest, errorMapping{http.StatusBadRequest, "Invalid request"}},
	{apperrors.ErrValidationFailed, errorMapping{http.StatusBadRequest, "Validation failed"}},
	{apperrors.ErrConflict, errorMapping{http.StatusConflict, "Conflict"}},
}

// HandleAPIError translates a service error into the response envelope.
// A CustomError message overrides the default for its sentinel.
func HandleAPIError(c *gin.Context, err error) {
	for _, entry := range errorMappings {
		if errors.Is(err, entry.err) {
			message := entry.mapping.message
			var customErr *apperrors.CustomError
			if errors.As(err, &customErr) && customErr.Message != "" {
				message = customErr.Message
			}
			c.JSON(entry.mapping.status, dto.Fail(message))
			return
		}
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.Fail("Server error occurred"))
}
