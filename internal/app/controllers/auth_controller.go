package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/services"
	"github.com/dmarkou/arboretum/internal/middleware"
)

// AuthController handles the /api/auth entry point
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Handle dispatches the auth actions: signin, signup, logout, get_profile
func (c *AuthController) Handle(ctx *gin.Context) {
	switch resolveAction(ctx) {
	case "signin":
		c.signIn(ctx)
	case "signup":
		c.signUp(ctx)
	case "logout":
		c.logout(ctx)
	case "get_profile":
		c.getProfile(ctx)
	default:
		invalidAction(ctx)
	}
}

func (c *AuthController) signIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Username and password are required")
		return
	}

	user, token, err := c.authService.SignIn(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.SignInResponse{
		Envelope: dto.OK("Login successful"),
		User:     user,
	})
}

func (c *AuthController) signUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Email, username and password are required")
		return
	}

	if err := c.authService.SignUp(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Registration successful"))
}

func (c *AuthController) logout(ctx *gin.Context) {
	if token, ok := middleware.TokenFrom(ctx); ok {
		if err := c.authService.Logout(ctx.Request.Context(), token); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to destroy session")
		}
	}

	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.OK("Logout successful"))
}

func (c *AuthController) getProfile(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{
		Envelope: dto.OK(""),
		User:     profile,
	})
}
