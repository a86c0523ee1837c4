package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/services"
	"github.com/dmarkou/arboretum/internal/middleware"
)

// UserController handles the /api/user entry point
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// Handle dispatches the account-management actions
func (c *UserController) Handle(ctx *gin.Context) {
	switch resolveAction(ctx) {
	case "get_profile":
		c.getProfile(ctx)
	case "update_username":
		c.updateUsername(ctx)
	case "change_password":
		c.changePassword(ctx)
	case "get_all_users":
		c.getAllUsers(ctx)
	case "get_user":
		c.getUser(ctx)
	case "update_user":
		c.updateUser(ctx)
	case "report_user":
		c.reportUser(ctx)
	default:
		invalidAction(ctx)
	}
}

func (c *UserController) getProfile(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProfileResponse{
		Envelope: dto.OK(""),
		User:     profile,
	})
}

func (c *UserController) updateUsername(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUsernameRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "New username and current password are required")
		return
	}

	token, _ := middleware.TokenFrom(ctx)
	if err := c.userService.UpdateUsername(ctx.Request.Context(), identity.UserID, token, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Username updated successfully"))
}

func (c *UserController) changePassword(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Current and new password are required")
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Password changed successfully"))
}

func (c *UserController) getAllUsers(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	users, err := c.userService.GetAllUsers(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserListResponse{
		Envelope: dto.OK(""),
		Users:    users,
	})
}

func (c *UserController) getUser(ctx *gin.Context) {
	var req dto.GetUserRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Username is required")
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), req.Username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PublicProfileResponse{
		Envelope: dto.OK(""),
		User:     user,
	})
}

func (c *UserController) updateUser(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "User ID, status and role are required")
		return
	}

	if err := c.userService.UpdateUser(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("User updated successfully"))
}

func (c *UserController) reportUser(ctx *gin.Context) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Fail("You must be logged in to report a user"))
		return
	}

	var req dto.ReportUserRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Target user ID and reason are required")
		return
	}

	if err := c.userService.ReportUser(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Report submitted successfully"))
}
