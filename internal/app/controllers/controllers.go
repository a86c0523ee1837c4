// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/services"
	"github.com/dmarkou/arboretum/internal/middleware"
	"github.com/dmarkou/arboretum/internal/pkg/session"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController      *AuthController
	UserController      *UserController
	TreeController      *TreeController
	RequestController   *RequestController
	PollutionController *PollutionController
}

// NewControllers initializes all controllers
func NewControllers(svc *services.Services, logger zerolog.Logger) *Controllers {
	return &Controllers{
		AuthController:      NewAuthController(svc.AuthService, logger),
		UserController:      NewUserController(svc.UserService, logger),
		TreeController:      NewTreeController(svc.TreeService, logger),
		RequestController:   NewRequestController(svc.RequestService, logger),
		PollutionController: NewPollutionController(svc.PollutionService, logger),
	}
}

// resolveAction reads the action discriminator from the form or, for JSON
// bodies, from the cached body so typed bindings can re-read it.
func resolveAction(ctx *gin.Context) string {
	if strings.HasPrefix(ctx.ContentType(), "application/json") {
		var envelope dto.ActionEnvelope
		if err := ctx.ShouldBindBodyWith(&envelope, binding.JSON); err != nil {
			return ""
		}
		return envelope.Action
	}
	return ctx.PostForm("action")
}

// bindRequest binds the typed request for the resolved action. JSON bodies
// go through the cached body; everything else binds as form data.
func bindRequest(ctx *gin.Context, obj interface{}) error {
	if strings.HasPrefix(ctx.ContentType(), "application/json") {
		return ctx.ShouldBindBodyWith(obj, binding.JSON)
	}
	return ctx.ShouldBind(obj)
}

// requireIdentity pulls the session identity or answers 401
func requireIdentity(ctx *gin.Context) (session.Identity, bool) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Fail("Not authenticated"))
		return session.Identity{}, false
	}
	return identity, true
}

func invalidAction(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid action"))
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.Fail(message))
}
