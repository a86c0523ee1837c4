package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/services"
	"github.com/dmarkou/arboretum/internal/middleware"
)

// RequestController handles the /api/requests entry point
type RequestController struct {
	requestService *services.RequestService
	logger         zerolog.Logger
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService *services.RequestService, logger zerolog.Logger) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

// Handle dispatches the request ticket actions
func (c *RequestController) Handle(ctx *gin.Context) {
	switch resolveAction(ctx) {
	case "submit_request":
		c.submitRequest(ctx)
	case "get_user_requests":
		c.getUserRequests(ctx)
	case "get_request":
		c.getRequest(ctx)
	case "get_all_admin_requests":
		c.getAllAdminRequests(ctx)
	case "update_request_status":
		c.updateRequestStatus(ctx)
	default:
		invalidAction(ctx)
	}
}

func (c *RequestController) submitRequest(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.SubmitRequestRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Missing required fields")
		return
	}

	if err := c.requestService.SubmitRequest(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Request submitted successfully"))
}

func (c *RequestController) getUserRequests(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	requests, err := c.requestService.GetUserRequests(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RequestListResponse{
		Envelope: dto.OK(""),
		Requests: requests,
	})
}

func (c *RequestController) getRequest(ctx *gin.Context) {
	if _, ok := requireIdentity(ctx); !ok {
		return
	}

	var req dto.GetRequestRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Request ID is required")
		return
	}

	request, err := c.requestService.GetRequest(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RequestResponse{
		Envelope: dto.OK(""),
		Request:  request,
	})
}

func (c *RequestController) getAllAdminRequests(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	requests, err := c.requestService.GetAllAdminRequests(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RequestListResponse{
		Envelope: dto.OK(""),
		Requests: requests,
	})
}

func (c *RequestController) updateRequestStatus(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Request ID and status are required")
		return
	}

	if err := c.requestService.UpdateRequestStatus(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Request status updated successfully"))
}
