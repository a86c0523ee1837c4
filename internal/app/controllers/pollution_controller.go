package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/services"
	"github.com/dmarkou/arboretum/internal/middleware"
)

// PollutionController handles the /api/pollution entry point
type PollutionController struct {
	pollutionService *services.PollutionService
	logger           zerolog.Logger
}

// NewPollutionController creates a new PollutionController
func NewPollutionController(pollutionService *services.PollutionService, logger zerolog.Logger) *PollutionController {
	return &PollutionController{
		pollutionService: pollutionService,
		logger:           logger,
	}
}

// Handle dispatches the pollution dashboard actions
func (c *PollutionController) Handle(ctx *gin.Context) {
	switch resolveAction(ctx) {
	case "get_pollution_data":
		c.getPollutionData(ctx)
	default:
		invalidAction(ctx)
	}
}

func (c *PollutionController) getPollutionData(ctx *gin.Context) {
	var req dto.PollutionDataRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Invalid request format")
		return
	}

	data, err := c.pollutionService.GetPollutionData(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, data)
}
