package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/services"
	"github.com/dmarkou/arboretum/internal/middleware"
)

// TreeController handles the /api/trees entry point
type TreeController struct {
	treeService *services.TreeService
	logger      zerolog.Logger
}

// NewTreeController creates a new TreeController
func NewTreeController(treeService *services.TreeService, logger zerolog.Logger) *TreeController {
	return &TreeController{
		treeService: treeService,
		logger:      logger,
	}
}

// Handle dispatches the tree registry, species catalogue and favorite actions
func (c *TreeController) Handle(ctx *gin.Context) {
	switch resolveAction(ctx) {
	case "get_all_trees":
		c.getAllTrees(ctx)
	case "get_tree_by_id":
		c.getTreeByID(ctx)
	case "get_tree_types":
		c.getTreeTypes(ctx)
	case "get_tree_type":
		c.getTreeType(ctx)
	case "get_tree":
		c.getTree(ctx)
	case "get_locations":
		c.getLocations(ctx)
	case "add_tree":
		c.addTree(ctx)
	case "add_tree_type":
		c.addTreeType(ctx)
	case "update_tree_type":
		c.updateTreeType(ctx)
	case "delete_tree_type":
		c.deleteTreeType(ctx)
	case "update_tree":
		c.updateTree(ctx)
	case "delete_tree":
		c.deleteTree(ctx)
	case "check_duplicate_tree_type":
		c.checkDuplicateTreeType(ctx)
	case "add_favorite":
		c.addFavorite(ctx)
	case "remove_favorite":
		c.removeFavorite(ctx)
	case "get_favorites":
		c.getFavorites(ctx)
	case "get_user_trees":
		c.getUserTrees(ctx)
	case "get_user_favorites":
		c.getUserFavorites(ctx)
	default:
		invalidAction(ctx)
	}
}

func (c *TreeController) getAllTrees(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	trees, err := c.treeService.GetAllTrees(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TreeListResponse{
		Envelope: dto.OK(""),
		Trees:    trees,
	})
}

func (c *TreeController) getTreeByID(ctx *gin.Context) {
	var req dto.IDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree ID is required")
		return
	}

	tree, err := c.treeService.GetTreeByID(ctx.Request.Context(), req.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TreeResponse{
		Envelope: dto.OK(""),
		Tree:     tree,
	})
}

func (c *TreeController) getTreeTypes(ctx *gin.Context) {
	treeTypes, err := c.treeService.GetTreeTypes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TreeTypeListResponse{
		Envelope:  dto.OK(""),
		TreeTypes: treeTypes,
	})
}

func (c *TreeController) getTreeType(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree type ID is required")
		return
	}

	treeType, err := c.treeService.GetTreeType(ctx.Request.Context(), identity.UserID, req.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TreeTypeResponse{
		Envelope: dto.OK(""),
		TreeType: treeType,
	})
}

func (c *TreeController) getTree(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree ID is required")
		return
	}

	tree, err := c.treeService.GetTree(ctx.Request.Context(), identity.UserID, req.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TreeResponse{
		Envelope: dto.OK(""),
		Tree:     tree,
	})
}

func (c *TreeController) getLocations(ctx *gin.Context) {
	locations, err := c.treeService.GetLocations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LocationListResponse{
		Envelope:  dto.OK(""),
		Locations: locations,
	})
}

func (c *TreeController) addTree(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.AddTreeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		badRequest(ctx, "Missing required fields")
		return
	}

	if _, err := c.treeService.AddTree(ctx.Request.Context(), identity, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree added successfully"))
}

func (c *TreeController) addTreeType(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.AddTreeTypeRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Missing required fields")
		return
	}

	id, err := c.treeService.AddTreeType(ctx.Request.Context(), identity.UserID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AddTreeTypeResponse{
		Envelope:   dto.OK("Tree type added successfully"),
		TreeTypeID: id,
	})
}

func (c *TreeController) updateTreeType(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTreeTypeRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Missing required fields")
		return
	}

	if err := c.treeService.UpdateTreeType(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree type updated successfully"))
}

func (c *TreeController) deleteTreeType(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree type ID is required")
		return
	}

	if err := c.treeService.DeleteTreeType(ctx.Request.Context(), identity.UserID, req.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree type deleted successfully"))
}

func (c *TreeController) updateTree(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTreeRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Missing required fields")
		return
	}

	if err := c.treeService.UpdateTree(ctx.Request.Context(), identity.UserID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree updated successfully"))
}

func (c *TreeController) deleteTree(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.IDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree ID is required")
		return
	}

	if err := c.treeService.DeleteTree(ctx.Request.Context(), identity.UserID, req.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree deleted successfully"))
}

func (c *TreeController) checkDuplicateTreeType(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CheckDuplicateTreeTypeRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Missing required fields")
		return
	}

	duplicate, err := c.treeService.CheckDuplicateTreeType(ctx.Request.Context(), identity.UserID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DuplicateCheckResponse{
		Envelope:  dto.OK(""),
		Duplicate: duplicate,
	})
}

func (c *TreeController) addFavorite(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.TreeIDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree ID is required")
		return
	}

	if err := c.treeService.AddFavorite(ctx.Request.Context(), identity.UserID, req.TreeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree added to favorites"))
}

func (c *TreeController) removeFavorite(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.TreeIDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Tree ID is required")
		return
	}

	if err := c.treeService.RemoveFavorite(ctx.Request.Context(), identity.UserID, req.TreeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK("Tree removed from favorites"))
}

func (c *TreeController) getFavorites(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	favorites, err := c.treeService.GetFavorites(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FavoriteListResponse{
		Envelope:  dto.OK(""),
		Favorites: favorites,
	})
}

func (c *TreeController) getUserTrees(ctx *gin.Context) {
	var req dto.UsernameRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "Username is required")
		return
	}

	trees, err := c.treeService.GetUserTrees(ctx.Request.Context(), req.Username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TreeListResponse{
		Envelope: dto.OK(""),
		Trees:    trees,
	})
}

func (c *TreeController) getUserFavorites(ctx *gin.Context) {
	var req dto.UserIDRequest
	if err := bindRequest(ctx, &req); err != nil {
		badRequest(ctx, "User ID is required")
		return
	}

	favorites, err := c.treeService.GetUserFavorites(ctx.Request.Context(), req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FavoriteTreeListResponse{
		Envelope: dto.OK(""),
		Trees:    favorites,
	})
}
