package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	recipeService service.IRecipeService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(recipeService service.IRecipeService) *DashboardHandler {
	return &DashboardHandler{recipeService: recipeService}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
	}
}

// GetStats returns the statistics snapshot for the current user
func (h *DashboardHandler) GetStats(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	stats, err := h.recipeService.GetStats(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
