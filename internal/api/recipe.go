package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type RecipeHandler struct {
	recipeService       service.IRecipeService
	creationLimiter     *middleware.RateLimiter
	modificationLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a RecipeHandler. Nil limiters disable limiting.
func NewRecipeHandler(recipeService service.IRecipeService, creationLimiter, modificationLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		creationLimiter:     creationLimiter,
		modificationLimiter: modificationLimiter,
	}
}

// RegisterRoutes registers the recipe routes on an authenticated group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	create := []gin.HandlerFunc{}
	modify := []gin.HandlerFunc{}
	if h.creationLimiter != nil {
		create = append(create, h.creationLimiter.RateLimitMiddleware())
	}
	if h.modificationLimiter != nil {
		modify = append(modify, h.modificationLimiter.PerRecipeRateLimitMiddleware())
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/stats", h.GetStats)
		recipes.GET("/export", h.ExportRecipes)
		recipes.POST("/export/archive", h.ArchiveExport)
		recipes.POST("/import", h.ImportRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", chain(create, h.CreateRecipe)...)
		recipes.PUT("/:id", chain(modify, h.UpdateRecipe)...)
		recipes.PATCH("/:id", chain(modify, h.UpdateRecipe)...)
		recipes.DELETE("/:id", chain(modify, h.DeleteRecipe)...)
	}
}

func chain(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), handler)
}

// ListRecipes returns the caller's recipes, newest first. ?q= switches to
// search; ?category= and ?difficulty= narrow the listing.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	if _, ok := c.GetQuery("q"); ok {
		h.SearchRecipes(c)
		return
	}

	owner, ok := ownerID(c)
	if !ok {
		return
	}

	filter := types.RecipeFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}
	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), owner, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// SearchRecipes runs a case-insensitive substring search over the caller's
// recipes.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), owner, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	id, err := h.recipeService.CreateRecipe(c.Request.Context(), owner, &req)
	recordMutation("create", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateRecipe serves both PUT and PATCH. Either way only the fields present
// in the body are changed.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), owner, c.Param("id"), &req)
	recordMutation("update", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	err := h.recipeService.DeleteRecipe(c.Request.Context(), owner, c.Param("id"))
	recordMutation("delete", err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) GetStats(c *gin.Context) {
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

// ExportRecipes returns the caller's collection as a downloadable document.
func (h *RecipeHandler) ExportRecipes(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	doc, err := h.recipeService.ExportRecipes(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("recipes-%s.json", time.UnixMilli(doc.ExportedAt).UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// ImportRecipes accepts a bare JSON array of recipes or any object with a
// "recipes" array, such as an export document.
func (h *RecipeHandler) ImportRecipes(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, "could not read request body")
		return
	}

	var items []types.CreateRecipeRequest
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &items)
	} else {
		var req types.ImportRequest
		err = json.Unmarshal(trimmed, &req)
		items = req.Recipes
	}
	if err != nil {
		badRequest(c, "invalid import body: "+err.Error())
		return
	}

	// Each imported item counts against the creation limit. Batches the
	// service will reject by size are not charged.
	if h.creationLimiter != nil && len(items) > 0 && len(items) <= service.MaxImportBatch {
		if !h.creationLimiter.Charge(c, owner, len(items)) {
			return
		}
	}

	result, err := h.recipeService.ImportRecipes(c.Request.Context(), owner, items)
	if err != nil {
		recordMutation("import", err)
		respondError(c, err)
		return
	}
	middleware.RecipeMutations.WithLabelValues("import", "ok").Add(float64(len(result.Imported)))
	middleware.RecipeMutations.WithLabelValues("import", "invalid").Add(float64(len(result.Failed)))

	c.JSON(http.StatusOK, result)
}

// ArchiveExport uploads the caller's export to object storage and returns a
// presigned download link.
func (h *RecipeHandler) ArchiveExport(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	archive, err := h.recipeService.ArchiveExport(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, archive)
}
