package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

// HealthCheck reports whether the API and its database are reachable.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "ok",
		})
	}
}

// RateLimitHandler exposes the caller's remaining write allowance.
type RateLimitHandler struct {
	creationLimiter     *middleware.RateLimiter
	modificationLimiter *middleware.RateLimiter
}

func NewRateLimitHandler(creationLimiter, modificationLimiter *middleware.RateLimiter) *RateLimitHandler {
	return &RateLimitHandler{
		creationLimiter:     creationLimiter,
		modificationLimiter: modificationLimiter,
	}
}

// RegisterRoutes registers endpoints for checking rate limit status
func (h *RateLimitHandler) RegisterRoutes(router *gin.RouterGroup) {
	rateLimits := router.Group("/rate-limits")
	{
		rateLimits.GET("/recipe-creation", h.RecipeCreation)
		rateLimits.GET("/recipe-modification/:id", h.RecipeModification)
	}
}

func (h *RateLimitHandler) RecipeCreation(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	h.respondStatus(c, h.creationLimiter, owner)
}

func (h *RateLimitHandler) RecipeModification(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	h.respondStatus(c, h.modificationLimiter, owner+":"+c.Param("id"))
}

func (h *RateLimitHandler) respondStatus(c *gin.Context, limiter *middleware.RateLimiter, subject string) {
	if limiter == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	status, err := limiter.Status(c.Request.Context(), subject)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"limit":     status.Limit,
		"remaining": status.Remaining,
		"resetAt":   status.ResetAt.UnixMilli(),
		"window":    status.Window,
	})
}
