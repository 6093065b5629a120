package controllers

import (
	"context"
	"net/http"

	"purchase-service/middleware"
	"purchase-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsController struct {
	service AnalyticsServiceAPI
	cache   *AnalyticsCache
}

func NewAnalyticsController(service AnalyticsServiceAPI, cache *AnalyticsCache) *AnalyticsController {
	return &AnalyticsController{service: service, cache: cache}
}

// GetOverview returns the spending overview for the authenticated user over
// an optional from/to range. Range ordering is validated here: the analytics
// service assumes from <= to.
func (ac *AnalyticsController) GetOverview(c *gin.Context) {
	userID := c.GetString(middleware.UserContextKey)

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date"})
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date"})
		return
	}
	if from != nil && to != nil && from.After(*to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameter 'from' must be before 'to'"})
		return
	}

	if cached, ok := ac.cache.GetOverview(c.Request.Context(), userID, c.Query("from"), c.Query("to")); ok {
		c.JSON(http.StatusOK, gin.H{"data": cached})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	overview, err := ac.service.GetOverview(ctx, userID, services.AnalyticsFilters{From: from, To: to})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			zap.L().Error("Storage timeout computing overview", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable"})
			return
		}
		zap.L().Error("Failed to compute overview", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	ac.cache.SetOverviewAsync(userID, c.Query("from"), c.Query("to"), overview)

	c.JSON(http.StatusOK, gin.H{"data": overview})
}
