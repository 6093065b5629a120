package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	apperrors "purchase-service/common/errors"
	"purchase-service/middleware"
	"purchase-service/repository"
	"purchase-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PurchaseController struct {
	service PurchaseServiceAPI
	cache   *AnalyticsCache
}

func NewPurchaseController(service PurchaseServiceAPI, cache *AnalyticsCache) *PurchaseController {
	return &PurchaseController{service: service, cache: cache}
}

// CreatePurchase records one purchase for the authenticated user. Every item
// is reconciled against the catalog; the response carries any price-drift
// warnings next to the persisted purchase identity.
func (pc *PurchaseController) CreatePurchase(c *gin.Context) {
	userID := c.GetString(middleware.UserContextKey)

	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one item is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultContextTimeout)
	defer cancel()

	purchase, warnings, err := pc.service.CreatePurchase(ctx, userID, toRawItems(req.Items))
	if err != nil {
		var validationErr *apperrors.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":         "Invalid purchase item",
				"itemIndex":     validationErr.ItemIndex,
				"missingFields": validationErr.MissingFields,
			})
		case errors.Is(err, apperrors.ErrCatalogConflict):
			zap.L().Warn("Catalog conflict during ingestion", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusConflict, gin.H{"error": "Catalog entry already exists, retry the purchase"})
		case errors.Is(err, context.DeadlineExceeded):
			zap.L().Error("Storage timeout during ingestion", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable"})
		default:
			zap.L().Error("Failed to create purchase", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record purchase"})
		}
		return
	}

	// A new purchase changes every cached overview for this user.
	pc.cache.InvalidateUser(c.Request.Context(), userID)

	if warnings == nil {
		warnings = []services.PriceWarning{}
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":            purchase.ID,
		"total":         purchase.Total,
		"createdAt":     purchase.CreatedAt,
		"priceWarnings": warnings,
	})
}

// ListPurchases returns a page of the user's purchase history.
func (pc *PurchaseController) ListPurchases(c *gin.Context) {
	userID := c.GetString(middleware.UserContextKey)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > MaxPageSize {
		limit = 10
	}

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

	opts := repository.PurchaseListOptions{
		Page:  page,
		Limit: limit,
		Sort:  c.Query("sort"),
		From:  from,
		To:    to,
	}

	purchases, total, err := pc.service.ListPurchases(c.Request.Context(), userID, opts)
	if err != nil {
		zap.L().Error("Failed to list purchases", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": purchases,
		"meta": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetPurchaseByID returns one purchase, scoped to its owner.
func (pc *PurchaseController) GetPurchaseByID(c *gin.Context) {
	userID := c.GetString(middleware.UserContextKey)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}

	purchase, err := pc.service.GetPurchase(c.Request.Context(), userID, id)
	if err != nil {
		zap.L().Error("Failed to fetch purchase", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase"})
		return
	}
	if purchase == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		return
	}

	c.JSON(http.StatusOK, purchase)
}
