package controllers

import (
	"context"
	"time"

	"purchase-service/models"
	"purchase-service/repository"
	"purchase-service/services"

	"github.com/google/uuid"
)

// Default configuration values
const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// PurchaseServiceAPI defines the interface for purchase ingestion operations
type PurchaseServiceAPI interface {
	CreatePurchase(ctx context.Context, userID string, items []services.RawPurchaseItem) (*models.Purchase, []services.PriceWarning, error)
	ListPurchases(ctx context.Context, userID string, opts repository.PurchaseListOptions) ([]models.Purchase, int64, error)
	GetPurchase(ctx context.Context, userID string, id uuid.UUID) (*models.Purchase, error)
}

// AnalyticsServiceAPI defines the interface for analytics operations
type AnalyticsServiceAPI interface {
	GetOverview(ctx context.Context, userID string, filters services.AnalyticsFilters) (*models.AnalyticsOverview, error)
}

// CatalogServiceAPI defines the interface for catalog operations
type CatalogServiceAPI interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductByScanCode(ctx context.Context, scanCode string) (*models.Product, error)
	ListProducts(ctx context.Context, page, perPage int) ([]models.Product, int64, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error)
}
