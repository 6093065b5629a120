package repository

import (
	"context"
	"time"

	"purchase-service/models"

	"github.com/google/uuid"
)

// CatalogRepo defines the operations the catalog resolver needs. Lookups
// return (nil, nil) when no document matches; Create returns
// errors.ErrCatalogConflict when the scan-code uniqueness index rejects the
// insert.
type CatalogRepo interface {
	FindByScanCode(ctx context.Context, scanCode string) (*models.Product, error)
	// FindByNameBrandUnit matches the (name, brand, unit-of-measure) triple
	// with case-insensitive whole-string equality.
	FindByNameBrandUnit(ctx context.Context, name, brand, unitOfMeasure string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Find(ctx context.Context, limit, skip int) ([]models.Product, int64, error)
	// Search runs a text search on product names.
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	EnsureIndexes(ctx context.Context) error
}

// PurchaseListOptions describes pagination and filtering for purchase listings.
type PurchaseListOptions struct {
	Page  int
	Limit int
	// Sort is a field name, "-" prefixed for descending. Defaults to
	// "-created_at".
	Sort string
	From *time.Time
	To   *time.Time
}

// PurchaseRepo defines the operations used over the append-only purchase
// history.
type PurchaseRepo interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Purchase, error)
	FindByUser(ctx context.Context, userID string, opts PurchaseListOptions) ([]models.Purchase, int64, error)
	// FindInRange returns every purchase for the user with created_at in
	// [from, to] inclusive.
	FindInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Purchase, error)
	// CreatedAtInRange returns only the creation timestamps in [from, to],
	// sorted ascending.
	CreatedAtInRange(ctx context.Context, userID string, from, to time.Time) ([]time.Time, error)
	EnsureIndexes(ctx context.Context) error
}
