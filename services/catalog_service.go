package services

import (
	"context"
	"math"
	"time"

	"purchase-service/models"
	"purchase-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// priceDriftThreshold is the absolute difference between the catalog price
// and the submitted price above which drift is reported. Absolute rather
// than relative so floating rounding noise on cheap items never trips it.
const priceDriftThreshold = 0.01

// CatalogService reconciles incoming purchase items against the shared
// product catalog. The catalog is append-only from the resolver's point of
// view: a price mismatch is reported, never written back.
type CatalogService struct {
	repo   repository.CatalogRepo
	logger *zap.Logger
}

func NewCatalogService(repo repository.CatalogRepo, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// Resolve finds the catalog entry an item refers to, creating one on first
// sighting. Scan code is the strongest identity signal and wins; the
// case-insensitive (name, brand, unit) triple is the fallback for items
// without a reliable code.
func (s *CatalogService) Resolve(ctx context.Context, item RawPurchaseItem) (*Resolution, error) {
	product, err := s.repo.FindByScanCode(ctx, item.ScanCode)
	if err != nil {
		return nil, err
	}

	if product == nil {
		product, err = s.repo.FindByNameBrandUnit(ctx, item.Name, item.Brand, item.UnitOfMeasure)
		if err != nil {
			return nil, err
		}
	}

	if product != nil {
		drifted := math.Abs(product.UnitPrice-item.UnitPriceAtPurchase) > priceDriftThreshold
		if drifted {
			s.logger.Info("Price drift detected",
				zap.String("scan_code", product.ScanCode),
				zap.Float64("catalog_price", product.UnitPrice),
				zap.Float64("submitted_price", item.UnitPriceAtPurchase),
			)
		}
		return &Resolution{Product: product, Created: false, PriceDrifted: drifted}, nil
	}

	now := time.Now().UTC()
	product = &models.Product{
		ID:            uuid.New(),
		Name:          item.Name,
		Brand:         item.Brand,
		UnitPrice:     item.UnitPriceAtPurchase,
		PackageSize:   item.PackageSize,
		UnitOfMeasure: item.UnitOfMeasure,
		ScanCode:      item.ScanCode,
		Category:      item.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.ComputePricePerUnit()

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog entry created",
		zap.String("scan_code", product.ScanCode),
		zap.String("name", product.Name),
	)
	return &Resolution{Product: product, Created: true, PriceDrifted: false}, nil
}

// CreateProduct persists an explicitly submitted catalog entry.
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.ID = uuid.New()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.ComputePricePerUnit()
	return s.repo.Create(ctx, product)
}

// GetProduct returns a catalog entry by its ID, or nil when absent.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// GetProductByScanCode returns a catalog entry by scan code, or nil.
func (s *CatalogService) GetProductByScanCode(ctx context.Context, scanCode string) (*models.Product, error) {
	return s.repo.FindByScanCode(ctx, scanCode)
}

// ListProducts returns one page of the catalog with the total count.
func (s *CatalogService) ListProducts(ctx context.Context, page, perPage int) ([]models.Product, int64, error) {
	return s.repo.Find(ctx, perPage, (page-1)*perPage)
}

// SearchProducts runs a text search over catalog names.
func (s *CatalogService) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	return s.repo.Search(ctx, query, limit)
}
