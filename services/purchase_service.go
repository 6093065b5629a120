package services

import (
	"context"
	"sync"
	"time"

	apperrors "purchase-service/common/errors"
	"purchase-service/models"
	"purchase-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService assembles raw item batches into persisted purchases. Each
// item is reconciled against the catalog, enriched with the canonical catalog
// attributes, and the batch is written as one immutable document.
type PurchaseService struct {
	repo    repository.PurchaseRepo
	catalog *CatalogService
	logger  *zap.Logger
}

func NewPurchaseService(repo repository.PurchaseRepo, catalog *CatalogService, logger *zap.Logger) *PurchaseService {
	return &PurchaseService{repo: repo, catalog: catalog, logger: logger}
}

// CreatePurchase validates, resolves, enriches and persists one batch of
// items for a user. Items are resolved concurrently but the persisted item
// sequence and the warning indexes keep the caller's order. Any failing item
// fails the whole call and no purchase is written; catalog entries already
// created for earlier items in the same batch are kept (catalog creation is
// idempotent on retry, the purchase document is the unit of atomicity).
func (s *PurchaseService) CreatePurchase(ctx context.Context, userID string, items []RawPurchaseItem) (*models.Purchase, []PriceWarning, error) {
	if err := validateItems(items); err != nil {
		return nil, nil, err
	}

	resolutions := make([]*Resolution, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			resolutions[idx], errs[idx] = s.catalog.Resolve(ctx, items[idx])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			s.logger.Error("Item resolution failed",
				zap.String("user_id", userID),
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return nil, nil, err
		}
	}

	enriched := make([]models.PurchaseItem, len(items))
	var warnings []PriceWarning
	var total float64

	for i, item := range items {
		res := resolutions[i]
		product := res.Product

		// Canonical attributes come from the catalog; the price paid and
		// the quantity stay exactly as submitted.
		enriched[i] = models.PurchaseItem{
			CatalogProductID:    product.ID,
			Name:                product.Name,
			Brand:               product.Brand,
			UnitPriceAtPurchase: item.UnitPriceAtPurchase,
			Quantity:            item.Quantity,
			PackageSize:         product.PackageSize,
			PricePerUnit:        product.PricePerUnit,
			UnitOfMeasure:       product.UnitOfMeasure,
			ScanCode:            product.ScanCode,
			Category:            product.Category,
		}
		total += item.UnitPriceAtPurchase * float64(item.Quantity)

		if res.PriceDrifted {
			warnings = append(warnings, PriceWarning{
				ItemIndex:      i,
				CatalogPrice:   product.UnitPrice,
				SubmittedPrice: item.UnitPriceAtPurchase,
			})
		}
	}

	purchase := &models.Purchase{
		ID:        uuid.New(),
		UserID:    userID,
		Items:     enriched,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, purchase); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Purchase created",
		zap.String("user_id", userID),
		zap.String("purchase_id", purchase.ID.String()),
		zap.Int("items", len(enriched)),
		zap.Float64("total", total),
		zap.Int("price_warnings", len(warnings)),
	)
	return purchase, warnings, nil
}

// ListPurchases returns one page of the user's purchase history.
func (s *PurchaseService) ListPurchases(ctx context.Context, userID string, opts repository.PurchaseListOptions) ([]models.Purchase, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}
	return s.repo.FindByUser(ctx, userID, opts)
}

// GetPurchase returns one purchase scoped to its owner, or nil when absent.
func (s *PurchaseService) GetPurchase(ctx context.Context, userID string, id uuid.UUID) (*models.Purchase, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// validateItems enforces required-field presence per item before anything
// touches the store. The first incomplete item fails the batch.
func validateItems(items []RawPurchaseItem) error {
	for i, item := range items {
		var missing []string
		if item.Name == "" {
			missing = append(missing, "name")
		}
		if item.Brand == "" {
			missing = append(missing, "brand")
		}
		if item.UnitPriceAtPurchase < 0 {
			missing = append(missing, "unitPriceAtPurchase")
		}
		if item.Quantity < 1 {
			missing = append(missing, "quantity")
		}
		if item.PackageSize <= 0 {
			missing = append(missing, "packageSize")
		}
		if item.UnitOfMeasure == "" {
			missing = append(missing, "unitOfMeasure")
		}
		if item.ScanCode == "" {
			missing = append(missing, "scanCode")
		}
		if item.Category == "" {
			missing = append(missing, "category")
		}
		if len(missing) > 0 {
			return &apperrors.ValidationError{ItemIndex: i, MissingFields: missing}
		}
	}
	return nil
}
