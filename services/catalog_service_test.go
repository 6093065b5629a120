package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "purchase-service/common/errors"
	"purchase-service/models"
	"purchase-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// ---- mock catalog repository ----

type mockCatalogRepo struct {
	mu        sync.Mutex
	products  []*models.Product
	findErr   error
	createErr error
	created   []*models.Product
	// delayByScanCode stalls FindByScanCode for the given code, to exercise
	// concurrent resolution order.
	delayByScanCode map[string]time.Duration
}

func (m *mockCatalogRepo) FindByScanCode(_ context.Context, scanCode string) (*models.Product, error) {
	if d, ok := m.delayByScanCode[scanCode]; ok {
		time.Sleep(d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, p := range m.products {
		if p.ScanCode == scanCode {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepo) FindByNameBrandUnit(_ context.Context, name, brand, unit string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, p := range m.products {
		if strings.EqualFold(p.Name, name) && strings.EqualFold(p.Brand, brand) && strings.EqualFold(p.UnitOfMeasure, unit) {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogRepo) Find(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (m *mockCatalogRepo) Search(_ context.Context, _ string, _ int) ([]models.Product, error) {
	return nil, nil
}

func (m *mockCatalogRepo) Create(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, product)
	m.products = append(m.products, product)
	return nil
}

func (m *mockCatalogRepo) EnsureIndexes(_ context.Context) error { return nil }

// ---- helpers ----

func catalogProduct(scanCode string, unitPrice float64) *models.Product {
	p := &models.Product{
		ID:            uuid.New(),
		Name:          "Whole Milk",
		Brand:         "Alpina",
		UnitPrice:     unitPrice,
		PackageSize:   1000,
		UnitOfMeasure: "ml",
		ScanCode:      scanCode,
		Category:      "Dairy",
	}
	p.ComputePricePerUnit()
	return p
}

func rawItem(scanCode string, price float64) services.RawPurchaseItem {
	return services.RawPurchaseItem{
		Name:                "Whole Milk",
		Brand:               "Alpina",
		UnitPriceAtPurchase: price,
		Quantity:            1,
		PackageSize:         1000,
		UnitOfMeasure:       "ml",
		ScanCode:            scanCode,
		Category:            "Dairy",
	}
}

func newCatalogService(repo *mockCatalogRepo) *services.CatalogService {
	return services.NewCatalogService(repo, zap.NewNop())
}

// ---- tests ----

func TestResolveByScanCode(t *testing.T) {
	existing := catalogProduct("7701234", 5.00)
	repo := &mockCatalogRepo{products: []*models.Product{existing}}
	svc := newCatalogService(repo)

	res, err := svc.Resolve(context.Background(), rawItem("7701234", 5.00))

	assert.NoError(t, err)
	assert.False(t, res.Created)
	assert.False(t, res.PriceDrifted)
	assert.Equal(t, existing.ID, res.Product.ID)
	assert.Empty(t, repo.created)
}

func TestResolveIsIdempotent(t *testing.T) {
	repo := &mockCatalogRepo{}
	svc := newCatalogService(repo)

	first, err := svc.Resolve(context.Background(), rawItem("7701234", 5.00))
	assert.NoError(t, err)
	assert.True(t, first.Created)

	second, err := svc.Resolve(context.Background(), rawItem("7701234", 5.00))
	assert.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Product.ID, second.Product.ID)
	assert.Len(t, repo.created, 1)
}

func TestResolveFallsBackToTriple(t *testing.T) {
	existing := catalogProduct("7701234", 5.00)
	repo := &mockCatalogRepo{products: []*models.Product{existing}}
	svc := newCatalogService(repo)

	// Different scan code, matching triple with different casing.
	item := rawItem("9999999", 5.00)
	item.Name = "WHOLE MILK"
	item.Brand = "alpina"
	item.UnitOfMeasure = "ML"

	res, err := svc.Resolve(context.Background(), item)

	assert.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, existing.ID, res.Product.ID)
}

func TestResolvePriceDriftThreshold(t *testing.T) {
	tests := []struct {
		name      string
		submitted float64
		drifted   bool
	}{
		{"exact match", 5.00, false},
		{"within threshold", 5.01, false},
		{"just over threshold", 5.011, true},
		{"well over threshold", 6.00, true},
		{"cheaper than catalog", 4.50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCatalogRepo{products: []*models.Product{catalogProduct("7701234", 5.00)}}
			svc := newCatalogService(repo)

			res, err := svc.Resolve(context.Background(), rawItem("7701234", tt.submitted))

			assert.NoError(t, err)
			assert.Equal(t, tt.drifted, res.PriceDrifted)
			// Drift is reported, never written back.
			assert.Equal(t, 5.00, res.Product.UnitPrice)
		})
	}
}

func TestResolveCreatesWithDerivedPricePerUnit(t *testing.T) {
	repo := &mockCatalogRepo{}
	svc := newCatalogService(repo)

	item := rawItem("7701234", 20)
	item.PackageSize = 100

	res, err := svc.Resolve(context.Background(), item)

	assert.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.PriceDrifted)
	if assert.NotNil(t, res.Product.PricePerUnit) {
		assert.InDelta(t, 0.2, *res.Product.PricePerUnit, 1e-9)
	}
}

func TestResolveZeroPriceHasNoPricePerUnit(t *testing.T) {
	repo := &mockCatalogRepo{}
	svc := newCatalogService(repo)

	res, err := svc.Resolve(context.Background(), rawItem("7701234", 0))

	assert.NoError(t, err)
	assert.True(t, res.Created)
	assert.Nil(t, res.Product.PricePerUnit)
}

func TestResolvePropagatesCatalogConflict(t *testing.T) {
	repo := &mockCatalogRepo{createErr: apperrors.ErrCatalogConflict}
	svc := newCatalogService(repo)

	res, err := svc.Resolve(context.Background(), rawItem("7701234", 5.00))

	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperrors.ErrCatalogConflict)
}
