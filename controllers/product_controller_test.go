package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "purchase-service/common/errors"
	"purchase-service/middleware"
	"purchase-service/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCatalogService struct {
	product   *models.Product
	products  []models.Product
	createErr error
	lastQuery string
}

func (f *fakeCatalogService) CreateProduct(_ context.Context, _ *models.Product) error {
	return f.createErr
}

func (f *fakeCatalogService) GetProduct(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	return f.product, nil
}

func (f *fakeCatalogService) GetProductByScanCode(_ context.Context, _ string) (*models.Product, error) {
	return f.product, nil
}

func (f *fakeCatalogService) ListProducts(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	return f.products, int64(len(f.products)), nil
}

func (f *fakeCatalogService) SearchProducts(_ context.Context, query string, _ int) ([]models.Product, error) {
	f.lastQuery = query
	return f.products, nil
}

func newProductRouter(svc *fakeCatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewProductController(svc)
	group := r.Group("/products", middleware.AuthMiddleware())
	group.GET("/search", controller.SearchProducts)
	group.GET("/scan/:code", controller.GetProductByScanCode)
	group.POST("/", controller.CreateProduct)
	return r
}

func TestGetProductByScanCodeNotFound(t *testing.T) {
	r := newProductRouter(&fakeCatalogService{})

	req := httptest.NewRequest(http.MethodGet, "/products/scan/7701234", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchProductsRequiresTerm(t *testing.T) {
	svc := &fakeCatalogService{}
	r := newProductRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/products/search", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastQuery)
}

func TestCreateProductConflict(t *testing.T) {
	svc := &fakeCatalogService{createErr: apperrors.ErrCatalogConflict}
	r := newProductRouter(svc)

	body := `{"name":"Milk","brand":"Alpina","unitPrice":5,"packageSize":1000,"unitOfMeasure":"ml","scanCode":"7701234","category":"Dairy"}`
	req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateProductRejectsMissingFields(t *testing.T) {
	svc := &fakeCatalogService{}
	r := newProductRouter(svc)

	body := `{"name":"Milk"}`
	req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
