package controllers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "purchase-service/common/errors"
	"purchase-service/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductController exposes thin catalog CRUD. Catalog entries are normally
// created implicitly during ingestion; these endpoints exist for manual
// curation and scanner lookups.
type ProductController struct {
	service CatalogServiceAPI
}

func NewProductController(service CatalogServiceAPI) *ProductController {
	return &ProductController{service: service}
}

// GetProducts retrieves paginated catalog entries.
func (pc *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	if err != nil || perPage < 1 || perPage > MaxPageSize {
		perPage = 10
	}

	products, total, err := pc.service.ListProducts(c.Request.Context(), page, perPage)
	if err != nil {
		zap.L().Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"page":    page,
			"perPage": perPage,
			"total":   total,
		},
	})
}

// GetProductByID retrieves a single catalog entry by ID.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		zap.L().Warn("Invalid UUID format", zap.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	product, err := pc.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		zap.L().Error("Database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProductByScanCode looks a catalog entry up by its scan code, the path
// the scanner UI hits before submitting a purchase.
func (pc *ProductController) GetProductByScanCode(c *gin.Context) {
	scanCode := c.Param("code")
	if scanCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scan code is required"})
		return
	}

	product, err := pc.service.GetProductByScanCode(c.Request.Context(), scanCode)
	if err != nil {
		zap.L().Error("Database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProducts runs a text search on product names.
func (pc *ProductController) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	products, err := pc.service.SearchProducts(c.Request.Context(), query, limit)
	if err != nil {
		zap.L().Error("Error searching products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct creates a catalog entry explicitly.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		Name:          req.Name,
		Brand:         req.Brand,
		UnitPrice:     req.UnitPrice,
		PackageSize:   req.PackageSize,
		UnitOfMeasure: req.UnitOfMeasure,
		ScanCode:      req.ScanCode,
		Category:      req.Category,
	}

	if err := pc.service.CreateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, apperrors.ErrCatalogConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "A product with this scan code already exists"})
			return
		}
		zap.L().Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}
