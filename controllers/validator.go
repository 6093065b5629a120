package controllers

import (
	"time"

	"purchase-service/services"

	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxPageSize = 100
)

var validate = validator.New()

// PurchaseItemRequest is one raw item in a purchase submission. Field
// presence beyond JSON shape is enforced per item by the purchase service,
// which reports the offending index.
type PurchaseItemRequest struct {
	Name                string  `json:"name"`
	Brand               string  `json:"brand"`
	UnitPriceAtPurchase float64 `json:"unitPriceAtPurchase"`
	Quantity            int     `json:"quantity"`
	PackageSize         float64 `json:"packageSize"`
	UnitOfMeasure       string  `json:"unitOfMeasure"`
	ScanCode            string  `json:"scanCode"`
	Category            string  `json:"category"`
}

// CreatePurchaseRequest defines the expected structure for recording a purchase
type CreatePurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// CreateProductRequest defines the expected structure for creating a catalog entry
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Brand         string  `json:"brand" validate:"required"`
	UnitPrice     float64 `json:"unitPrice" validate:"gte=0"`
	PackageSize   float64 `json:"packageSize" validate:"required,gt=0"`
	UnitOfMeasure string  `json:"unitOfMeasure" validate:"required"`
	ScanCode      string  `json:"scanCode" validate:"required"`
	Category      string  `json:"category" validate:"required"`
}

func toRawItems(items []PurchaseItemRequest) []services.RawPurchaseItem {
	raw := make([]services.RawPurchaseItem, len(items))
	for i, item := range items {
		raw[i] = services.RawPurchaseItem{
			Name:                item.Name,
			Brand:               item.Brand,
			UnitPriceAtPurchase: item.UnitPriceAtPurchase,
			Quantity:            item.Quantity,
			PackageSize:         item.PackageSize,
			UnitOfMeasure:       item.UnitOfMeasure,
			ScanCode:            item.ScanCode,
			Category:            item.Category,
		}
	}
	return raw
}

// parseDateParam accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
