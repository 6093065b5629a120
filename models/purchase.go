package models

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseItem is an embedded snapshot of a catalog product at the moment of
// purchase. Everything except the price actually paid and the quantity comes
// from the resolved catalog entry, so later catalog edits never rewrite
// history.
type PurchaseItem struct {
	CatalogProductID    uuid.UUID `json:"catalogProductId" bson:"catalog_product_id"`
	Name                string    `json:"name" bson:"name"`
	Brand               string    `json:"brand" bson:"brand"`
	UnitPriceAtPurchase float64   `json:"unitPriceAtPurchase" bson:"unit_price_at_purchase"`
	Quantity            int       `json:"quantity" bson:"quantity"`
	PackageSize         float64   `json:"packageSize" bson:"package_size"`
	PricePerUnit        *float64  `json:"pricePerUnit,omitempty" bson:"price_per_unit,omitempty"`
	UnitOfMeasure       string    `json:"unitOfMeasure" bson:"unit_of_measure"`
	ScanCode            string    `json:"scanCode" bson:"scan_code"`
	Category            string    `json:"category" bson:"category"`
}

// Purchase is immutable once inserted. CreatedAt is the analytics time axis.
type Purchase struct {
	ID        uuid.UUID      `json:"id" bson:"_id"`
	UserID    string         `json:"userId" bson:"user_id"`
	Items     []PurchaseItem `json:"items" bson:"items"`
	Total     float64        `json:"total" bson:"total"`
	CreatedAt time.Time      `json:"createdAt" bson:"created_at"`
}
