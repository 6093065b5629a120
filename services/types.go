package services

import "purchase-service/models"

// RawPurchaseItem is one scanned or hand-entered item as submitted by the
// caller, before catalog reconciliation.
type RawPurchaseItem struct {
	Name                string
	Brand               string
	UnitPriceAtPurchase float64
	Quantity            int
	PackageSize         float64
	UnitOfMeasure       string
	ScanCode            string
	Category            string
}

// Resolution is the outcome of reconciling one raw item against the catalog.
type Resolution struct {
	Product      *models.Product
	Created      bool
	PriceDrifted bool
}

// PriceWarning reports that the price paid for an item differs from the
// catalog's recorded price. ItemIndex refers to the submitted batch.
type PriceWarning struct {
	ItemIndex      int     `json:"itemIndex"`
	CatalogPrice   float64 `json:"catalogPrice"`
	SubmittedPrice float64 `json:"submittedPrice"`
}
