package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a shared catalog entry. Catalog entries are keyed by scan code
// and are never deleted; purchase ingestion only reads them and flags price
// drift, it never writes prices back.
type Product struct {
	ID            uuid.UUID `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Brand         string    `json:"brand" bson:"brand"`
	UnitPrice     float64   `json:"unitPrice" bson:"unit_price"`
	PackageSize   float64   `json:"packageSize" bson:"package_size"`
	PricePerUnit  *float64  `json:"pricePerUnit,omitempty" bson:"price_per_unit,omitempty"`
	UnitOfMeasure string    `json:"unitOfMeasure" bson:"unit_of_measure"`
	ScanCode      string    `json:"scanCode" bson:"scan_code"`
	Category      string    `json:"category" bson:"category"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// ComputePricePerUnit recomputes the derived price-per-unit field. It is set
// only when both unit price and package size are positive; otherwise the
// field is cleared so it is omitted from the stored document.
func (p *Product) ComputePricePerUnit() {
	if p.UnitPrice > 0 && p.PackageSize > 0 {
		ppu := p.UnitPrice / p.PackageSize
		p.PricePerUnit = &ppu
		return
	}
	p.PricePerUnit = nil
}
