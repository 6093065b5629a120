package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePricePerUnit(t *testing.T) {
	p := Product{UnitPrice: 20, PackageSize: 100}
	p.ComputePricePerUnit()
	if assert.NotNil(t, p.PricePerUnit) {
		assert.InDelta(t, 0.2, *p.PricePerUnit, 1e-9)
	}
}

func TestComputePricePerUnitClearedWhenNotDerivable(t *testing.T) {
	p := Product{UnitPrice: 0, PackageSize: 100}
	p.ComputePricePerUnit()
	assert.Nil(t, p.PricePerUnit)

	p = Product{UnitPrice: 20, PackageSize: 0}
	stale := 0.5
	p.PricePerUnit = &stale
	p.ComputePricePerUnit()
	assert.Nil(t, p.PricePerUnit)
}
