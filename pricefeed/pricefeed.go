// Package pricefeed provides advisor.PriceFeed implementations.
package pricefeed

import (
	"context"

	"github.com/etnz/advisor"
)

// Catalog is a feed returning the catalog prices.
type Catalog struct {
	catalog *advisor.Catalog
}

func FromCatalog(c *advisor.Catalog) *Catalog { return &Catalog{catalog: c} }

func (f *Catalog) Prices(ctx context.Context) (map[advisor.Symbol]advisor.Money, error) {
	prices := make(map[advisor.Symbol]advisor.Money, f.catalog.Len())
	for inst := range f.catalog.All() {
		prices[inst.Symbol] = inst.CurrentPrice
	}
	return prices, nil
}
