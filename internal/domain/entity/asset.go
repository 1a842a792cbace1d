package entity

import (
	errs "github.com/rafaelmeira/boatvest/internal/domain/error"
)

// Asset is a catalog entry available for purchase. Price and DailyYield are
// centavos; the yield is credited once per elapsed whole day of ownership.
type Asset struct {
	ID         uint64
	Name       string
	Price      int64
	DailyYield int64
}

// Catalog is the fixed list of purchasable assets
type Catalog []Asset

// DefaultCatalog returns the platform's asset lineup
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Bote Inflável", Price: 7000, DailyYield: 1500},
		{ID: 2, Name: "Lancha Esportiva", Price: 25000, DailyYield: 6600},
		{ID: 3, Name: "Veleiro Clássico", Price: 60000, DailyYield: 17000},
		{ID: 4, Name: "Escuna", Price: 140000, DailyYield: 63000},
		{ID: 5, Name: "Catamarã de Recreio", Price: 160000, DailyYield: 100000},
		{ID: 6, Name: "Barco de Pesca Oceânica", Price: 200000, DailyYield: 156000},
		{ID: 7, Name: "Iate de Luxo", Price: 225000, DailyYield: 200000},
		{ID: 8, Name: "Iate Executivo", Price: 250000, DailyYield: 235000},
		{ID: 9, Name: "Navio de Cruzeiro", Price: 300000, DailyYield: 223000},
		{ID: 10, Name: "Super Iate", Price: 350000, DailyYield: 245000},
	}
}

// FindByID looks up a catalog entry by its identifier
func (c Catalog) FindByID(id uint64) (*Asset, error) {
	for i := range c {
		if c[i].ID == id {
			return &c[i], nil
		}
	}
	return nil, errs.ErrAssetNotFound
}
