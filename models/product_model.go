package models

import "github.com/shopspring/decimal"

// Brand owns a set of products.
type Brand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null"`
}

// Product is a sellable item with its own stock counter.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:150;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"size:1000"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Image       string          `json:"image" gorm:"size:500"`
	BrandID     *uint           `json:"brandId"`
	Brand       *Brand          `json:"brand,omitempty" gorm:"foreignKey:BrandID"` // read only
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products      []Product `json:"products"`
	TotalProducts int64     `json:"totalProducts"`
	HasMore       bool      `json:"hasMore"`
}
