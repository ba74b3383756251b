package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pelito1/PrimeMarket-back/models"
)

type seedProduct struct {
	name     string
	price    string
	stock    int
	brand    string
	category string
}

var (
	seedBrands     = []string{"Acme", "Northwind"}
	seedCategories = []string{"Electronics", "Home"}
	seedProducts   = []seedProduct{
		{name: "Wireless Headphones", price: "59.90", stock: 25, brand: "Acme", category: "Electronics"},
		{name: "USB-C Charger", price: "19.99", stock: 100, brand: "Acme", category: "Electronics"},
		{name: "Desk Lamp", price: "34.50", stock: 40, brand: "Northwind", category: "Home"},
	}
)

// Seed inserts a small sample catalog. Rows that already exist by name are
// left untouched, so it is safe to run on every start-up.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		brandIDs := make(map[string]uint, len(seedBrands))
		for _, name := range seedBrands {
			brand := models.Brand{}
			if err := firstOrCreate(tx, &brand, "name = ?", name, &models.Brand{Name: name}); err != nil {
				return err
			}
			brandIDs[name] = brand.ID
		}

		categoryIDs := make(map[string]uint, len(seedCategories))
		for _, name := range seedCategories {
			category := models.Category{}
			if err := firstOrCreate(tx, &category, "name = ? AND parent_category_id IS NULL", name, &models.Category{Name: name}); err != nil {
				return err
			}
			categoryIDs[name] = category.ID
		}

		for _, sp := range seedProducts {
			product := models.Product{}
			err := tx.Where("name = ?", sp.name).First(&product).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			brandID := brandIDs[sp.brand]
			product = models.Product{
				Name:    sp.name,
				Price:   decimal.RequireFromString(sp.price),
				Stock:   sp.stock,
				BrandID: &brandID,
			}
			products := NewProductRepository(tx)
			if err := products.Create(ctx, &product); err != nil {
				log.Warn("failed to seed product", zap.String("name", sp.name), zap.Error(err))
				return err
			}
			if err := NewCategoryRepository(tx).LinkProducts(ctx, categoryIDs[sp.category], product.ID); err != nil {
				return err
			}
			log.Info("seeded product", zap.String("name", sp.name), zap.Uint("product_id", product.ID))
		}
		return nil
	})
}

func firstOrCreate(tx *gorm.DB, dest interface{}, query string, arg interface{}, row interface{}) error {
	err := tx.Where(query, arg).First(dest).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := tx.Create(row).Error; err != nil {
		return err
	}
	return tx.Where(query, arg).First(dest).Error
}
