package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// IProductRepository defines the interface for product and stock operations.
type IProductRepository interface {
	FindTop(ctx context.Context, limit int) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]models.Product, error)
	CountByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) (int64, error)
	FindPage(ctx context.Context, page, size int) ([]models.Product, error)
	CountAll(ctx context.Context) (int64, error)
	FindByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	FindBySeason(ctx context.Context, seasonID uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error

	FindStock(ctx context.Context, id uint) (int, error)
	DecrementStock(ctx context.Context, id uint, qty int) error
	AdjustStock(ctx context.Context, id uint, delta int) error

	ReplaceCategory(ctx context.Context, productID, categoryID uint) error
	DeleteLinks(ctx context.Context, productID uint) error
}

// ProductRepository implements IProductRepository for GORM.
type ProductRepository struct {
	DB *gorm.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *gorm.DB) IProductRepository {
	return &ProductRepository{DB: db}
}

// withBrand is the single read mapping for products: every product read
// returns its brand alongside.
func withBrand(db *gorm.DB) *gorm.DB {
	return db.Preload("Brand")
}

func paginate(page, size int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * size).Limit(size)
	}
}

func (r *ProductRepository) FindTop(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Scopes(withBrand).Order("products.id").Limit(limit).Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Scopes(withBrand).First(&product, id).Error; err != nil {
		return nil, translate(err, models.ErrProductNotFound)
	}
	return &product, nil
}

// Search matches keyword anywhere in the name or the description.
func (r *ProductRepository) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	pattern := "%" + keyword + "%"
	var products []models.Product
	err := r.DB.WithContext(ctx).Scopes(withBrand).
		Where("products.name LIKE ? OR products.description LIKE ?", pattern, pattern).
		Order("products.id").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Scopes(withBrand, paginate(page, size)).
		Where("products.price BETWEEN ? AND ?", minPrice, maxPrice).
		Order("products.id").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) CountByPriceRange(ctx context.Context, minPrice, maxPrice decimal.Decimal) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("price BETWEEN ? AND ?", minPrice, maxPrice).
		Count(&count).Error
	return count, err
}

func (r *ProductRepository) FindPage(ctx context.Context, page, size int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Scopes(withBrand, paginate(page, size)).
		Order("products.id").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Scopes(withBrand).
		Joins("JOIN category_products cp ON cp.product_id = products.id").
		Where("cp.category_id = ?", categoryID).
		Order("products.id").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindBySeason(ctx context.Context, seasonID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Scopes(withBrand).
		Joins("JOIN season_products sp ON sp.product_id = products.id").
		Where("sp.season_id = ?", seasonID).
		Order("products.id").
		Find(&products).Error
	return products, err
}

// Create inserts the product without touching its brand row.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

// Update writes the catalog fields of a product. Stock is left alone; it only
// moves through DecrementStock and AdjustStock.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).
		Model(&models.Product{ID: product.ID}).
		Select("name", "price", "description", "image", "brand_id").
		Omit(clause.Associations).
		Updates(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// FindStock returns the current stock of a product.
func (r *ProductRepository) FindStock(ctx context.Context, id uint) (int, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Select("id", "stock").First(&product, id).Error
	if err != nil {
		return 0, translate(err, models.ErrProductNotFound)
	}
	return product.Stock, nil
}

// DecrementStock subtracts qty from the product's stock in one conditional
// statement, so the sufficiency check and the write cannot interleave with
// another transaction. Stock never goes below zero.
func (r *ProductRepository) DecrementStock(ctx context.Context, id uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", models.ErrInvalidInput, qty)
	}

	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	available, err := r.FindStock(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w for product ID %d: available %d, requested %d",
		models.ErrInsufficientStock, id, available, qty)
}

// AdjustStock adds delta (which may be negative) to the product's stock in one
// conditional statement. A delta that would take stock below zero fails with
// ErrInsufficientStock.
func (r *ProductRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	if delta == 0 {
		return fmt.Errorf("%w: stock delta must not be zero", models.ErrInvalidInput)
	}

	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	available, err := r.FindStock(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w for product ID %d: available %d, adjustment %d",
		models.ErrInsufficientStock, id, available, delta)
}

// ReplaceCategory drops every category link of the product and links it to categoryID.
func (r *ProductRepository) ReplaceCategory(ctx context.Context, productID, categoryID uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.CategoryProduct{}).Error; err != nil {
		return err
	}
	return db.Create(&models.CategoryProduct{CategoryID: categoryID, ProductID: productID}).Error
}

// DeleteLinks removes the product from every category and season.
func (r *ProductRepository) DeleteLinks(ctx context.Context, productID uint) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("product_id = ?", productID).Delete(&models.CategoryProduct{}).Error; err != nil {
		return err
	}
	return db.Where("product_id = ?", productID).Delete(&models.SeasonProduct{}).Error
}
