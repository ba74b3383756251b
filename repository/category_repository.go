package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// ICategoryRepository defines the interface for category tree operations.
type ICategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindTopLevel(ctx context.Context) ([]models.Category, error)
	FindSubcategories(ctx context.Context, parentID uint) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error

	ProductIDs(ctx context.Context, categoryID uint) ([]uint, error)
	LinkProducts(ctx context.Context, categoryID uint, productIDs ...uint) error
	UnlinkProduct(ctx context.Context, categoryID, productID uint) error
	UnlinkAllProducts(ctx context.Context, categoryID uint) error
	Reparent(ctx context.Context, fromParentID uint, toParentID *uint) error
}

// CategoryRepository implements ICategoryRepository for GORM.
type CategoryRepository struct {
	DB *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *gorm.DB) ICategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, models.ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoryRepository) FindTopLevel(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).Where("parent_category_id IS NULL").Order("id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindSubcategories(ctx context.Context, parentID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).Where("parent_category_id = ?", parentID).Order("id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).
		Model(&models.Category{ID: category.ID}).
		Select("name", "parent_category_id").
		Updates(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// ProductIDs lists the products directly linked to the category.
func (r *CategoryRepository) ProductIDs(ctx context.Context, categoryID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&models.CategoryProduct{}).
		Where("category_id = ?", categoryID).
		Order("product_id").
		Pluck("product_id", &ids).Error
	return ids, err
}

// LinkProducts links products to the category. Existing links are kept as is.
func (r *CategoryRepository) LinkProducts(ctx context.Context, categoryID uint, productIDs ...uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	links := make([]models.CategoryProduct, len(productIDs))
	for i, id := range productIDs {
		links[i] = models.CategoryProduct{CategoryID: categoryID, ProductID: id}
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

func (r *CategoryRepository) UnlinkProduct(ctx context.Context, categoryID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("category_id = ? AND product_id = ?", categoryID, productID).
		Delete(&models.CategoryProduct{}).Error
}

func (r *CategoryRepository) UnlinkAllProducts(ctx context.Context, categoryID uint) error {
	return r.DB.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&models.CategoryProduct{}).Error
}

// Reparent moves every direct child of fromParentID under toParentID.
// A nil toParentID turns the children into top-level categories.
func (r *CategoryRepository) Reparent(ctx context.Context, fromParentID uint, toParentID *uint) error {
	var newParent interface{} = gorm.Expr("NULL")
	if toParentID != nil {
		newParent = *toParentID
	}
	return r.DB.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_category_id = ?", fromParentID).
		Update("parent_category_id", newParent).Error
}
