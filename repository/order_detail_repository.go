package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// IOrderDetailRepository defines the interface for order line items.
type IOrderDetailRepository interface {
	FindByOrder(ctx context.Context, orderID uint) ([]models.OrderDetail, error)
	Find(ctx context.Context, orderID, productID uint) (*models.OrderDetail, error)
	CountByProduct(ctx context.Context, productID uint) (int64, error)
	Create(ctx context.Context, detail *models.OrderDetail) error
	UpdateQuantity(ctx context.Context, orderID, productID uint, qty int) error
	Delete(ctx context.Context, orderID, productID uint) error
	DeleteByOrder(ctx context.Context, orderID uint) error
}

// OrderDetailRepository implements IOrderDetailRepository for GORM.
type OrderDetailRepository struct {
	DB *gorm.DB
}

// NewOrderDetailRepository creates a new OrderDetailRepository instance.
func NewOrderDetailRepository(db *gorm.DB) IOrderDetailRepository {
	return &OrderDetailRepository{DB: db}
}

func (r *OrderDetailRepository) FindByOrder(ctx context.Context, orderID uint) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("product_id").Find(&details).Error
	return details, err
}

func (r *OrderDetailRepository) Find(ctx context.Context, orderID, productID uint) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := r.DB.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&detail).Error
	if err != nil {
		return nil, translate(err, models.ErrDetailNotFound)
	}
	return &detail, nil
}

// CountByProduct returns how many line items reference the product.
func (r *OrderDetailRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.OrderDetail{}).Where("product_id = ?", productID).Count(&n).Error
	return n, err
}

func (r *OrderDetailRepository) Create(ctx context.Context, detail *models.OrderDetail) error {
	return r.DB.WithContext(ctx).Create(detail).Error
}

func (r *OrderDetailRepository) UpdateQuantity(ctx context.Context, orderID, productID uint, qty int) error {
	return r.DB.WithContext(ctx).
		Model(&models.OrderDetail{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Update("qty", qty).Error
}

func (r *OrderDetailRepository) Delete(ctx context.Context, orderID, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&models.OrderDetail{}).Error
}

// DeleteByOrder removes every line item of the order.
func (r *OrderDetailRepository) DeleteByOrder(ctx context.Context, orderID uint) error {
	return r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderDetail{}).Error
}
