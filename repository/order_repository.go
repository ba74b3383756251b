package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// IOrderRepository defines the interface for order data operations.
type IOrderRepository interface {
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error)
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error
	ComputeTotal(ctx context.Context, id uint) (decimal.Decimal, error)
	Delete(ctx context.Context, id uint) error
}

// OrderRepository implements IOrderRepository for GORM.
type OrderRepository struct {
	DB *gorm.DB
}

// NewOrderRepository creates a new OrderRepository instance.
func NewOrderRepository(db *gorm.DB) IOrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Order("id").Find(&orders).Error
	return orders, err
}

// FindByID retrieves an order together with its line items.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("OrderDetails", func(db *gorm.DB) *gorm.DB { return db.Order("product_id") }).
		First(&order, id).Error
	if err != nil {
		return nil, translate(err, models.ErrOrderNotFound)
	}
	return &order, nil
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&n).Error
	return n, err
}

// Create inserts the order row only; line items are written separately.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).
		Model(&models.Order{ID: order.ID}).
		Select("purchase_date", "customer_id", "status", "total").
		Omit(clause.Associations).
		Updates(order).Error
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *OrderRepository) UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	return r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("total", total).Error
}

type orderLine struct {
	Qty   int
	Price decimal.Decimal
}

// ComputeTotal sums quantity times current product price over the order's
// line items, rounded to cents.
func (r *OrderRepository) ComputeTotal(ctx context.Context, id uint) (decimal.Decimal, error) {
	var lines []orderLine
	err := r.DB.WithContext(ctx).
		Table("order_details AS od").
		Select("od.qty AS qty, p.price AS price").
		Joins("JOIN products p ON p.id = od.product_id").
		Where("od.order_id = ?", id).
		Scan(&lines).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total.Round(2), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Order{}, id).Error
}
