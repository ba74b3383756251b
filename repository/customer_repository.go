package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pelito1/PrimeMarket-back/models"
)

// ICustomerRepository defines the interface for customer data operations.
type ICustomerRepository interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
}

// CustomerRepository implements ICustomerRepository for GORM.
type CustomerRepository struct {
	DB *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository instance.
func NewCustomerRepository(db *gorm.DB) ICustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.DB.WithContext(ctx).Order("id").Find(&customers).Error
	return customers, err
}

// FindByID retrieves a customer by their ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, translate(err, models.ErrCustomerNotFound)
	}
	return &customer, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, translate(err, models.ErrCustomerNotFound)
	}
	return &customer, nil
}

// Create inserts the customer and fills in its generated ID.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).Create(customer).Error
}

// Update overwrites the editable profile fields. Status and email are not editable.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.DB.WithContext(ctx).
		Model(&models.Customer{ID: customer.ID}).
		Select("names", "last_names", "phone_number", "address", "password").
		Updates(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Customer{}, id).Error
}
