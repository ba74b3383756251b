package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups every repository bound to the same database handle.
type Repositories struct {
	Customers    ICustomerRepository
	Products     IProductRepository
	Categories   ICategoryRepository
	Seasons      ISeasonRepository
	Orders       IOrderRepository
	OrderDetails IOrderDetailRepository
}

// NewRepositories builds the repository set on top of db, which may be a
// plain connection pool or an open transaction.
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Customers:    NewCustomerRepository(db),
		Products:     NewProductRepository(db),
		Categories:   NewCategoryRepository(db),
		Seasons:      NewSeasonRepository(db),
		Orders:       NewOrderRepository(db),
		OrderDetails: NewOrderDetailRepository(db),
	}
}

// IUnitOfWork runs a group of repository calls atomically.
type IUnitOfWork interface {
	// Do runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back on any error or panic.
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// UnitOfWork implements IUnitOfWork with GORM transactions.
type UnitOfWork struct {
	DB *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork instance.
func NewUnitOfWork(db *gorm.DB) IUnitOfWork {
	return &UnitOfWork{DB: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(repos Repositories) error) error {
	return u.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
