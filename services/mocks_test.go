package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Pelito1/PrimeMarket-back/cache"
	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/repository"
)

// MockCustomerRepository is a mock implementation of repository.ICustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repository.IProductRepository.
// Only the methods used by the order workflow carry expectations.
type MockProductRepository struct {
	mock.Mock
	repository.IProductRepository
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uint, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repository.IOrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	args := m.Called(ctx, id, total)
	return args.Error(0)
}

func (m *MockOrderRepository) ComputeTotal(ctx context.Context, id uint) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderDetailRepository is a mock implementation of repository.IOrderDetailRepository.
type MockOrderDetailRepository struct {
	mock.Mock
}

func (m *MockOrderDetailRepository) FindByOrder(ctx context.Context, orderID uint) ([]models.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]models.OrderDetail), args.Error(1)
}

func (m *MockOrderDetailRepository) Find(ctx context.Context, orderID, productID uint) (*models.OrderDetail, error) {
	args := m.Called(ctx, orderID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetail), args.Error(1)
}

func (m *MockOrderDetailRepository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderDetailRepository) Create(ctx context.Context, detail *models.OrderDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}

func (m *MockOrderDetailRepository) UpdateQuantity(ctx context.Context, orderID, productID uint, qty int) error {
	args := m.Called(ctx, orderID, productID, qty)
	return args.Error(0)
}

func (m *MockOrderDetailRepository) Delete(ctx context.Context, orderID, productID uint) error {
	args := m.Called(ctx, orderID, productID)
	return args.Error(0)
}

func (m *MockOrderDetailRepository) DeleteByOrder(ctx context.Context, orderID uint) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// MockOrderEventPublisher is a mock implementation of IOrderEventPublisher.
type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) Publish(ctx context.Context, evt OrderEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// MockProductCache is a mock implementation of cache.IProductCache.
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) GetOrLoad(ctx context.Context, id uint, load cache.LoadFunc) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return load(ctx)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductCache) Invalidate(ctx context.Context, ids ...uint) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// fakeUnitOfWork runs fn directly against the mocked repositories and
// records whether the work was committed.
type fakeUnitOfWork struct {
	repos     repository.Repositories
	committed bool
}

func (u *fakeUnitOfWork) Do(_ context.Context, fn func(repos repository.Repositories) error) error {
	if err := fn(u.repos); err != nil {
		return err
	}
	u.committed = true
	return nil
}
