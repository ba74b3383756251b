package controllers

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/services"
)

// MockOrderService is a mock implementation of services.IOrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) order(args mock.Arguments) (*models.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	return m.order(m.Called(ctx, req))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	return m.order(m.Called(ctx, id, status))
}

func (m *MockOrderService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) FindAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) FindByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	return m.order(m.Called(ctx, order))
}

func (m *MockOrderService) Update(ctx context.Context, id uint, order *models.Order) (*models.Order, error) {
	return m.order(m.Called(ctx, id, order))
}

func (m *MockOrderService) RecalculateTotal(ctx context.Context, id uint) (*models.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) FindDetails(ctx context.Context, orderID uint) ([]models.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]models.OrderDetail), args.Error(1)
}

func (m *MockOrderService) AddDetail(ctx context.Context, orderID uint, detail models.OrderDetail) (*models.OrderDetail, error) {
	args := m.Called(ctx, orderID, detail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetail), args.Error(1)
}

func (m *MockOrderService) UpdateDetail(ctx context.Context, orderID, productID uint, qty int) (*models.OrderDetail, error) {
	args := m.Called(ctx, orderID, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetail), args.Error(1)
}

func (m *MockOrderService) DeleteDetail(ctx context.Context, orderID, productID uint) error {
	return m.Called(ctx, orderID, productID).Error(0)
}

// MockCustomerService is a mock implementation of services.ICustomerService.
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) customer(args mock.Arguments) (*models.Customer, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) FindAll(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerService) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	return m.customer(m.Called(ctx, id))
}

func (m *MockCustomerService) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	return m.customer(m.Called(ctx, c))
}

func (m *MockCustomerService) Update(ctx context.Context, id uint, c *models.Customer) (*models.Customer, error) {
	return m.customer(m.Called(ctx, id, c))
}

func (m *MockCustomerService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerService) Login(ctx context.Context, req models.LoginRequest) (*models.Customer, error) {
	return m.customer(m.Called(ctx, req))
}

// MockProductService mocks the listing and stock part of services.IProductService.
type MockProductService struct {
	mock.Mock
	services.IProductService
}

func (m *MockProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) AdjustStock(ctx context.Context, id uint, delta int) (*models.Product, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Filter(ctx context.Context, minPrice, maxPrice decimal.Decimal, page, size int) (*models.ProductPage, error) {
	args := m.Called(ctx, minPrice.String(), maxPrice.String(), page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

func (m *MockProductService) FindPage(ctx context.Context, page, size int) (*models.ProductPage, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

// MockCategoryService mocks the mutating part of services.ICategoryService.
type MockCategoryService struct {
	mock.Mock
	services.ICategoryService
}

func (m *MockCategoryService) FindParents(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockSeasonService mocks the status part of services.ISeasonService.
type MockSeasonService struct {
	mock.Mock
	services.ISeasonService
}

func (m *MockSeasonService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Season, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Season), args.Error(1)
}
