package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/cache"
	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/repository"
)

// IOrderService defines the interface for order-related business logic.
type IOrderService interface {
	// Checkout registers the customer if needed, creates the order with its
	// line items and decrements stock, all in one transaction.
	Checkout(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error)
	Delete(ctx context.Context, id uint) error

	FindAll(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Update(ctx context.Context, id uint, order *models.Order) (*models.Order, error)
	RecalculateTotal(ctx context.Context, id uint) (*models.Order, error)

	FindDetails(ctx context.Context, orderID uint) ([]models.OrderDetail, error)
	AddDetail(ctx context.Context, orderID uint, detail models.OrderDetail) (*models.OrderDetail, error)
	UpdateDetail(ctx context.Context, orderID, productID uint, qty int) (*models.OrderDetail, error)
	DeleteDetail(ctx context.Context, orderID, productID uint) error
}

// OrderService implements IOrderService.
type OrderService struct {
	repos  repository.Repositories
	uow    repository.IUnitOfWork
	events IOrderEventPublisher
	cache  cache.IProductCache
	log    *zap.Logger
	now    func() time.Time
}

// NewOrderService creates a new OrderService instance.
func NewOrderService(
	repos repository.Repositories,
	uow repository.IUnitOfWork,
	events IOrderEventPublisher,
	productCache cache.IProductCache,
	log *zap.Logger,
) IOrderService {
	if events == nil {
		events = NoopOrderEventPublisher{}
	}
	if productCache == nil {
		productCache = cache.NewNoopProductCache()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{
		repos:  repos,
		uow:    uow,
		events: events,
		cache:  productCache,
		log:    log.Named("orders"),
		now:    time.Now,
	}
}

func validateCheckout(req *models.OrderRequest) error {
	if len(req.OrderDetails) == 0 {
		return invalid("order must contain at least one product")
	}
	seen := make(map[uint]bool, len(req.OrderDetails))
	for _, d := range req.OrderDetails {
		if d.ProductID == 0 {
			return invalid("productId is required for every line item")
		}
		if d.Quantity <= 0 {
			return invalid("quantity for product ID %d must be positive, got %d", d.ProductID, d.Quantity)
		}
		if seen[d.ProductID] {
			return invalid("product ID %d is listed more than once", d.ProductID)
		}
		seen[d.ProductID] = true
	}

	switch {
	case req.CustomerID != nil:
		if *req.CustomerID == 0 {
			return invalid("customerId must be positive")
		}
	case req.Customer != nil:
		if err := validateNewCustomer(req.Customer, false); err != nil {
			return err
		}
	default:
		return invalid("either customerId or customer is required")
	}

	if req.Total != nil && req.Total.IsNegative() {
		return invalid("total cannot be negative")
	}
	return nil
}

func (s *OrderService) Checkout(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := validateCheckout(&req); err != nil {
		return nil, err
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.DefaultOrderStatus
	}

	var order *models.Order
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		customerID, err := s.resolveCustomer(ctx, repos.Customers, req)
		if err != nil {
			return err
		}

		o := &models.Order{
			PurchaseDate: s.now().UTC(),
			CustomerID:   customerID,
			Status:       status,
		}
		if err := repos.Orders.Create(ctx, o); err != nil {
			return failed("create order", err)
		}

		for _, item := range req.OrderDetails {
			detail := models.OrderDetail{OrderID: o.ID, ProductID: item.ProductID, Quantity: item.Quantity}
			if err := repos.OrderDetails.Create(ctx, &detail); err != nil {
				return failed("create order detail", err)
			}
			if err := repos.Products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return failed("decrement stock", err)
			}
			o.OrderDetails = append(o.OrderDetails, detail)
		}

		total, err := repos.Orders.ComputeTotal(ctx, o.ID)
		if err != nil {
			return failed("compute order total", err)
		}
		if req.Total != nil && !req.Total.Round(2).Equal(total) {
			return fmt.Errorf("%w: supplied %s, computed %s",
				models.ErrTotalMismatch, req.Total.StringFixed(2), total.StringFixed(2))
		}
		if err := repos.Orders.UpdateTotal(ctx, o.ID, total); err != nil {
			return failed("update order total", err)
		}
		o.Total = total

		order = o
		return nil
	})
	if err != nil {
		s.log.Info("checkout rejected", zap.Error(err))
		return nil, err
	}

	s.log.Info("order checked out",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("items", len(order.OrderDetails)),
	)
	s.publish(ctx, EventOrderCheckedOut, order)
	s.invalidate(ctx, order.OrderDetails)
	return order, nil
}

// resolveCustomer returns the id of the referenced customer or registers the
// inline one.
func (s *OrderService) resolveCustomer(ctx context.Context, customers repository.ICustomerRepository, req models.OrderRequest) (uint, error) {
	if req.CustomerID != nil {
		customer, err := customers.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return 0, failed("find customer", err)
		}
		return customer.ID, nil
	}

	customer := *req.Customer
	customer.ID = 0
	if err := registerCustomer(ctx, customers, &customer); err != nil {
		return 0, err
	}
	s.log.Debug("registered customer during checkout", zap.Uint("customer_id", customer.ID))
	return customer.ID, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, invalid("status cannot be empty")
	}

	var order *models.Order
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		o, err := repos.Orders.FindByID(ctx, id)
		if err != nil {
			return failed("find order", err)
		}
		if err := repos.Orders.UpdateStatus(ctx, id, status); err != nil {
			return failed("update order status", err)
		}
		o.Status = status
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order status updated", zap.Uint("order_id", id), zap.String("status", status))
	s.publish(ctx, EventOrderStatusUpdate, order)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	var order *models.Order
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		o, err := repos.Orders.FindByID(ctx, id)
		if err != nil {
			return failed("find order", err)
		}
		if err := repos.OrderDetails.DeleteByOrder(ctx, id); err != nil {
			return failed("delete order details", err)
		}
		if err := repos.Orders.Delete(ctx, id); err != nil {
			return failed("delete order", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("order deleted", zap.Uint("order_id", id))
	s.publish(ctx, EventOrderDeleted, order)
	return nil
}

func (s *OrderService) FindAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repos.Orders.FindAll(ctx)
	return orders, failed("list orders", err)
}

func (s *OrderService) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.repos.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find order", err)
	}
	return order, nil
}

func (s *OrderService) FindByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders, err := s.repos.Orders.FindByCustomerID(ctx, customerID)
	return orders, failed("list customer orders", err)
}

func validateOrder(order *models.Order) error {
	if order.CustomerID == 0 {
		return invalid("customerId is required")
	}
	if order.Total.IsNegative() {
		return invalid("total cannot be negative")
	}
	return nil
}

// Create stores an order without line items or stock effects.
func (s *OrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	o := *order
	o.ID = 0
	o.OrderDetails = nil
	o.Status = strings.TrimSpace(o.Status)
	if o.Status == "" {
		o.Status = models.DefaultOrderStatus
	}
	if o.PurchaseDate.IsZero() {
		o.PurchaseDate = s.now()
	}
	o.PurchaseDate = o.PurchaseDate.UTC()

	if err := s.repos.Orders.Create(ctx, &o); err != nil {
		return nil, failed("create order", err)
	}
	return &o, nil
}

func (s *OrderService) Update(ctx context.Context, id uint, order *models.Order) (*models.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	var updated *models.Order
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Orders.FindByID(ctx, id)
		if err != nil {
			return failed("find order", err)
		}
		existing.CustomerID = order.CustomerID
		existing.Total = order.Total
		if status := strings.TrimSpace(order.Status); status != "" {
			existing.Status = status
		}
		if !order.PurchaseDate.IsZero() {
			existing.PurchaseDate = order.PurchaseDate.UTC()
		}
		if err := repos.Orders.Update(ctx, existing); err != nil {
			return failed("update order", err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RecalculateTotal recomputes the total from the current line items and prices.
func (s *OrderService) RecalculateTotal(ctx context.Context, id uint) (*models.Order, error) {
	var order *models.Order
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		o, err := repos.Orders.FindByID(ctx, id)
		if err != nil {
			return failed("find order", err)
		}
		total, err := repos.Orders.ComputeTotal(ctx, id)
		if err != nil {
			return failed("compute order total", err)
		}
		if err := repos.Orders.UpdateTotal(ctx, id, total); err != nil {
			return failed("update order total", err)
		}
		o.Total = total
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) FindDetails(ctx context.Context, orderID uint) ([]models.OrderDetail, error) {
	if _, err := s.repos.Orders.FindByID(ctx, orderID); err != nil {
		return nil, failed("find order", err)
	}
	details, err := s.repos.OrderDetails.FindByOrder(ctx, orderID)
	return details, failed("list order details", err)
}

// AddDetail appends a line item. Stock is not touched.
func (s *OrderService) AddDetail(ctx context.Context, orderID uint, detail models.OrderDetail) (*models.OrderDetail, error) {
	if detail.ProductID == 0 {
		return nil, invalid("productId is required")
	}
	if detail.Quantity <= 0 {
		return nil, invalid("quantity must be positive, got %d", detail.Quantity)
	}
	detail.OrderID = orderID

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Orders.FindByID(ctx, orderID); err != nil {
			return failed("find order", err)
		}
		if _, err := repos.Products.FindByID(ctx, detail.ProductID); err != nil {
			return failed("find product", err)
		}
		_, err := repos.OrderDetails.Find(ctx, orderID, detail.ProductID)
		switch {
		case err == nil:
			return invalid("product ID %d is already part of order %d", detail.ProductID, orderID)
		case !errors.Is(err, models.ErrNotFound):
			return failed("find order detail", err)
		}
		return failed("create order detail", repos.OrderDetails.Create(ctx, &detail))
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *OrderService) UpdateDetail(ctx context.Context, orderID, productID uint, qty int) (*models.OrderDetail, error) {
	if qty <= 0 {
		return nil, invalid("quantity must be positive, got %d", qty)
	}

	var detail *models.OrderDetail
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		d, err := repos.OrderDetails.Find(ctx, orderID, productID)
		if err != nil {
			return failed("find order detail", err)
		}
		if err := repos.OrderDetails.UpdateQuantity(ctx, orderID, productID, qty); err != nil {
			return failed("update order detail", err)
		}
		d.Quantity = qty
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *OrderService) DeleteDetail(ctx context.Context, orderID, productID uint) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.OrderDetails.Find(ctx, orderID, productID); err != nil {
			return failed("find order detail", err)
		}
		return failed("delete order detail", repos.OrderDetails.Delete(ctx, orderID, productID))
	})
}

// publish runs after commit; failures are logged only.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order) {
	evt := NewOrderEvent(eventType, order, s.now())
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Error("failed to publish order event",
			zap.String("type", eventType),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}
}

func (s *OrderService) invalidate(ctx context.Context, details []models.OrderDetail) {
	ids := make([]uint, len(details))
	for i, d := range details {
		ids[i] = d.ProductID
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.log.Warn("failed to invalidate product cache", zap.Uints("product_ids", ids), zap.Error(err))
	}
}
