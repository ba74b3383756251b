package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/Pelito1/PrimeMarket-back/models"
	"github.com/Pelito1/PrimeMarket-back/repository"
)

// ICustomerService defines the interface for customer accounts.
type ICustomerService interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, id uint, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id uint) error
	// Login checks credentials. Every failure is reported as ErrInvalidCredentials.
	Login(ctx context.Context, req models.LoginRequest) (*models.Customer, error)
}

// CustomerService implements ICustomerService.
type CustomerService struct {
	customers repository.ICustomerRepository
	uow       repository.IUnitOfWork
	log       *zap.Logger
}

// NewCustomerService creates a new CustomerService instance.
func NewCustomerService(customers repository.ICustomerRepository, uow repository.IUnitOfWork, log *zap.Logger) ICustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerService{customers: customers, uow: uow, log: log.Named("customers")}
}

// bcrypt ignores everything past 72 bytes and newer versions refuse it.
const maxPasswordLen = 72

func validateNewCustomer(c *models.Customer, requirePassword bool) error {
	c.Names = strings.TrimSpace(c.Names)
	c.Email = strings.TrimSpace(c.Email)
	if c.Names == "" {
		return invalid("customer names are required")
	}
	if c.Email == "" {
		return invalid("customer email is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return invalid("customer email %q is not valid", c.Email)
	}
	if requirePassword && c.Password == "" {
		return invalid("customer password is required")
	}
	if len(c.Password) > maxPasswordLen {
		return invalid("customer password must be at most %d bytes", maxPasswordLen)
	}
	return nil
}

// registerCustomer inserts a validated customer, hashing its password.
// The plain password is cleared from c.
func registerCustomer(ctx context.Context, customers repository.ICustomerRepository, c *models.Customer) error {
	_, err := customers.FindByEmail(ctx, c.Email)
	switch {
	case err == nil:
		return invalid("email %s is already registered", c.Email)
	case !errors.Is(err, models.ErrNotFound):
		return failed("find customer", err)
	}

	if c.Password != "" {
		hash, err := hashPassword(c.Password)
		if err != nil {
			return failed("hash password", err)
		}
		c.PasswordHash = hash
	}
	c.Password = ""
	if c.Status == "" {
		c.Status = models.CustomerStatusActive
	}
	return failed("create customer", customers.Create(ctx, c))
}

func (s *CustomerService) FindAll(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customers.FindAll(ctx)
	return customers, failed("list customers", err)
}

func (s *CustomerService) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find customer", err)
	}
	return customer, nil
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	c := *customer
	c.ID = 0
	if err := validateNewCustomer(&c, true); err != nil {
		return nil, err
	}
	if err := registerCustomer(ctx, s.customers, &c); err != nil {
		return nil, err
	}
	s.log.Info("customer registered", zap.Uint("customer_id", c.ID))
	return &c, nil
}

// Update overwrites the profile fields. The password changes only when a new one is given.
func (s *CustomerService) Update(ctx context.Context, id uint, customer *models.Customer) (*models.Customer, error) {
	names := strings.TrimSpace(customer.Names)
	if names == "" {
		return nil, invalid("customer names are required")
	}
	if len(customer.Password) > maxPasswordLen {
		return nil, invalid("customer password must be at most %d bytes", maxPasswordLen)
	}

	existing, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, failed("find customer", err)
	}
	existing.Names = names
	existing.LastNames = customer.LastNames
	existing.PhoneNumber = customer.PhoneNumber
	existing.Address = customer.Address
	if customer.Password != "" {
		hash, err := hashPassword(customer.Password)
		if err != nil {
			return nil, failed("hash password", err)
		}
		existing.PasswordHash = hash
	}

	if err := s.customers.Update(ctx, existing); err != nil {
		return nil, failed("update customer", err)
	}
	return existing, nil
}

// Delete removes a customer without orders.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Customers.FindByID(ctx, id); err != nil {
			return failed("find customer", err)
		}
		n, err := repos.Orders.CountByCustomer(ctx, id)
		if err != nil {
			return failed("count customer orders", err)
		}
		if n > 0 {
			return fmt.Errorf("customer %d: %w (%d orders)", id, models.ErrReferencedByOrders, n)
		}
		return failed("delete customer", repos.Customers.Delete(ctx, id))
	})
}

func (s *CustomerService) Login(ctx context.Context, req models.LoginRequest) (*models.Customer, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, models.ErrInvalidCredentials
	}

	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.log.Warn("login lookup failed", zap.Error(err))
		}
		return nil, models.ErrInvalidCredentials
	}
	if customer.PasswordHash == "" || !checkPassword(customer.PasswordHash, req.Password) {
		return nil, models.ErrInvalidCredentials
	}
	return customer, nil
}
