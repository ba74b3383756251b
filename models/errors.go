package models

import "errors"

// Sentinel errors shared by repositories, services and controllers.
// Wrap them with fmt.Errorf("...: %w") and compare with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrTotalMismatch      = errors.New("order total does not match line items")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrCategoryHasProducts = errors.New("top-level category still has products")
	ErrReferencedByOrders  = errors.New("still referenced by orders")
)

// Entity specific not-found errors. Each one also matches ErrNotFound.
var (
	ErrCustomerNotFound = notFound("customer")
	ErrProductNotFound  = notFound("product")
	ErrOrderNotFound    = notFound("order")
	ErrDetailNotFound   = notFound("order detail")
	ErrCategoryNotFound = notFound("category")
	ErrSeasonNotFound   = notFound("season")
)

type notFoundError struct {
	entity string
}

func notFound(entity string) error {
	return &notFoundError{entity: entity}
}

func (e *notFoundError) Error() string {
	return e.entity + " not found"
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}
