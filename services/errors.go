package services

import (
	"errors"
	"fmt"

	"github.com/Pelito1/PrimeMarket-back/models"
)

var domainErrors = []error{
	models.ErrInvalidInput,
	models.ErrNotFound,
	models.ErrInsufficientStock,
	models.ErrTotalMismatch,
	models.ErrInvalidCredentials,
	models.ErrCategoryHasProducts,
	models.ErrReferencedByOrders,
}

// failed returns domain errors unchanged and wraps anything else as
// "<op> failed: <cause>".
func failed(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, fmt.Sprintf(format, args...))
}
