package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOrderStatus is assigned to checkouts that arrive without a status.
const DefaultOrderStatus = "Pending"

// Order represents a single purchase placed by a customer.
type Order struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	PurchaseDate time.Time       `json:"purchaseDate" gorm:"not null"`
	CustomerID   uint            `json:"customerId" gorm:"not null;index"`
	Status       string          `json:"status" gorm:"size:50"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	OrderDetails []OrderDetail   `json:"orderDetails,omitempty" gorm:"foreignKey:OrderID"` // Has Many association
}

// OrderDetail is one line item of an order. It is keyed by (order, product),
// so a product appears at most once per order.
type OrderDetail struct {
	OrderID   uint `json:"orderId" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint `json:"productId" gorm:"primaryKey;autoIncrement:false"`
	Quantity  int  `json:"qty" gorm:"column:qty;not null"`
}

// OrderRequest is the checkout payload. It is never persisted as such.
type OrderRequest struct {
	CustomerID   *uint            `json:"customerId"` // nil when the buyer has not logged in
	Customer     *Customer        `json:"customer"`   // registration data used when CustomerID is nil
	OrderDetails []OrderDetail    `json:"orderDetails"`
	Status       string           `json:"status"`
	Total        *decimal.Decimal `json:"total"`
}
