package models

// Customer represents a registered buyer.
type Customer struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Names        string `json:"names" gorm:"size:100;not null"`
	LastNames    string `json:"lastNames" gorm:"size:100"`
	PhoneNumber  string `json:"phoneNumber" gorm:"size:30"`
	Address      string `json:"address" gorm:"size:255"`
	Status       string `json:"status" gorm:"size:1;not null;default:1"`
	Email        string `json:"email" gorm:"size:150;uniqueIndex;not null"`
	Password     string `json:"password,omitempty" gorm:"-"` // plain text, input only
	PasswordHash string `json:"-" gorm:"column:password;size:100;not null"`
}

// CustomerStatusActive is the status flag given to new customers.
const CustomerStatusActive = "1"

// LoginRequest carries customer credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
