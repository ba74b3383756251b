package models

import "time"

// SeasonStatusActive marks a season as enabled.
const SeasonStatusActive = "1"

// Season is a time-boxed promotion grouping a set of products.
type Season struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	StartDate   time.Time `json:"startDate" gorm:"not null"`
	EndDate     time.Time `json:"endDate" gorm:"not null;index"`
	Image       string    `json:"image" gorm:"size:500"`
	Status      string    `json:"status" gorm:"size:1;not null"`
}

// SeasonProduct links a product to a season.
type SeasonProduct struct {
	SeasonID  uint `json:"seasonId" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint `json:"productId" gorm:"primaryKey;autoIncrement:false;index"`
}
