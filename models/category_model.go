package models

// Category groups products. Categories form a tree through ParentCategoryID;
// a category without a parent is a top-level category.
type Category struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Name             string `json:"name" gorm:"size:100;not null"`
	ParentCategoryID *uint  `json:"parentCategoryId" gorm:"index"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentCategoryID == nil
}

// CategoryProduct links a product to a category.
type CategoryProduct struct {
	CategoryID uint `json:"categoryId" gorm:"primaryKey;autoIncrement:false"`
	ProductID  uint `json:"productId" gorm:"primaryKey;autoIncrement:false;index"`
}
