package model

import "time"

// CartItemModel is the GORM-specific struct for the 'cart_items' table. The
// device has a single cart, so the product id alone keys a line.
type CartItemModel struct {
	ProductID int64   `gorm:"primaryKey;autoIncrement:false"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Price     float64 `gorm:"not null"`
	Image     string  `gorm:"type:varchar(2048)"`
	Quantity  int     `gorm:"not null"`
	Position  int     `gorm:"not null"` // preserves insertion order across reloads
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
