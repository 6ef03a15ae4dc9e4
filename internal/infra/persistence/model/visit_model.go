package model

import "time"

// VisitModel is the GORM-specific struct for the 'vendor_visits' table. One
// row per visited vendor; presence of the row is the whole fact.
type VisitModel struct {
	VendorID  int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (VisitModel) TableName() string {
	return "vendor_visits"
}
