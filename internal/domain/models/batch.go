package models

import "time"

// Batch is a stock-quantity unit of one product at one branch with one
// expiry date. The batch number is scoped to branch+product and is not
// globally unique.
//
// Invariants: IsExpired implies !IsActive, and once set IsExpired is never
// cleared; CurrentQuantity never goes below zero. The expiry evaluation job
// is the only writer of IsExpired/IsActive.
type Batch struct {
	ID          uint   `gorm:"primaryKey"`
	BatchNumber string `gorm:"size:100;index;not null"`

	ProductID uint `gorm:"index;not null"`
	Product   Product
	BranchID  uint `gorm:"index;not null"`
	Branch    Branch
	CreatedBy *uint

	InitialQuantity int       `gorm:"not null"`
	CurrentQuantity int       `gorm:"not null"`
	ExpiryDate      time.Time `gorm:"type:date;index;not null"`
	ManufactureDate *time.Time `gorm:"type:date"`

	CostPrice    float64 `gorm:"type:numeric(10,2)"`
	SellingPrice float64 `gorm:"type:numeric(10,2)"`

	IsActive  bool `gorm:"not null;default:true"`
	IsExpired bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
