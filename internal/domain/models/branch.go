package models

import "time"

// Branch is a physical outlet of a store. Batches and alerts hang off the
// branch, not the store.
type Branch struct {
	ID           uint   `gorm:"primaryKey"`
	BranchCode   string `gorm:"size:50;index;not null"` // e.g. "ALAPPUZHA1009"
	StoreID      uint   `gorm:"index;not null"`
	Store        Store
	Name         string `gorm:"size:200;not null"`
	Location     string `gorm:"size:200"`
	ContactPhone string `gorm:"size:20"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
