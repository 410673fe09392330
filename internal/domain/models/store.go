package models

import "time"

// Store is a retail chain tenant. Every branch and user belongs to exactly
// one store.
type Store struct {
	ID           uint   `gorm:"primaryKey"`
	StoreCode    string `gorm:"size:50;uniqueIndex;not null"` // e.g. "RELIANCE10008"
	Name         string `gorm:"size:200;not null"`
	ContactEmail string `gorm:"size:100"`
	ContactPhone string `gorm:"size:20"`
	Address      string `gorm:"type:text"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Branches []Branch
	Users    []User
}
