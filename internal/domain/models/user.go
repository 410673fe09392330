package models

import "time"

// UserRole is the closed set of roles a user can hold.
type UserRole string

const (
	RoleSuperAdmin   UserRole = "super_admin"
	RoleStoreManager UserRole = "store_manager"
	RoleStaff        UserRole = "staff"
)

// User is a staff member or manager scoped to a store and optionally to a
// single branch.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"size:100;uniqueIndex;not null"`
	Email          string `gorm:"size:100;uniqueIndex;not null"`
	HashedPassword string `gorm:"size:255;not null"`
	FullName       string `gorm:"size:200"`
	Role           UserRole `gorm:"size:20;not null;default:staff"`
	StoreID        uint     `gorm:"index;not null"`
	BranchID       *uint    `gorm:"index"`
	IsActive       bool     `gorm:"not null;default:true"`
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
