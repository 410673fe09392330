package models

import "time"

// Product is the master record for a sellable item. The evaluation jobs read
// it for alert messages and never mutate it.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Barcode     string `gorm:"size:100;uniqueIndex;not null"`
	Name        string `gorm:"size:300;not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:100"`
	Brand       string `gorm:"size:100"`
	Unit        string `gorm:"size:50"` // e.g. "packet", "kg", "liter"
	ImageURL    string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
