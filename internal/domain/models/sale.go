package models

import "time"

// Sale is a POS transaction synced against a batch. Sales decrement
// Batch.CurrentQuantity at ingestion time; the evaluation jobs only ever
// read the resulting quantity.
type Sale struct {
	ID uint `gorm:"primaryKey"`

	BatchID uint `gorm:"index;not null"`
	Batch   Batch

	QuantitySold int     `gorm:"not null"`
	SalePrice    float64 `gorm:"type:numeric(10,2);not null"`

	POSTransactionID string    `gorm:"size:100;uniqueIndex"`
	SaleTimestamp    time.Time `gorm:"not null"`
	SyncedAt         time.Time `gorm:"autoCreateTime"`
}
