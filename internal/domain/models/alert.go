package models

import "time"

// AlertLevel is the severity of an alert.
type AlertLevel string

const (
	LevelInfo     AlertLevel = "info"
	LevelWarning  AlertLevel = "warning"
	LevelCritical AlertLevel = "critical"
)

// AlertType is the closed set of conditions an alert can report.
type AlertType string

const (
	TypeExpiryWarning  AlertType = "expiry_warning"
	TypeExpiryCritical AlertType = "expiry_critical"
	TypeLowStock       AlertType = "low_stock"
)

// AlertStatus tracks the handling lifecycle of an alert. Transitions out of
// pending happen only through explicit user action; alerts are never deleted.
type AlertStatus string

const (
	StatusPending      AlertStatus = "pending"
	StatusAcknowledged AlertStatus = "acknowledged"
	StatusResolved     AlertStatus = "resolved"
)

// Alert is a dated notification record tied to one batch and one branch.
//
// The unique index over (batch_id, alert_type, alert_date) is the storage
// half of the dedup contract: at most one alert of a given type per batch
// per calendar day. AlertDate is the evaluation day in the configured
// timezone, snapshotted once per job pass.
type Alert struct {
	ID uint `gorm:"primaryKey"`

	BatchID  uint `gorm:"not null;uniqueIndex:idx_alerts_batch_type_day,priority:1"`
	Batch    Batch
	BranchID uint `gorm:"index;not null"`
	Branch   Branch

	Level AlertLevel `gorm:"size:20;not null"`
	Type  AlertType  `gorm:"size:50;not null;uniqueIndex:idx_alerts_batch_type_day,priority:2"`

	Message      string `gorm:"type:text;not null"`
	DaysToExpiry *int

	Status         AlertStatus `gorm:"size:20;not null;default:pending"`
	AcknowledgedBy *uint
	AcknowledgedAt *time.Time

	AlertDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_alerts_batch_type_day,priority:3"`
	CreatedAt time.Time
}
