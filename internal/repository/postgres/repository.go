package postgres

import (
	"context"
	"time"

	"expiryx-backend/internal/domain/models"
)

// Repository is the data-access surface the evaluation jobs run against.
type Repository interface {
	// ExpiringBatches returns active batches with stock on hand whose expiry
	// date falls in (after, until], with Product and Branch populated.
	ExpiringBatches(ctx context.Context, after, until time.Time) ([]models.Batch, error)

	// LowStockBatches returns active batches with 0 < current_quantity <=
	// threshold, with Product and Branch populated.
	LowStockBatches(ctx context.Context, threshold int) ([]models.Batch, error)

	// AlertExistsOn reports whether an alert of the given type was already
	// recorded for the batch on the given calendar day.
	AlertExistsOn(ctx context.Context, batchID uint, alertType models.AlertType, day time.Time) (bool, error)

	// PendingAlertExists reports whether a still-pending alert of the given
	// type exists for the batch, regardless of day.
	PendingAlertExists(ctx context.Context, batchID uint, alertType models.AlertType) (bool, error)

	// CreateAlert inserts the alert. It returns false with a nil error when
	// the (batch, type, day) uniqueness constraint rejects the row, meaning
	// an equivalent alert already exists.
	CreateAlert(ctx context.Context, alert *models.Alert) (bool, error)

	// MarkBatchesExpired flips every active, not-yet-expired batch with
	// expiry_date <= asOf to expired/inactive and returns the number of rows
	// changed. Re-running it on the same data is a no-op.
	MarkBatchesExpired(ctx context.Context, asOf time.Time) (int64, error)
}

// TxRunner is a Repository that can additionally scope work to a single
// database transaction. The callback receives a Repository bound to that
// transaction; returning an error rolls the whole unit of work back.
type TxRunner interface {
	Repository

	InTx(ctx context.Context, fn func(Repository) error) error
}
