package notification

import (
	"context"

	"go.uber.org/zap"

	"expiryx-backend/internal/domain/models"
)

// Event is the context handed to the gateway for one alert. DaysRemaining is
// meaningful for expiry alerts only.
type Event struct {
	Branch        models.Branch
	Product       models.Product
	Batch         models.Batch
	Level         models.AlertLevel
	Type          models.AlertType
	DaysRemaining int
	Message       string
}

// Notifier dispatches one rendered alert to an external channel. A returned
// error is non-fatal to the caller: the alert record is already persisted
// and the caller logs and moves on.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier writes alert notifications to the operational log. It is the
// default gateway when no webhook is configured, mirroring an email channel
// that is prepared but not wired to a provider.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	n.logger.Info("alert notification prepared",
		zap.String("branch", event.Branch.Name),
		zap.String("product", event.Product.Name),
		zap.String("batch_number", event.Batch.BatchNumber),
		zap.String("level", string(event.Level)),
		zap.String("type", string(event.Type)),
		zap.Int("days_remaining", event.DaysRemaining),
		zap.String("message", event.Message),
	)
	return nil
}
