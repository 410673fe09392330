package expiry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"expiryx-backend/internal/config"
	"expiryx-backend/internal/domain/models"
	"expiryx-backend/internal/repository/postgres"
	"expiryx-backend/internal/service/notification"
)

// Service runs the expiry and low-stock evaluation passes. It is the sole
// writer of alert records and of the expired/inactive transition on batches.
type Service struct {
	store             postgres.TxRunner
	notifier          notification.Notifier
	thresholds        Thresholds
	lowStockThreshold int
	notifyLowStock    bool
	loc               *time.Location
	logger            *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// Summary reports what a single evaluation pass did.
type Summary struct {
	AlertsCreated     int   `json:"alerts_created"`
	NotificationsSent int   `json:"notifications_sent"`
	BatchesExpired    int64 `json:"batches_expired"`
}

// NewService builds the evaluation service. Threshold ordering is validated
// here so a misconfigured process never starts.
func NewService(store postgres.TxRunner, notifier notification.Notifier, cfg config.AlertConfig, loc *time.Location, logger *zap.Logger) (*Service, error) {
	thresholds, err := NewThresholds(cfg.WarningDays, cfg.CriticalDays)
	if err != nil {
		return nil, err
	}
	if cfg.LowStockThreshold <= 0 {
		return nil, fmt.Errorf("low stock threshold must be positive, got %d", cfg.LowStockThreshold)
	}
	if notifier == nil {
		notifier = notification.NewLogNotifier(nil)
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:             store,
		notifier:          notifier,
		thresholds:        thresholds,
		lowStockThreshold: cfg.LowStockThreshold,
		notifyLowStock:    cfg.NotifyLowStock,
		loc:               loc,
		logger:            logger,
		now:               time.Now,
	}, nil
}

// CheckExpiringBatches runs one expiry evaluation pass: classify candidate
// batches, create deduplicated alerts, transition expired batches, then
// dispatch notifications for the alerts that were actually created.
//
// All reads and writes happen in one transaction; any storage error rolls
// the whole pass back and the next scheduled tick retries. Notifications go
// out only after the transaction commits, so delivery is at-least-once and a
// slow or failing gateway never holds the transaction open.
func (s *Service) CheckExpiringBatches(ctx context.Context) (Summary, error) {
	today := s.today()
	until := today.AddDate(0, 0, s.thresholds.WarningDays)

	s.logger.Info("starting expiry check pass", zap.Time("evaluation_day", today))

	var summary Summary
	var created []notification.Event

	err := s.store.InTx(ctx, func(repo postgres.Repository) error {
		batches, err := repo.ExpiringBatches(ctx, today, until)
		if err != nil {
			return err
		}

		for _, batch := range batches {
			tier := s.thresholds.Classify(batch.ExpiryDate, today)
			alertType, ok := tier.AlertType()
			if !ok {
				continue
			}

			exists, err := repo.AlertExistsOn(ctx, batch.ID, alertType, today)
			if err != nil {
				return err
			}
			if exists {
				// Already alerted today for this batch and tier.
				continue
			}

			days := DaysUntil(today, batch.ExpiryDate)
			alert := &models.Alert{
				BatchID:      batch.ID,
				BranchID:     batch.BranchID,
				Level:        tier.AlertLevel(),
				Type:         alertType,
				Message:      renderExpiryMessage(tier, batch, days),
				DaysToExpiry: &days,
				Status:       models.StatusPending,
				AlertDate:    today,
			}

			inserted, err := repo.CreateAlert(ctx, alert)
			if err != nil {
				return err
			}
			if !inserted {
				continue
			}

			summary.AlertsCreated++
			created = append(created, notification.Event{
				Branch:        batch.Branch,
				Product:       batch.Product,
				Batch:         batch,
				Level:         alert.Level,
				Type:          alert.Type,
				DaysRemaining: days,
				Message:       alert.Message,
			})
		}

		expired, err := repo.MarkBatchesExpired(ctx, today)
		if err != nil {
			return err
		}
		summary.BatchesExpired = expired

		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("expiry check pass failed: %w", err)
	}

	for _, event := range created {
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.logger.Error("failed to send notification",
				zap.String("batch_number", event.Batch.BatchNumber),
				zap.String("type", string(event.Type)),
				zap.Error(err),
			)
			continue
		}
		summary.NotificationsSent++
	}

	s.logger.Info("expiry check completed",
		zap.Int("alerts_created", summary.AlertsCreated),
		zap.Int("notifications_sent", summary.NotificationsSent),
		zap.Int64("batches_expired", summary.BatchesExpired),
	)

	return summary, nil
}

// today snapshots the current calendar date in the configured timezone,
// pinned to UTC midnight. One snapshot is taken per pass and used for every
// row, including the dedup window and the expired cutoff, so a pass running
// across midnight stays internally consistent.
func (s *Service) today() time.Time {
	now := s.now().In(s.loc)
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func renderExpiryMessage(tier Tier, batch models.Batch, days int) string {
	if tier == TierCritical {
		return fmt.Sprintf("CRITICAL: %s (Batch: %s) expires in %d day(s)! %d units remaining.",
			batch.Product.Name, batch.BatchNumber, days, batch.CurrentQuantity)
	}
	return fmt.Sprintf("WARNING: %s (Batch: %s) expires in %d days. %d units remaining.",
		batch.Product.Name, batch.BatchNumber, days, batch.CurrentQuantity)
}
