package expiry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"expiryx-backend/internal/domain/models"
	"expiryx-backend/internal/repository/postgres"
	"expiryx-backend/internal/service/notification"
)

// CheckLowStock runs one low-stock evaluation pass. Unlike expiry alerts,
// low-stock dedup is not day-scoped: as long as a pending low_stock alert is
// open for a batch, no new one is created. The condition stays open until a
// user acknowledges or resolves it, after which the next pass may re-fire.
// No batch state is mutated.
func (s *Service) CheckLowStock(ctx context.Context) (Summary, error) {
	today := s.today()

	s.logger.Info("starting low stock check pass",
		zap.Int("threshold", s.lowStockThreshold),
	)

	var summary Summary
	var created []notification.Event

	err := s.store.InTx(ctx, func(repo postgres.Repository) error {
		batches, err := repo.LowStockBatches(ctx, s.lowStockThreshold)
		if err != nil {
			return err
		}

		for _, batch := range batches {
			pending, err := repo.PendingAlertExists(ctx, batch.ID, models.TypeLowStock)
			if err != nil {
				return err
			}
			if pending {
				continue
			}

			alert := &models.Alert{
				BatchID:  batch.ID,
				BranchID: batch.BranchID,
				Level:    models.LevelInfo,
				Type:     models.TypeLowStock,
				Message: fmt.Sprintf("LOW STOCK: %s (Batch: %s) has only %d units remaining.",
					batch.Product.Name, batch.BatchNumber, batch.CurrentQuantity),
				Status:    models.StatusPending,
				AlertDate: today,
			}

			inserted, err := repo.CreateAlert(ctx, alert)
			if err != nil {
				return err
			}
			if !inserted {
				continue
			}

			summary.AlertsCreated++
			if s.notifyLowStock {
				created = append(created, notification.Event{
					Branch:  batch.Branch,
					Product: batch.Product,
					Batch:   batch,
					Level:   alert.Level,
					Type:    alert.Type,
					Message: alert.Message,
				})
			} else {
				s.logger.Info("low stock alert created",
					zap.String("branch", batch.Branch.Name),
					zap.String("product", batch.Product.Name),
					zap.String("batch_number", batch.BatchNumber),
					zap.Int("current_quantity", batch.CurrentQuantity),
				)
			}
		}

		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("low stock check pass failed: %w", err)
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

	s.logger.Info("low stock check completed",
		zap.Int("alerts_created", summary.AlertsCreated),
	)

	return summary, nil
}
