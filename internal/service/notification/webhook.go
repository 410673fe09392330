package notification

import (
	"context"

	"go.uber.org/zap"

	"expiryx-backend/pkg/clients/webhook"
)

// WebhookNotifier delivers alert notifications to a configured HTTP endpoint.
type WebhookNotifier struct {
	client webhook.Client
	logger *zap.Logger
}

// NewWebhookNotifier constructs a webhook-backed notifier.
func NewWebhookNotifier(client webhook.Client, logger *zap.Logger) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{client: client, logger: logger}
}

// Notify implements Notifier by POSTing the alert context as JSON.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	payload := webhook.AlertPayload{
		StoreCode:     event.Branch.Store.StoreCode,
		BranchCode:    event.Branch.BranchCode,
		BranchName:    event.Branch.Name,
		ProductName:   event.Product.Name,
		Barcode:       event.Product.Barcode,
		BatchNumber:   event.Batch.BatchNumber,
		DaysRemaining: event.DaysRemaining,
		Quantity:      event.Batch.CurrentQuantity,
		Level:         string(event.Level),
		AlertType:     string(event.Type),
		Message:       event.Message,
	}
	if !event.Batch.ExpiryDate.IsZero() {
		payload.ExpiryDate = event.Batch.ExpiryDate.Format("2006-01-02")
	}

	if err := n.client.PostAlert(ctx, payload); err != nil {
		return err
	}

	n.logger.Debug("alert webhook delivered",
		zap.String("batch_number", event.Batch.BatchNumber),
		zap.String("type", string(event.Type)),
	)
	return nil
}
