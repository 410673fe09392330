package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the outbound alert-webhook operation used by the
// notification gateway.
type Client interface {
	PostAlert(ctx context.Context, payload AlertPayload) error
}

// AlertPayload is the JSON body delivered to the receiver endpoint.
type AlertPayload struct {
	StoreCode     string `json:"store_code,omitempty"`
	BranchCode    string `json:"branch_code"`
	BranchName    string `json:"branch_name"`
	ProductName   string `json:"product_name"`
	Barcode       string `json:"barcode,omitempty"`
	BatchNumber   string `json:"batch_number"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	DaysRemaining int    `json:"days_remaining"`
	Quantity      int    `json:"quantity"`
	Level         string `json:"level"`
	AlertType     string `json:"alert_type"`
	Message       string `json:"message"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client targeting the given receiver URL.
func NewClient(url string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		url:        url,
	}
}

// PostAlert delivers one alert payload. Any non-2xx response is an error.
func (c *APIClient) PostAlert(ctx context.Context, payload AlertPayload) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post alert webhook: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("alert webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
