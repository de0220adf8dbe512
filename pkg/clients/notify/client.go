// Package notify delivers low-stock alerts to an external webhook.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts stock alerts to a configured webhook endpoint.
type Client interface {
	SendLowStockAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert is the webhook payload for one material at or below its
// reorder point.
type LowStockAlert struct {
	MaterialCode string `json:"materialCode"`
	MaterialName string `json:"materialName"`
	Unit         string `json:"unit"`
	CurrentStock int    `json:"currentStock"`
	ReorderPoint int    `json:"reorderPoint"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds the alert client for the given webhook URL.
func NewWebhookClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// SendLowStockAlert posts one alert. Non-2xx responses are returned as
// errors so the scheduler can log delivery failures per material.
func (c *WebhookClient) SendLowStockAlert(ctx context.Context, alert LowStockAlert) error {
	payload := map[string]any{
		"text": fmt.Sprintf("Stok %s (%s) tinggal %d %s, di bawah ROP %d. Segera lakukan pemesanan.",
			alert.MaterialName, alert.MaterialCode, alert.CurrentStock, alert.Unit, alert.ReorderPoint),
		"alert": alert,
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
