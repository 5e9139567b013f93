package gateway

import (
	"encoding/json"
	"fmt"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

// WebhookEvent is a flattened payment webhook.
type WebhookEvent struct {
	Event     string
	PaymentID string
	OrderID   string
	Amount    int64
	Status    string
}

type webhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Amount  int64  `json:"amount"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhook decodes a payment webhook body. Callers verify the signature
// first.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var w webhookBody
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	e := w.Payload.Payment.Entity
	if w.Event == "" || e.OrderID == "" {
		return nil, fmt.Errorf("decode webhook: missing event or order id")
	}
	return &WebhookEvent{
		Event:     w.Event,
		PaymentID: e.ID,
		OrderID:   e.OrderID,
		Amount:    e.Amount,
		Status:    e.Status,
	}, nil
}
