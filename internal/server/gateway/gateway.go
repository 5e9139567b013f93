// Package gateway talks to the hosted payment gateway: it creates orders for
// the checkout and verifies the signatures the gateway hands back.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrBadSignature = errors.New("signature mismatch")

// Order is the subset of the gateway order object the checkout needs.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Client struct {
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
	http          *http.Client
}

func NewClient(baseURL, keyID, keySecret, webhookSecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		http:          &http.Client{Timeout: timeout},
	}
}

// KeyID is the public key the checkout widget is opened with.
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder registers an order of amount (smallest currency unit).
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	body, err := json.Marshal(map[string]any{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("create order failed: %s; body: %s", resp.Status, string(b))
	}

	o := &Order{}
	if err := json.NewDecoder(resp.Body).Decode(o); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if o.ID == "" {
		return nil, errors.New("create order: empty order id")
	}
	return o, nil
}

// Sign returns the checkout signature for an order/payment pair.
func (c *Client) Sign(orderID, paymentID string) string {
	return sign(c.keySecret, []byte(orderID+"|"+paymentID))
}

// VerifySignature checks the signature returned by the checkout.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return ErrBadSignature
	}
	return compare(c.Sign(orderID, paymentID), signature)
}

// VerifyWebhook checks the signature header of a webhook delivery against
// the raw body.
func (c *Client) VerifyWebhook(body []byte, signature string) error {
	if signature == "" {
		return ErrBadSignature
	}
	return compare(sign(c.webhookSecret, body), signature)
}

func sign(secret string, msg []byte) string {
	m := hmac.New(sha256.New, []byte(secret))
	m.Write(msg)
	return hex.EncodeToString(m.Sum(nil))
}

func compare(expected, got string) error {
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(got))) {
		return ErrBadSignature
	}
	return nil
}
