package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/pkg/clients"
)

// Intent is the provider-side payment handle the purchase flow holds on to.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

const StatusSucceeded = "succeeded"

// Client talks to a Stripe-compatible payment API. An unconfigured client
// reports Configured() == false and the purchase flow falls back to an
// explicit demo mode.
type Client struct {
	key    string
	addr   string
	client clients.HTTPClientI
}

func NewClient(cfg *config.Config, httpClient clients.HTTPClientI) *Client {
	if cfg.StripeKey == "" {
		zap.L().Info("payment provider not configured, purchases run in demo mode")
	}
	return &Client{
		key:    cfg.StripeKey,
		addr:   cfg.StripeAddress,
		client: httpClient,
	}
}

func (c *Client) Configured() bool {
	return c.key != ""
}

// CreateIntent registers a payment of amountCents with the provider and
// returns the handle the frontend completes the charge against.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency, userEmail string, coins int64) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amountCents))
	form.Set("currency", currency)
	form.Set("metadata[userEmail]", userEmail)
	form.Set("metadata[coins]", fmt.Sprintf("%d", coins))

	headers := c.headers()
	headers.Set("Content-Type", "application/x-www-form-urlencoded")
	// retries of the same request must not create a second charge
	headers.Set("Idempotency-Key", uuid.NewString())

	status, body, _, err := c.client.Post(c.addr+"/v1/payment_intents", headers, form.Encode())
	if err != nil {
		return nil, fmt.Errorf("payment intent request failed: %w", err)
	}
	return decodeIntent(status, body)
}

// RetrieveIntent fetches the settlement status for a provider reference.
func (c *Client) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	status, body, _, err := c.client.Get(c.addr+"/v1/payment_intents/"+url.PathEscape(id), c.headers())
	if err != nil {
		return nil, fmt.Errorf("payment intent lookup failed: %w", err)
	}
	return decodeIntent(status, body)
}

func (c *Client) headers() http.Header {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.key)
	return headers
}

func decodeIntent(status int, body []byte) (*Intent, error) {
	if status >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("payment provider returned %d: %s", status, body)
	}
	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("can't decode payment intent: %w", err)
	}
	return &intent, nil
}
