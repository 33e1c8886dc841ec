package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	rzpsdk "github.com/razorpay/razorpay-go"

	"github.com/borcelle/checkout-api/pkg/config"
	pkgerrors "github.com/borcelle/checkout-api/pkg/errors"
	"github.com/borcelle/checkout-api/pkg/logger"
)

var (
	errKeyIDRequired         = errors.New("razorpay key id is required")
	errKeySecretRequired     = errors.New("razorpay key secret is required")
	errWebhookSecretRequired = errors.New("razorpay webhook secret is required")
)

// OrderParams is the gateway order-creation request. Amount is in integer
// minor units (paise for INR).
type OrderParams struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]interface{}
}

// Client wraps the Razorpay SDK plus the webhook signing secret. One instance
// is constructed at process start and shared across requests.
type Client struct {
	sdk           *rzpsdk.Client
	webhookSecret string
	logger        *logger.Logger
}

// NewClient initializes the Razorpay wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.RazorpayConfig, logg *logger.Logger) (*Client, error) {
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		return nil, errKeyIDRequired
	}

	keySecret := strings.TrimSpace(cfg.KeySecret)
	if keySecret == "" {
		return nil, errKeySecretRequired
	}

	webhookSecret := strings.TrimSpace(cfg.WebhookSecret)
	if webhookSecret == "" {
		return nil, errWebhookSecretRequired
	}

	c := &Client{
		sdk:           rzpsdk.NewClient(keyID, keySecret),
		webhookSecret: webhookSecret,
		logger:        logg,
	}

	if logg != nil {
		logg.Info(ctx, "razorpay client initialized")
	}
	return c, nil
}

// CreateOrder submits one order-creation request and returns the gateway's
// order handle verbatim. Failures are not retried here.
func (c *Client) CreateOrder(ctx context.Context, params OrderParams) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   params.Amount,
		"currency": params.Currency,
		"receipt":  params.Receipt,
		"notes":    params.Notes,
	}

	order, err := c.sdk.Order.Create(data, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create razorpay order")
	}

	if c.logger != nil {
		c.logger.Info(ctx, "razorpay order created")
	}
	return order, nil
}

// VerifyWebhookSignature checks the hex HMAC-SHA256 of the exact raw body
// against the claimed signature header. hmac.Equal keeps the comparison
// constant time.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) bool {
	if c == nil || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
