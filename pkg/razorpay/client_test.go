package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borcelle/checkout-api/pkg/config"
)

func testConfig() config.RazorpayConfig {
	return config.RazorpayConfig{
		KeyID:         "rzp_test_key",
		KeySecret:     "key_secret",
		WebhookSecret: "whsec_test",
	}
}

func TestNewClient_RequiresAllCredentials(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	cfg.KeyID = ""
	_, err := NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, errKeyIDRequired)

	cfg = testConfig()
	cfg.KeySecret = "   "
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, errKeySecretRequired)

	cfg = testConfig()
	cfg.WebhookSecret = ""
	_, err = NewClient(ctx, cfg, nil)
	assert.ErrorIs(t, err, errWebhookSecretRequired)

	client, err := NewClient(ctx, testConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestVerifyWebhookSignature(t *testing.T) {
	client, err := NewClient(context.Background(), testConfig(), nil)
	require.NoError(t, err)

	body := []byte(`{"event":"order.paid","payload":{"payment":{"entity":{"amount":100000}}}}`)
	mac := hmac.New(sha256.New, []byte("whsec_test"))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifyWebhookSignature(body, signature))

	// Any drift in body or signature must fail verification.
	assert.False(t, client.VerifyWebhookSignature(append(body, ' '), signature))
	flipped := "0"
	if signature[len(signature)-1] == '0' {
		flipped = "1"
	}
	assert.False(t, client.VerifyWebhookSignature(body, signature[:len(signature)-1]+flipped))
	assert.False(t, client.VerifyWebhookSignature(body, ""))
}

func TestVerifyWebhookSignature_DifferentSecretFails(t *testing.T) {
	cfg := testConfig()
	cfg.WebhookSecret = "whsec_other"
	other, err := NewClient(context.Background(), cfg, nil)
	require.NoError(t, err)

	body := []byte(`{"event":"order.paid"}`)
	mac := hmac.New(sha256.New, []byte("whsec_test"))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.False(t, other.VerifyWebhookSignature(body, signature))
}
