package webhooks

import (
	"context"
	"io"
	"net/http"

	"github.com/borcelle/checkout-api/api/responses"
	pkgerrors "github.com/borcelle/checkout-api/pkg/errors"
	"github.com/borcelle/checkout-api/pkg/logger"
)

// SignatureHeader carries the gateway's hex HMAC-SHA256 over the raw body.
const SignatureHeader = "X-Razorpay-Signature"

// RazorpayWebhookService consumes a verified webhook body.
type RazorpayWebhookService interface {
	Process(ctx context.Context, payload []byte) error
}

// SignatureVerifier checks a claimed signature against the raw payload.
type SignatureVerifier interface {
	VerifyWebhookSignature(payload []byte, signature string) bool
}

// RazorpayWebhook handles the gateway's asynchronous payment notifications.
// Signature, payload and persistence failures all surface as the same
// undifferentiated 500; the cause is logged for operators only.
func RazorpayWebhook(svc RazorpayWebhookService, verifier SignatureVerifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if verifier == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "razorpay client unavailable"))
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read request body"))
			return
		}

		if !verifier.VerifyWebhookSignature(payload, r.Header.Get(SignatureHeader)) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invalid webhook signature"))
			return
		}

		if err := svc.Process(ctx, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
