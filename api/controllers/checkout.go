package controllers

import (
	"context"
	"net/http"

	"github.com/borcelle/checkout-api/api/responses"
	"github.com/borcelle/checkout-api/api/validators"
	checkoutsvc "github.com/borcelle/checkout-api/internal/checkout"
	pkgerrors "github.com/borcelle/checkout-api/pkg/errors"
	"github.com/borcelle/checkout-api/pkg/logger"
)

// CheckoutService is the order-intent surface the handler depends on.
type CheckoutService interface {
	BuildOrder(ctx context.Context, items []checkoutsvc.CartItem, customer checkoutsvc.CustomerIntent) (map[string]interface{}, error)
}

type createOrderRequest struct {
	CartItems []checkoutsvc.CartItem     `json:"cartItems"`
	Customer  checkoutsvc.CustomerIntent `json:"customer"`
}

// CreateOrder handles storefront checkout submission: it builds a gateway
// order from the cart and returns the gateway's order handle verbatim.
func CreateOrder(svc CheckoutService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.BuildOrder(ctx, payload.CartItems, payload.Customer)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"order": order})
	}
}
