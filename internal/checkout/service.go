package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/borcelle/checkout-api/pkg/errors"
	"github.com/borcelle/checkout-api/pkg/razorpay"
	"github.com/borcelle/checkout-api/pkg/types"
)

const valueNotApplicable = "N/A"

// CartItem mirrors the storefront cart line shape.
type CartItem struct {
	Item     CartProduct `json:"item"`
	Quantity int         `json:"quantity"`
	Color    string      `json:"color"`
	Size     string      `json:"size"`
}

// CartProduct is the catalog reference embedded in a cart line.
type CartProduct struct {
	ID    string          `json:"_id"`
	Price decimal.Decimal `json:"price"`
}

// CustomerIntent identifies the shopper placing the order. All four fields
// must be present before an order intent may be built.
type CustomerIntent struct {
	ClerkID      string `json:"clerkId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ShippingRate string `json:"shippingRate"`
}

// OrderCreator is the outbound gateway surface the builder depends on.
type OrderCreator interface {
	CreateOrder(ctx context.Context, params razorpay.OrderParams) (map[string]interface{}, error)
}

type ServiceParams struct {
	Gateway  OrderCreator
	Currency string
}

// Service builds gateway order intents from a cart and customer profile.
// It holds no per-request state.
type Service struct {
	gateway  OrderCreator
	currency string
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "gateway client required")
	}
	if params.Currency == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout currency required")
	}
	return &Service{
		gateway:  params.Gateway,
		currency: params.Currency,
	}, nil
}

// BuildOrder validates the checkout request, computes the charge in integer
// minor units and submits one order-creation call. The gateway's order handle
// is returned verbatim; validation failures never reach the gateway.
func (s *Service) BuildOrder(ctx context.Context, items []CartItem, customer CustomerIntent) (map[string]interface{}, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No items in cart")
	}
	if customer.ClerkID == "" || customer.Email == "" || customer.Name == "" || customer.ShippingRate == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Incomplete customer information")
	}

	amount, err := totalMinorUnits(items)
	if err != nil {
		return nil, err
	}

	encoded, err := types.EncodeOrderItems(noteItems(items))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order items")
	}

	notes := types.OrderNotes{
		ClerkID:      customer.ClerkID,
		Name:         customer.Name,
		Email:        customer.Email,
		ShippingRate: customer.ShippingRate,
		OrderItems:   encoded,
	}

	return s.gateway.CreateOrder(ctx, razorpay.OrderParams{
		Amount:   amount,
		Currency: s.currency,
		Receipt:  newReceipt(),
		Notes:    notes.ToMap(),
	})
}

// totalMinorUnits sums price×quantity across the cart and shifts the major
// unit total into integer paise. Decimal arithmetic keeps the invariant
// amount == 100 × Σ(price·qty) exact; floats never enter the computation.
func totalMinorUnits(items []CartItem) (int64, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart item quantity must be at least 1")
		}
		if item.Item.Price.IsNegative() {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart item price must not be negative")
		}
		total = total.Add(item.Item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	minor := total.Shift(2)
	if !minor.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart total has sub-paise precision")
	}
	return minor.IntPart(), nil
}

func noteItems(items []CartItem) []types.OrderItemNote {
	out := make([]types.OrderItemNote, 0, len(items))
	for _, item := range items {
		note := types.OrderItemNote{
			Product:  item.Item.ID,
			Color:    item.Color,
			Size:     item.Size,
			Quantity: item.Quantity,
		}
		if note.Color == "" {
			note.Color = valueNotApplicable
		}
		if note.Size == "" {
			note.Size = valueNotApplicable
		}
		out = append(out, note)
	}
	return out
}

// newReceipt derives a display label for the gateway order. It is not an
// idempotency key.
func newReceipt() string {
	return fmt.Sprintf("receipt_order_%d", time.Now().UnixMilli())
}
