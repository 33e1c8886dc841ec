package razorpaywebhook

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/borcelle/checkout-api/pkg/db/models"
	dbtypes "github.com/borcelle/checkout-api/pkg/db/types"
	pkgerrors "github.com/borcelle/checkout-api/pkg/errors"
	"github.com/borcelle/checkout-api/pkg/logger"
)

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
}

type customerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByClerkID(ctx context.Context, clerkID string) (*models.Customer, error)
	AppendOrder(ctx context.Context, customer *models.Customer, orderID uuid.UUID) error
}

type ServiceParams struct {
	Orders    orderRepository
	Customers customerRepository
	Logger    *logger.Logger
}

// Service reconciles verified gateway events into Order and Customer rows.
// Each invocation is independent; there is no cross-invocation state and no
// duplicate-delivery suppression, so a redelivered order.paid event produces
// a second order row.
type Service struct {
	orders    orderRepository
	customers customerRepository
	logger    *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repo required")
	}
	if params.Customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "customers repo required")
	}
	return &Service{
		orders:    params.Orders,
		customers: params.Customers,
		logger:    params.Logger,
	}, nil
}

// Process parses an already-verified webhook body and, for order.paid events,
// persists the order and updates the customer aggregate. Other event types
// return nil without side effects.
func (s *Service) Process(ctx context.Context, payload []byte) error {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode webhook payload")
	}

	if event.Event != EventOrderPaid {
		return nil
	}

	return s.reconcile(ctx, event.Payload.Payment.Entity)
}

func (s *Service) reconcile(ctx context.Context, entity PaymentEntity) error {
	notes := entity.Notes

	items, err := notes.DecodeOrderItems()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode order items")
	}

	order := &models.Order{
		CustomerClerkID: notes.ClerkID,
		Products:        items,
		ShippingAddress: notes.Address(),
		ShippingRate:    notes.ShippingRate,
		// Minor units back to major units; an absent amount stays 0.00.
		TotalAmount: decimal.New(entity.Amount, -2),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	// Second, independent write. A failure here must not roll back the order;
	// no compensating transaction exists in this design.
	if err := s.linkCustomer(ctx, notes.ClerkID, notes.Name, notes.Email, order.ID); err != nil {
		return err
	}

	if s.logger != nil {
		ctx = s.logger.WithFields(ctx, map[string]any{
			"order_id": order.ID,
			"clerk_id": notes.ClerkID,
		})
		s.logger.Info(ctx, "order.paid reconciled")
	}
	return nil
}

func (s *Service) linkCustomer(ctx context.Context, clerkID, name, email string, orderID uuid.UUID) error {
	customer, err := s.customers.FindByClerkID(ctx, clerkID)
	switch {
	case err == nil:
		if err := s.customers.AppendOrder(ctx, customer, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append order to customer")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		fresh := &models.Customer{
			ClerkID:  clerkID,
			Name:     name,
			Email:    email,
			OrderIDs: dbtypes.UUIDArray{orderID},
		}
		if err := s.customers.Create(ctx, fresh); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist customer")
		}
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load customer")
	}
	return nil
}
