package razorpaywebhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/borcelle/checkout-api/pkg/db/models"
	dbtypes "github.com/borcelle/checkout-api/pkg/db/types"
	pkgerrors "github.com/borcelle/checkout-api/pkg/errors"
	"github.com/borcelle/checkout-api/pkg/types"
)

type memOrderRepo struct {
	orders []*models.Order
	err    error
}

func (m *memOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if m.err != nil {
		return m.err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders = append(m.orders, order)
	return nil
}

type memCustomerRepo struct {
	byClerkID map[string]*models.Customer
	findErr   error
	createErr error
	appendErr error
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byClerkID: map[string]*models.Customer{}}
}

func (m *memCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	m.byClerkID[customer.ClerkID] = customer
	return nil
}

func (m *memCustomerRepo) FindByClerkID(ctx context.Context, clerkID string) (*models.Customer, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	customer, ok := m.byClerkID[clerkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (m *memCustomerRepo) AppendOrder(ctx context.Context, customer *models.Customer, orderID uuid.UUID) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	customer.OrderIDs = append(customer.OrderIDs, orderID)
	m.byClerkID[customer.ClerkID] = customer
	return nil
}

func orderPaidBody(t *testing.T, amount int64, clerkID string) []byte {
	t.Helper()

	encoded, err := types.EncodeOrderItems([]types.OrderItemNote{
		{Product: "prod_1", Color: "Black", Size: "N/A", Quantity: 2},
	})
	require.NoError(t, err)

	body := fmt.Sprintf(`{
		"event": "order.paid",
		"payload": {
			"payment": {
				"entity": {
					"amount": %d,
					"notes": {
						"clerkId": %q,
						"name": "Ada Lovelace",
						"email": "ada@example.com",
						"shippingRate": "shr_standard",
						"orderItems": %s,
						"street": "1 Infinite Loop",
						"city": "Pune",
						"state": "MH",
						"postal_code": "411001",
						"country": "IN"
					}
				}
			}
		}
	}`, amount, clerkID, mustQuote(t, encoded))
	return []byte(body)
}

func mustQuote(t *testing.T, s string) string {
	t.Helper()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	return string(raw)
}

func newWebhookService(t *testing.T, orders *memOrderRepo, customers *memCustomerRepo) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Orders: orders, Customers: customers})
	require.NoError(t, err)
	return svc
}

func TestProcess_OrderPaidCreatesOrderAndCustomer(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	err := svc.Process(context.Background(), orderPaidBody(t, 100000, "user_2abc"))
	require.NoError(t, err)

	require.Len(t, orders.orders, 1)
	order := orders.orders[0]
	assert.Equal(t, "user_2abc", order.CustomerClerkID)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(1000)), "amount %s", order.TotalAmount)
	assert.Equal(t, "shr_standard", order.ShippingRate)
	assert.Equal(t, "Pune", order.ShippingAddress.City)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "prod_1", order.Products[0].Product)
	assert.Equal(t, 2, order.Products[0].Quantity)

	customer, ok := customers.byClerkID["user_2abc"]
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", customer.Name)
	assert.Equal(t, "ada@example.com", customer.Email)
	require.Len(t, customer.OrderIDs, 1)
	assert.Equal(t, order.ID, customer.OrderIDs[0])
}

func TestProcess_ExistingCustomerGetsOrderAppended(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()

	earlier := uuid.New()
	require.NoError(t, customers.Create(context.Background(), &models.Customer{
		ClerkID:  "user_2abc",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		OrderIDs: dbtypes.UUIDArray{earlier},
	}))

	svc := newWebhookService(t, orders, customers)
	err := svc.Process(context.Background(), orderPaidBody(t, 5000, "user_2abc"))
	require.NoError(t, err)

	require.Len(t, orders.orders, 1)
	customer := customers.byClerkID["user_2abc"]
	require.Len(t, customer.OrderIDs, 2)
	assert.Equal(t, earlier, customer.OrderIDs[0])
	assert.Equal(t, orders.orders[0].ID, customer.OrderIDs[1])
}

func TestProcess_DuplicateDeliveryCreatesTwoOrders(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	body := orderPaidBody(t, 100000, "user_2abc")
	require.NoError(t, svc.Process(context.Background(), body))
	require.NoError(t, svc.Process(context.Background(), body))

	// Redelivery is not suppressed; each delivery persists independently.
	require.Len(t, orders.orders, 2)
	assert.NotEqual(t, orders.orders[0].ID, orders.orders[1].ID)

	customer := customers.byClerkID["user_2abc"]
	require.Len(t, customer.OrderIDs, 2)
}

func TestProcess_IgnoresOtherEventTypes(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"amount":100}}}}`)
	err := svc.Process(context.Background(), body)
	require.NoError(t, err)

	assert.Empty(t, orders.orders)
	assert.Empty(t, customers.byClerkID)
}

func TestProcess_MissingAmountPersistsZeroTotal(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	encoded, err := types.EncodeOrderItems(nil)
	require.NoError(t, err)
	body := []byte(fmt.Sprintf(`{
		"event": "order.paid",
		"payload": {"payment": {"entity": {"notes": {
			"clerkId": "user_2abc",
			"name": "Ada",
			"email": "ada@example.com",
			"shippingRate": "shr",
			"orderItems": %s
		}}}}
	}`, mustQuote(t, encoded)))

	require.NoError(t, svc.Process(context.Background(), body))
	require.Len(t, orders.orders, 1)
	assert.True(t, orders.orders[0].TotalAmount.IsZero())
}

func TestProcess_MalformedPayloadFailsInternal(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	err := svc.Process(context.Background(), []byte(`{"event":`))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	assert.Empty(t, orders.orders)
}

func TestProcess_UnparseableOrderItemsFailBeforeAnyWrite(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	body := []byte(`{
		"event": "order.paid",
		"payload": {"payment": {"entity": {"amount": 100, "notes": {
			"clerkId": "user_2abc",
			"name": "Ada",
			"email": "ada@example.com",
			"shippingRate": "shr",
			"orderItems": "not json"
		}}}}
	}`)

	err := svc.Process(context.Background(), body)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	assert.Empty(t, orders.orders)
	assert.Empty(t, customers.byClerkID)
}

func TestProcess_OrderPersistFailureSurfacesBeforeCustomerWrite(t *testing.T) {
	orders := &memOrderRepo{err: errors.New("connection reset")}
	customers := newMemCustomerRepo()
	svc := newWebhookService(t, orders, customers)

	err := svc.Process(context.Background(), orderPaidBody(t, 100, "user_2abc"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
	assert.Empty(t, customers.byClerkID)
}

func TestProcess_CustomerFailureDoesNotRollBackOrder(t *testing.T) {
	orders := &memOrderRepo{}
	customers := newMemCustomerRepo()
	customers.createErr = errors.New("connection reset")
	svc := newWebhookService(t, orders, customers)

	err := svc.Process(context.Background(), orderPaidBody(t, 100, "user_2abc"))
	require.Error(t, err)

	// The two writes are independent; the order row survives the failure.
	require.Len(t, orders.orders, 1)
	assert.Empty(t, customers.byClerkID)
}

func TestNewService_RequiresBothRepos(t *testing.T) {
	_, err := NewService(ServiceParams{Customers: newMemCustomerRepo()})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Orders: &memOrderRepo{}})
	require.Error(t, err)
}
