package razorpaywebhook

import (
	"github.com/borcelle/checkout-api/pkg/types"
)

// EventOrderPaid is the only gateway event this service reacts to. Every
// other event type is acknowledged and ignored.
const EventOrderPaid = "order.paid"

// Event is the webhook envelope the gateway posts.
type Event struct {
	Event   string       `json:"event"`
	Payload EventPayload `json:"payload"`
}

type EventPayload struct {
	Payment PaymentWrapper `json:"payment"`
}

type PaymentWrapper struct {
	Entity PaymentEntity `json:"entity"`
}

// PaymentEntity carries the gateway-added amount (integer minor units) and
// the notes bag echoed back from order creation.
type PaymentEntity struct {
	Amount int64            `json:"amount"`
	Notes  types.OrderNotes `json:"notes"`
}
