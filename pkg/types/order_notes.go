package types

import (
	"encoding/json"
	"fmt"
)

// OrderNotes is the metadata bag attached to a gateway order and echoed back
// unchanged inside webhook payloads. It is the only channel correlating the
// synchronous create-order call with the asynchronous payment confirmation,
// so the schema is fixed: the checkout side writes the identity and item
// keys, the storefront attaches the address keys before payment completes,
// and the webhook side reads all of them.
type OrderNotes struct {
	ClerkID      string `json:"clerkId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ShippingRate string `json:"shippingRate"`

	// OrderItems is a JSON-encoded []OrderItemNote. Gateway notes only carry
	// flat string values, hence the nested encoding.
	OrderItems string `json:"orderItems"`

	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderItemNote is one purchased line inside the notes bag. Color and size
// default to "N/A" when the storefront did not collect a variant.
type OrderItemNote struct {
	Product  string `json:"product"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// EncodeOrderItems serializes the purchased lines for the notes bag.
func EncodeOrderItems(items []OrderItemNote) (string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding order items: %w", err)
	}
	return string(raw), nil
}

// DecodeOrderItems parses the echoed item list back out of the notes bag.
func (n OrderNotes) DecodeOrderItems() ([]OrderItemNote, error) {
	var items []OrderItemNote
	if err := json.Unmarshal([]byte(n.OrderItems), &items); err != nil {
		return nil, fmt.Errorf("decoding order items: %w", err)
	}
	return items, nil
}

// Address assembles the gateway-echoed shipping address fields.
func (n OrderNotes) Address() ShippingAddress {
	return ShippingAddress{
		Street:     n.Street,
		City:       n.City,
		State:      n.State,
		PostalCode: n.PostalCode,
		Country:    n.Country,
	}
}

// ToMap renders the notes in the string-keyed shape the gateway API expects.
// Address keys are omitted; the storefront adds those after order creation.
func (n OrderNotes) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"clerkId":      n.ClerkID,
		"name":         n.Name,
		"email":        n.Email,
		"shippingRate": n.ShippingRate,
		"orderItems":   n.OrderItems,
	}
}
