package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItems_EncodeDecodeRoundTrip(t *testing.T) {
	items := []OrderItemNote{
		{Product: "prod_1", Color: "Black", Size: "N/A", Quantity: 2},
		{Product: "prod_2", Color: "N/A", Size: "M", Quantity: 1},
	}

	encoded, err := EncodeOrderItems(items)
	require.NoError(t, err)

	notes := OrderNotes{OrderItems: encoded}
	decoded, err := notes.DecodeOrderItems()
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestDecodeOrderItems_RejectsNonJSON(t *testing.T) {
	notes := OrderNotes{OrderItems: "not json"}
	_, err := notes.DecodeOrderItems()
	assert.Error(t, err)
}

func TestOrderNotes_ToMapOmitsAddressKeys(t *testing.T) {
	notes := OrderNotes{
		ClerkID:      "user_2abc",
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		ShippingRate: "shr_standard",
		OrderItems:   "[]",
		Street:       "1 Infinite Loop",
		City:         "Pune",
	}

	m := notes.ToMap()
	assert.Equal(t, map[string]interface{}{
		"clerkId":      "user_2abc",
		"name":         "Ada Lovelace",
		"email":        "ada@example.com",
		"shippingRate": "shr_standard",
		"orderItems":   "[]",
	}, m)
}

func TestOrderNotes_WebhookEchoShape(t *testing.T) {
	// The webhook echoes notes with the storefront-added address keys.
	raw := `{
		"clerkId": "user_2abc",
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"shippingRate": "shr_standard",
		"orderItems": "[{\"product\":\"prod_1\",\"color\":\"N/A\",\"size\":\"N/A\",\"quantity\":1}]",
		"street": "1 Infinite Loop",
		"city": "Pune",
		"state": "MH",
		"postal_code": "411001",
		"country": "IN"
	}`

	var notes OrderNotes
	require.NoError(t, json.Unmarshal([]byte(raw), &notes))

	addr := notes.Address()
	assert.Equal(t, "1 Infinite Loop", addr.Street)
	assert.Equal(t, "Pune", addr.City)
	assert.Equal(t, "MH", addr.State)
	assert.Equal(t, "411001", addr.PostalCode)
	assert.Equal(t, "IN", addr.Country)

	items, err := notes.DecodeOrderItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "prod_1", items[0].Product)
}
