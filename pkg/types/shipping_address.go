package types

// ShippingAddress is the delivery address captured by the storefront and
// echoed back through the gateway's notes bag. Stored as jsonb on orders.
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
