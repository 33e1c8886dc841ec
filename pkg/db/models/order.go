package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/borcelle/checkout-api/pkg/types"
)

// Order is the durable record of a paid gateway order. Rows are created by
// webhook reconciliation and never updated or deleted afterwards.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CustomerClerkID string                `gorm:"column:customer_clerk_id;type:text;not null;index"`
	Products        []types.OrderItemNote `gorm:"column:products;type:jsonb;serializer:json"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	ShippingRate    string                `gorm:"column:shipping_rate;type:text;not null"`
	TotalAmount     decimal.Decimal       `gorm:"column:total_amount;type:numeric(12,2);not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
