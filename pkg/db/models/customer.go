package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/borcelle/checkout-api/pkg/db/types"
)

// Customer aggregates a storefront shopper by their external identity key.
// OrderIDs grows append-only as paid orders are reconciled.
type Customer struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ClerkID   string            `gorm:"column:clerk_id;type:text;not null;uniqueIndex"`
	Name      string            `gorm:"column:name;type:text;not null"`
	Email     string            `gorm:"column:email;type:text;not null"`
	OrderIDs  dbtypes.UUIDArray `gorm:"column:order_ids;type:uuid[];not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
