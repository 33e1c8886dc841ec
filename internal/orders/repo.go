package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borcelle/checkout-api/pkg/db/models"
)

// Repository exposes order persistence operations. Orders are insert-only;
// reconciliation never updates or deletes them.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new order, assigning its id when the caller left it empty.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads one order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByClerkID returns a customer's orders, newest first.
func (r *Repository) ListByClerkID(ctx context.Context, clerkID string) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Where("customer_clerk_id = ?", clerkID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
