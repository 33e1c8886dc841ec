package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borcelle/checkout-api/pkg/db/models"
	dbtypes "github.com/borcelle/checkout-api/pkg/db/types"
)

// Repository exposes customer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a customers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new customer, assigning its id when the caller left it empty.
func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if customer.OrderIDs == nil {
		customer.OrderIDs = dbtypes.UUIDArray{}
	}
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByClerkID retrieves the customer matching the external identity key.
// Returns gorm.ErrRecordNotFound when the shopper has no record yet.
func (r *Repository) FindByClerkID(ctx context.Context, clerkID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// AppendOrder pushes the order id onto the customer's ordered reference list
// and persists the new list.
func (r *Repository) AppendOrder(ctx context.Context, customer *models.Customer, orderID uuid.UUID) error {
	customer.OrderIDs = append(customer.OrderIDs, orderID)
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("clerk_id = ?", customer.ClerkID).
		UpdateColumn("order_ids", customer.OrderIDs).Error
}
