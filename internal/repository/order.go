package repository

import (
	"context"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByOrderNumber retrieves an order by its customer-facing number.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	// GetByTrackingNumber retrieves an order by its tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Order, error)

	// ExistsByOrderNumber reports whether an order number is taken.
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// ExistsByTrackingNumber reports whether a tracking number is taken.
	ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error)

	// GetAll retrieves all orders.
	GetAll(ctx context.Context) ([]*domain.Order, error)

	// Update updates an existing order.
	Update(ctx context.Context, order *domain.Order) error
}
