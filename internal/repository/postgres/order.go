package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

const orderColumns = `
	id, order_number, tracking_number, customer_id, driver_id, status,
	pickup_lat, pickup_lng, store_lat, store_lng,
	address_line1, address_line2, address_city, address_state, address_postal_code, address_country,
	box_size, tip, is_donation,
	distance_miles, estimated_minutes, time_cap_minutes, billable_minutes,
	fare_breakdown,
	picked_up_at, delivered_at, cancelled_at, cancel_reason, created_at
`

// Create persists a new order with its frozen quote snapshot.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`

	fare, err := json.Marshal(order.Fare)
	if err != nil {
		return fmt.Errorf("failed to marshal fare breakdown: %w", err)
	}

	_, err = r.q.ExecContext(ctx, query,
		order.ID,
		order.OrderNumber,
		order.TrackingNumber,
		order.CustomerID,
		nullString(order.DriverID),
		order.Status,
		order.PickupLat,
		order.PickupLng,
		order.StoreLat,
		order.StoreLng,
		order.PickupAddress.Line1,
		nullString(order.PickupAddress.Line2),
		order.PickupAddress.City,
		order.PickupAddress.State,
		order.PickupAddress.PostalCode,
		order.PickupAddress.Country,
		order.BoxSize,
		order.Tip,
		order.IsDonation,
		order.Route.DistanceMiles,
		order.Route.EstimatedMinutes,
		order.Route.TimeCapMinutes,
		order.BillableMinutes,
		fare,
		nullTime(order.PickedUpAt),
		nullTime(order.DeliveredAt),
		nullTime(order.CancelledAt),
		nullString(order.CancelReason),
		order.CreatedAt,
	)

	return err
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.q.QueryRowContext(ctx, query, id))
}

// GetByOrderNumber retrieves an order by its customer-facing number.
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	return r.scanOrder(r.q.QueryRowContext(ctx, query, orderNumber))
}

// GetByTrackingNumber retrieves an order by its tracking number.
func (r *OrderRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tracking_number = $1`
	return r.scanOrder(r.q.QueryRowContext(ctx, query, trackingNumber))
}

// ExistsByOrderNumber reports whether an order number is taken.
func (r *OrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)`, orderNumber)
}

// ExistsByTrackingNumber reports whether a tracking number is taken.
func (r *OrderRepository) ExistsByTrackingNumber(ctx context.Context, trackingNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE tracking_number = $1)`, trackingNumber)
}

func (r *OrderRepository) exists(ctx context.Context, query, arg string) (bool, error) {
	var taken bool
	if err := r.q.QueryRowContext(ctx, query, arg).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// GetAll retrieves all orders.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Update updates an existing order.
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders SET
			driver_id = $2,
			status = $3,
			billable_minutes = $4,
			fare_breakdown = $5,
			picked_up_at = $6,
			delivered_at = $7,
			cancelled_at = $8,
			cancel_reason = $9
		WHERE id = $1
	`

	fare, err := json.Marshal(order.Fare)
	if err != nil {
		return fmt.Errorf("failed to marshal fare breakdown: %w", err)
	}

	result, err := r.q.ExecContext(ctx, query,
		order.ID,
		nullString(order.DriverID),
		order.Status,
		order.BillableMinutes,
		fare,
		nullTime(order.PickedUpAt),
		nullTime(order.DeliveredAt),
		nullTime(order.CancelledAt),
		nullString(order.CancelReason),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrderRepository) scanOrder(row *sql.Row) (*domain.Order, error) {
	order, err := r.scanOrderRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return order, err
}

func (r *OrderRepository) scanOrderRow(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var driverID, addressLine2, cancelReason sql.NullString
	var pickedUpAt, deliveredAt, cancelledAt sql.NullTime
	var fare []byte

	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.TrackingNumber,
		&order.CustomerID,
		&driverID,
		&order.Status,
		&order.PickupLat,
		&order.PickupLng,
		&order.StoreLat,
		&order.StoreLng,
		&order.PickupAddress.Line1,
		&addressLine2,
		&order.PickupAddress.City,
		&order.PickupAddress.State,
		&order.PickupAddress.PostalCode,
		&order.PickupAddress.Country,
		&order.BoxSize,
		&order.Tip,
		&order.IsDonation,
		&order.Route.DistanceMiles,
		&order.Route.EstimatedMinutes,
		&order.Route.TimeCapMinutes,
		&order.BillableMinutes,
		&fare,
		&pickedUpAt,
		&deliveredAt,
		&cancelledAt,
		&cancelReason,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(fare, &order.Fare); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fare breakdown: %w", err)
	}

	order.DriverID = driverID.String
	order.PickupAddress.Line2 = addressLine2.String
	order.CancelReason = cancelReason.String
	order.PickedUpAt = pickedUpAt.Time
	order.DeliveredAt = deliveredAt.Time
	order.CancelledAt = cancelledAt.Time

	return &order, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
