package domain

import "time"

// OrderStatus represents the current status of a return pickup order.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusAssigned  OrderStatus = "ASSIGNED"
	OrderStatusPickedUp  OrderStatus = "PICKED_UP"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// BoxSize represents the package size tier of a return.
type BoxSize string

const (
	BoxSizeSmall  BoxSize = "SMALL"
	BoxSizeMedium BoxSize = "MEDIUM"
	BoxSizeLarge  BoxSize = "LARGE"
	BoxSizeXL     BoxSize = "XL"
)

// Order represents a return pickup order in the system.
type Order struct {
	ID             string
	OrderNumber    string
	TrackingNumber string
	CustomerID     string
	DriverID       string
	Status         OrderStatus

	PickupLat     float64
	PickupLng     float64
	StoreLat      float64
	StoreLng      float64
	PickupAddress Address

	BoxSize    BoxSize
	Tip        float64
	IsDonation bool

	// Quote snapshot, frozen at booking time and refreshed once at
	// delivery completion with the clamped billable time.
	Route           RouteEstimate
	Fare            FareBreakdown
	BillableMinutes int

	PickedUpAt   time.Time
	DeliveredAt  time.Time
	CancelledAt  time.Time
	CancelReason string
	CreatedAt    time.Time
}
