package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/pricing"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/redis"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/repository"
)

// claimLockTTL bounds how long an in-flight driver acceptance holds the
// claim lock before it expires on its own.
const claimLockTTL = 10 * time.Second

// OrderService handles the return pickup order lifecycle.
type OrderService struct {
	orderRepo           repository.OrderRepository
	fareService         *pricing.FareService
	claims              redis.ClaimStoreInterface
	notificationService *NotificationService
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	fareService *pricing.FareService,
	claims redis.ClaimStoreInterface,
	notificationService *NotificationService,
) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		fareService:         fareService,
		claims:              claims,
		notificationService: notificationService,
	}
}

// CreateOrderRequest contains the parameters for booking a return pickup.
type CreateOrderRequest struct {
	CustomerID    string
	PickupLat     float64
	PickupLng     float64
	StoreLat      float64
	StoreLng      float64
	PickupAddress domain.Address
	BoxSize       domain.BoxSize
	Tip           float64
	IsDonation    bool
	IsRush        bool
}

// CreateOrder books a return pickup: estimates the route, composes the
// fare and tax quote, generates collision-checked identifiers, and
// persists the order with its frozen quote snapshot.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if !validCoordinates(req.PickupLat, req.PickupLng) {
		return nil, ErrInvalidPickupLocation
	}
	if !validCoordinates(req.StoreLat, req.StoreLng) {
		return nil, ErrInvalidStoreLocation
	}
	if req.Tip < 0 {
		return nil, ErrInvalidTip
	}
	if req.PickupAddress.Line1 == "" || req.PickupAddress.City == "" ||
		req.PickupAddress.State == "" || req.PickupAddress.PostalCode == "" {
		return nil, ErrInvalidPickupAddress
	}

	boxSize, err := ValidateBoxSize(string(req.BoxSize))
	if err != nil {
		return nil, err
	}

	route := pricing.EstimateRoute(req.PickupLat, req.PickupLng, req.StoreLat, req.StoreLng)

	fare := s.fareService.Compose(ctx, pricing.QuoteInput{
		DistanceMiles: route.DistanceMiles,
		// The quote bills the estimate; the clamp re-runs at completion.
		BillableMinutes: route.EstimatedMinutes,
		BoxSize:         boxSize,
		Tip:             req.Tip,
		IsDonation:      req.IsDonation,
		PeakMultiplier:  s.peakMultiplier(req.IsRush, time.Now()),
		Address:         req.PickupAddress,
	})

	orderNumber, err := pricing.UniqueOrderNumber(ctx, s.orderRepo.ExistsByOrderNumber, pricing.DefaultMaxRetries)
	if err != nil {
		return nil, err
	}

	trackingNumber, err := pricing.UniqueTrackingNumber(ctx, s.orderRepo.ExistsByTrackingNumber, pricing.DefaultMaxRetries)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.New().String(),
		OrderNumber:     orderNumber,
		TrackingNumber:  trackingNumber,
		CustomerID:      req.CustomerID,
		Status:          domain.OrderStatusCreated,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		StoreLat:        req.StoreLat,
		StoreLng:        req.StoreLng,
		PickupAddress:   req.PickupAddress,
		BoxSize:         boxSize,
		Tip:             req.Tip,
		IsDonation:      req.IsDonation,
		Route:           route,
		Fare:            fare,
		BillableMinutes: route.EstimatedMinutes,
		CreatedAt:       time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderBooked(ctx, order)
	}

	return order, nil
}

// AcceptOrderRequest contains the parameters for a driver accepting an order.
type AcceptOrderRequest struct {
	OrderID  string
	DriverID string
}

// AcceptOrder assigns a driver to a CREATED order. A Redis claim lock
// prevents two drivers from accepting the same order concurrently.
func (s *OrderService) AcceptOrder(ctx context.Context, req AcceptOrderRequest) (*domain.Order, error) {
	if req.OrderID == "" {
		return nil, ErrInvalidOrderID
	}
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.claims != nil {
		acquired, err := s.claims.AcquireOrderClaim(ctx, req.OrderID, claimLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, ErrOrderAlreadyClaimed
		}
		defer func() {
			_ = s.claims.ReleaseOrderClaim(ctx, req.OrderID)
		}()
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusCreated {
		return nil, ErrOrderNotClaimable
	}

	order.DriverID = req.DriverID
	order.Status = domain.OrderStatusAssigned

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyDriverAssigned(ctx, order)
	}

	return order, nil
}

// MarkPickedUp records that the driver collected the package.
func (s *OrderService) MarkPickedUp(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusAssigned {
		return nil, ErrOrderNotAssigned
	}

	order.Status = domain.OrderStatusPickedUp
	order.PickedUpAt = time.Now()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyPickupConfirmed(ctx, order)
	}

	return order, nil
}

// CompleteOrder finishes a delivery: clamps the actual elapsed time into
// the billable window, recomposes the final ledger (tax included), and
// freezes the order as COMPLETED.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusCompleted:
		return nil, ErrOrderAlreadyCompleted
	case domain.OrderStatusPickedUp:
		// Proceed.
	default:
		return nil, ErrOrderNotPickedUp
	}

	dropoffTime := time.Now()
	actualMinutes := pricing.ActualDurationMinutes(order.PickedUpAt, dropoffTime)
	if actualMinutes < 0 {
		return nil, ErrDropoffBeforePickup
	}

	order.BillableMinutes = pricing.BillableMinutes(actualMinutes, order.Route.EstimatedMinutes)
	order.Fare = s.fareService.Compose(ctx, pricing.QuoteInput{
		DistanceMiles:   order.Route.DistanceMiles,
		BillableMinutes: order.BillableMinutes,
		BoxSize:         order.BoxSize,
		Tip:             order.Tip,
		IsDonation:      order.IsDonation,
		// The multiplier was frozen at booking; completion only
		// re-clamps the billable time.
		PeakMultiplier: order.Fare.PeakMultiplier,
		Address:        order.PickupAddress,
	})
	order.Status = domain.OrderStatusCompleted
	order.DeliveredAt = dropoffTime

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyDeliveryCompleted(ctx, order)
	}

	return order, nil
}

// CancelOrderRequest contains the parameters for cancelling an order.
type CancelOrderRequest struct {
	OrderID string
	Reason  string
}

// CancelOrder cancels an order that has not been picked up yet.
func (s *OrderService) CancelOrder(ctx context.Context, req CancelOrderRequest) (*domain.Order, error) {
	if req.OrderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case domain.OrderStatusCancelled:
		return nil, ErrOrderAlreadyCancelled
	case domain.OrderStatusPickedUp, domain.OrderStatusCompleted:
		return nil, ErrOrderCannotBeCancelled
	}

	order.Status = domain.OrderStatusCancelled
	order.CancelledAt = time.Now()
	order.CancelReason = req.Reason

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderCancelled(ctx, order)
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	return s.orderRepo.GetByID(ctx, orderID)
}

// GetOrderByNumber retrieves an order by its customer-facing number.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if !pricing.IsValidOrderNumber(orderNumber) {
		return nil, ErrInvalidOrderNumber
	}

	return s.orderRepo.GetByOrderNumber(ctx, orderNumber)
}

// TrackOrder retrieves an order by tracking number.
func (s *OrderService) TrackOrder(ctx context.Context, trackingNumber string) (*domain.Order, error) {
	if !pricing.IsValidTrackingNumber(trackingNumber) {
		return nil, ErrInvalidTrackingNumber
	}

	return s.orderRepo.GetByTrackingNumber(ctx, trackingNumber)
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// peakMultiplier resolves the effective time multiplier for a booking.
// Rush bookings pay peak rates regardless of the clock.
func (s *OrderService) peakMultiplier(isRush bool, now time.Time) float64 {
	if isRush {
		return pricing.RushMultiplier
	}
	return pricing.PeakMultiplier(now)
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
