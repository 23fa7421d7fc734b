package tests

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/repository"
	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/service"
)

func createTestOrder(t *testing.T, svc *service.OrderService) *domain.Order {
	t.Helper()

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	require.NoError(t, err)
	return order
}

func TestOrderLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	claims := NewMockClaimStore()
	svc := newOrderService(repo, claims, nil)

	order := createTestOrder(t, svc)

	// Driver accepts.
	accepted, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{
		OrderID:  order.ID,
		DriverID: "driver-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAssigned, accepted.Status)
	assert.Equal(t, "driver-1", accepted.DriverID)
	assert.Equal(t, 1, claims.Acquires)
	assert.Equal(t, 1, claims.Releases)

	// Driver collects the package.
	pickedUp, err := svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPickedUp, pickedUp.Status)
	assert.False(t, pickedUp.PickedUpAt.IsZero())

	// Simulate a long delivery well past the time cap.
	repo.Mutate(order.ID, func(o *domain.Order) {
		o.PickedUpAt = time.Now().Add(-100 * time.Minute)
	})

	completed, err := svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, completed.Status)
	assert.False(t, completed.DeliveredAt.IsZero())

	// 100 actual minutes clamps to the cap.
	assert.Equal(t, completed.Route.EstimatedMinutes+10, completed.BillableMinutes)

	// The final ledger reflects the clamped billable time.
	wantTimePay := math.Round(float64(completed.BillableMinutes)/60*8*completed.Fare.PeakMultiplier*100) / 100
	assert.InDelta(t, wantTimePay, completed.Fare.Driver.TimePay, 0.001)
}

func TestCompleteOrder_KeepsQuotedPeakMultiplier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	svc := newOrderService(repo, NewMockClaimStore(), nil)

	req := validCreateRequest()
	req.IsRush = true

	order, err := svc.CreateOrder(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 1.2, order.Fare.PeakMultiplier)

	_, err = svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)

	// Pickup lands well outside any rush window (Wednesday 10:00).
	repo.Mutate(order.ID, func(o *domain.Order) {
		o.PickedUpAt = time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)
	})

	completed, err := svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, 1.2, completed.Fare.PeakMultiplier,
		"the multiplier quoted at booking must survive completion")

	wantTimePay := math.Round(float64(completed.BillableMinutes)/60*8*1.2*100) / 100
	assert.InDelta(t, wantTimePay, completed.Fare.Driver.TimePay, 0.001)
}

func TestCompleteOrder_PickupDuringRushDoesNotRerate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	svc := newOrderService(repo, NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)
	quoted := order.Fare.PeakMultiplier

	_, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)

	// Pickup inside the weekday rush window (Wednesday 17:30).
	repo.Mutate(order.ID, func(o *domain.Order) {
		o.PickedUpAt = time.Date(2025, 3, 12, 17, 30, 0, 0, time.Local)
	})

	completed, err := svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, quoted, completed.Fare.PeakMultiplier,
		"pickup timing must not re-rate a frozen quote")
}

func TestCompleteOrder_FastDeliveryClampsToFloor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	svc := newOrderService(repo, NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)
	_, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)

	// Completing immediately means near-zero actual minutes.
	completed, err := svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)

	floor := order.Route.EstimatedMinutes - 10
	if floor < 0 {
		floor = 0
	}
	assert.Equal(t, floor, completed.BillableMinutes)
}

func TestCompleteOrder_DropoffBeforePickup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	svc := newOrderService(repo, NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)
	_, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)

	repo.Mutate(order.ID, func(o *domain.Order) {
		o.PickedUpAt = time.Now().Add(30 * time.Minute)
	})

	_, err = svc.CompleteOrder(ctx, order.ID)

	assert.ErrorIs(t, err, service.ErrDropoffBeforePickup)
}

func TestAcceptOrder_AlreadyClaimed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	claims := NewMockClaimStore()
	svc := newOrderService(repo, claims, nil)

	order := createTestOrder(t, svc)

	// Another driver's in-flight acceptance holds the lock.
	acquired, err := claims.AcquireOrderClaim(ctx, order.ID, time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-2"})

	assert.ErrorIs(t, err, service.ErrOrderAlreadyClaimed)
	assert.Zero(t, repo.UpdateCalls)
}

func TestAcceptOrder_NotClaimableAfterAssignment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)

	_, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)

	// The claim lock was released, but the state machine still refuses.
	_, err = svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-2"})

	assert.ErrorIs(t, err, service.ErrOrderNotClaimable)
}

func TestAcceptOrder_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	_, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: "", DriverID: "driver-1"})
	assert.ErrorIs(t, err, service.ErrInvalidOrderID)

	_, err = svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: "some-id", DriverID: ""})
	assert.ErrorIs(t, err, service.ErrInvalidDriverID)
}

func TestMarkPickedUp_RequiresAssignment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)

	_, err := svc.MarkPickedUp(ctx, order.ID)

	assert.ErrorIs(t, err, service.ErrOrderNotAssigned)
}

func TestCompleteOrder_StateMachine(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMockOrderRepository()
	svc := newOrderService(repo, NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)

	_, err := svc.CompleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrOrderNotPickedUp)

	_, err = svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)
	_, err = svc.CompleteOrder(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.CompleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, service.ErrOrderAlreadyCompleted)
}

func TestCancelOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)

	cancelled, err := svc.CancelOrder(ctx, service.CancelOrderRequest{
		OrderID: order.ID,
		Reason:  "changed my mind",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, "changed my mind", cancelled.CancelReason)
	assert.False(t, cancelled.CancelledAt.IsZero())

	_, err = svc.CancelOrder(ctx, service.CancelOrderRequest{OrderID: order.ID})
	assert.ErrorIs(t, err, service.ErrOrderAlreadyCancelled)
}

func TestCancelOrder_AfterPickupForbidden(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)
	_, err := svc.AcceptOrder(ctx, service.AcceptOrderRequest{OrderID: order.ID, DriverID: "driver-1"})
	require.NoError(t, err)
	_, err = svc.MarkPickedUp(ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, service.CancelOrderRequest{OrderID: order.ID})

	assert.ErrorIs(t, err, service.ErrOrderCannotBeCancelled)
}

func TestGetOrder_NotFound(t *testing.T) {
	t.Parallel()

	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	_, err := svc.GetOrder(context.Background(), "missing-id")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetOrderByNumber(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)

	found, err := svc.GetOrderByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = svc.GetOrderByNumber(ctx, "ORD-12")
	assert.ErrorIs(t, err, service.ErrInvalidOrderNumber)

	_, err = svc.GetOrderByNumber(ctx, "ORD-000000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrackOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newOrderService(NewMockOrderRepository(), NewMockClaimStore(), nil)

	order := createTestOrder(t, svc)

	tracked, err := svc.TrackOrder(ctx, order.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, tracked.ID)

	_, err = svc.TrackOrder(ctx, "not-a-tracking-number")
	assert.ErrorIs(t, err, service.ErrInvalidTrackingNumber)

	_, err = svc.TrackOrder(ctx, "RTN-ZZZZZZZZ")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
