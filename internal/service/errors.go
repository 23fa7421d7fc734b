package service

import (
	"errors"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

var (
	// ErrInvalidCustomerID is returned when customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidOrderID is returned when order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidPickupLocation is returned when pickup coordinates are invalid.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidStoreLocation is returned when store coordinates are invalid.
	ErrInvalidStoreLocation = errors.New("invalid store location")

	// ErrInvalidPickupAddress is returned when the pickup address is incomplete.
	ErrInvalidPickupAddress = errors.New("invalid pickup address")

	// ErrInvalidTip is returned when the tip amount is negative.
	ErrInvalidTip = errors.New("invalid tip amount")

	// ErrInvalidBoxSize is returned when the box size is not a known tier.
	ErrInvalidBoxSize = errors.New("invalid box size")

	// ErrInvalidOrderNumber is returned when an order number fails format validation.
	ErrInvalidOrderNumber = errors.New("invalid order number")

	// ErrInvalidTrackingNumber is returned when a tracking number fails format validation.
	ErrInvalidTrackingNumber = errors.New("invalid tracking number")

	// ErrOrderNotClaimable is returned when accepting an order not in CREATED state.
	ErrOrderNotClaimable = errors.New("order cannot be accepted in current state")

	// ErrOrderAlreadyClaimed is returned when another driver holds the claim lock.
	ErrOrderAlreadyClaimed = errors.New("order is being claimed by another driver")

	// ErrOrderNotAssigned is returned when confirming pickup on an order not in ASSIGNED state.
	ErrOrderNotAssigned = errors.New("order not assigned")

	// ErrOrderNotPickedUp is returned when completing an order not in PICKED_UP state.
	ErrOrderNotPickedUp = errors.New("order not picked up")

	// ErrOrderAlreadyCompleted is returned when mutating a completed order.
	ErrOrderAlreadyCompleted = errors.New("order already completed")

	// ErrOrderAlreadyCancelled is returned when cancelling an already cancelled order.
	ErrOrderAlreadyCancelled = errors.New("order already cancelled")

	// ErrOrderCannotBeCancelled is returned when the order state forbids cancellation.
	ErrOrderCannotBeCancelled = errors.New("order cannot be cancelled in current state")

	// ErrDropoffBeforePickup is returned when the recorded dropoff precedes the pickup.
	// That is a data-integrity failure, never a billable duration.
	ErrDropoffBeforePickup = errors.New("dropoff time precedes pickup time")
)

// ValidateBoxSize parses a box size string, defaulting empty input to MEDIUM.
func ValidateBoxSize(s string) (domain.BoxSize, error) {
	switch domain.BoxSize(s) {
	case "":
		return domain.BoxSizeMedium, nil
	case domain.BoxSizeSmall, domain.BoxSizeMedium, domain.BoxSizeLarge, domain.BoxSizeXL:
		return domain.BoxSize(s), nil
	default:
		return "", ErrInvalidBoxSize
	}
}
