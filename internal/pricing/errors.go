package pricing

import "errors"

var (
	// ErrOracleUnavailable is returned internally when no tax oracle is
	// configured; it is always absorbed by the fail-open fallback.
	ErrOracleUnavailable = errors.New("tax oracle unavailable")

	// ErrOrderNumberExhausted is returned when order number generation
	// keeps colliding after the bounded retries.
	ErrOrderNumberExhausted = errors.New("order number generation exhausted retries")

	// ErrTrackingNumberExhausted is returned when tracking number
	// generation keeps colliding after the bounded retries.
	ErrTrackingNumberExhausted = errors.New("tracking number generation exhausted retries")
)
