package pricing

import (
	"math"
	"time"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

// DefaultAvgSpeedMph is the assumed average speed when the distance comes
// from an external source rather than the local route estimator.
const DefaultAvgSpeedMph = 30.0

const (
	peakStartHour = 17
	peakEndHour   = 19
)

// RushMultiplier is the surcharge multiplier applied to the time-based fee
// components during peak windows and rush bookings.
const RushMultiplier = 1.2

// EstimateTime derives a time estimate from a known distance. Pass
// avgSpeedMph <= 0 to use DefaultAvgSpeedMph.
func EstimateTime(distanceMiles, avgSpeedMph float64, now time.Time) domain.TimeEstimate {
	if avgSpeedMph <= 0 {
		avgSpeedMph = DefaultAvgSpeedMph
	}

	driveMinutes := int(math.Ceil(distanceMiles / avgSpeedMph * 60))
	estimated := driveMinutes + bufferMinutes

	return domain.TimeEstimate{
		EstimatedMinutes:      estimated,
		TimeCapMinutes:        estimated + timeCapSlackMinutes,
		EstimatedDeliveryTime: now.Add(time.Duration(estimated) * time.Minute),
	}
}

// BillableMinutes clamps actual elapsed minutes into the billable window
// around the estimate. Drivers are neither penalized for minor efficiency
// gains nor over-paid for overruns beyond the agreed cap; disputes beyond
// the cap are a support matter, not an automatic charge.
func BillableMinutes(actualMinutes, estimatedMinutes int) int {
	floor := estimatedMinutes - timeCapSlackMinutes
	if floor < 0 {
		floor = 0
	}
	cap := estimatedMinutes + timeCapSlackMinutes

	switch {
	case actualMinutes < floor:
		return floor
	case actualMinutes > cap:
		return cap
	default:
		return actualMinutes
	}
}

// PeakMultiplier returns 1.2 during weekday rush hour (Mon-Fri, 17:00-18:59
// local time) and 1.0 otherwise.
func PeakMultiplier(t time.Time) float64 {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return 1.0
	}

	hour := t.Hour()
	if hour >= peakStartHour && hour < peakEndHour {
		return RushMultiplier
	}
	return 1.0
}

// ActualDurationMinutes returns the elapsed minutes between pickup and
// dropoff, rounded up. A dropoff before pickup yields a negative result;
// callers must treat that as a data-integrity error, not a billable time.
func ActualDurationMinutes(pickupTime, dropoffTime time.Time) int {
	return int(math.Ceil(dropoffTime.Sub(pickupTime).Minutes()))
}
