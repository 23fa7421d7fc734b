package pricing

import (
	"math"

	"github.com/nabeelmumtaz92/ReturnIt-sub009/internal/domain"
)

const (
	earthRadiusMiles  = 3959.0
	roadWindingFactor = 1.3
	cityAvgSpeedMph   = 25.0

	// bufferMinutes covers pickup and dropoff handling on top of drive time.
	bufferMinutes = 10

	// timeCapSlackMinutes is the window around the estimate within which
	// actual driver time is paid 1:1.
	timeCapSlackMinutes = 10
)

// EstimateRoute converts two coordinates into a road-adjusted distance and a
// time estimate. Purely deterministic, no network calls; callers validate
// lat/lng ranges before calling.
func EstimateRoute(pickupLat, pickupLng, storeLat, storeLng float64) domain.RouteEstimate {
	distance := haversineMiles(pickupLat, pickupLng, storeLat, storeLng) * roadWindingFactor
	distance = math.Round(distance*10) / 10

	driveMinutes := int(math.Ceil(distance / cityAvgSpeedMph * 60))
	estimated := driveMinutes + bufferMinutes

	return domain.RouteEstimate{
		DistanceMiles:    distance,
		EstimatedMinutes: estimated,
		TimeCapMinutes:   estimated + timeCapSlackMinutes,
	}
}

// haversineMiles returns the great-circle distance in miles between two
// points given in decimal degrees.
func haversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
