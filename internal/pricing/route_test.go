package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		pickupLat        float64
		pickupLng        float64
		storeLat         float64
		storeLng         float64
		wantDistance     float64
		wantEstimatedMin int
	}{
		{
			name:             "identical coordinates",
			pickupLat:        38.627,
			pickupLng:        -90.1994,
			storeLat:         38.627,
			storeLng:         -90.1994,
			wantDistance:     0,
			wantEstimatedMin: 10, // handling buffer only
		},
		{
			name:      "one degree of latitude",
			pickupLat: 38.0, pickupLng: -90.0,
			storeLat: 39.0, storeLng: -90.0,
			// 69.1 great-circle miles * 1.3 road factor, rounded to 1dp.
			wantDistance:     89.8,
			wantEstimatedMin: 226,
		},
		{
			name:      "short hop within a city",
			pickupLat: 38.6270, pickupLng: -90.1994,
			storeLat: 38.6530, storeLng: -90.2435,
			wantDistance:     3.9,
			wantEstimatedMin: 20,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := EstimateRoute(tt.pickupLat, tt.pickupLng, tt.storeLat, tt.storeLng)

			assert.InDelta(t, tt.wantDistance, got.DistanceMiles, 0.0001)
			assert.Equal(t, tt.wantEstimatedMin, got.EstimatedMinutes)
			assert.Equal(t, tt.wantEstimatedMin+10, got.TimeCapMinutes)
		})
	}
}

func TestEstimateRoute_MonotonicInDistance(t *testing.T) {
	t.Parallel()

	prevMinutes := 0
	for i := 0; i <= 20; i++ {
		offset := float64(i) * 0.05
		got := EstimateRoute(38.0, -90.0, 38.0+offset, -90.0)

		assert.GreaterOrEqual(t, got.DistanceMiles, 0.0)
		assert.GreaterOrEqual(t, got.EstimatedMinutes, prevMinutes,
			"estimated minutes must not decrease as distance grows")
		assert.Equal(t, got.EstimatedMinutes+10, got.TimeCapMinutes)

		prevMinutes = got.EstimatedMinutes
	}
}

func TestEstimateRoute_DistanceRoundedToOneDecimal(t *testing.T) {
	t.Parallel()

	got := EstimateRoute(38.6270, -90.1994, 38.7881, -90.3026)

	scaled := got.DistanceMiles * 10
	assert.InDelta(t, scaled, float64(int(scaled+0.5)), 1e-9)
}
