package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medtransit/fare-engine/internal/geo"
)

var (
	// nycPickup and nycDropoff are exactly 10.00 validated miles apart along
	// the same meridian, which makes the fare arithmetic easy to verify by
	// hand.
	nycPickup  = geo.Coordinate{Lat: 40.7128, Lng: -74.0060}
	nycDropoff = geo.Coordinate{Lat: 40.857523, Lng: -74.0060}
)

func newTestCalculator() *Calculator {
	return NewCalculator(geo.NewValidator())
}

// =============================================================================
// Test Estimate - happy path arithmetic
// =============================================================================

func TestEstimate_RoundTripWheelchairWithServices(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Estimate(nycPickup, nycDropoff, VehicleWheelchair, AdditionalServices{Ramp: true, Companion: true}, true)
	require.True(t, result.Ok)
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, 10.00, result.DistanceMiles)

	b := result.Breakdown
	assert.Equal(t, 70.0, b.BaseFare)
	assert.Equal(t, 25.0, b.DistanceFare)
	assert.Equal(t, 0.0, b.VehicleTypePremium)
	assert.Equal(t, 35.0, b.ServicesFee)
	// 130 * 0.95 round-trip discount applied to the pre-fee subtotal.
	assert.Equal(t, 123.5, b.Subtotal)
	assert.Equal(t, 6.18, b.PlatformFee)
	assert.Equal(t, 10.37, b.Tax)
	assert.Equal(t, 140.05, b.Total)
}

func TestEstimate_StandardOneWayNoServices(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Estimate(nycPickup, nycDropoff, VehicleStandard, AdditionalServices{}, false)
	require.True(t, result.Ok)

	b := result.Breakdown
	assert.Equal(t, 45.0, b.BaseFare)
	assert.Equal(t, 25.0, b.DistanceFare)
	assert.Equal(t, 0.0, b.ServicesFee)
	assert.Equal(t, 70.0, b.Subtotal)
	assert.Equal(t, 3.5, b.PlatformFee)
	assert.Equal(t, 5.88, b.Tax)
	assert.Equal(t, 79.38, b.Total)
}

func TestEstimate_AllServiceFeesAreAdditive(t *testing.T) {
	calc := newTestCalculator()

	all := AdditionalServices{Ramp: true, Companion: true, StairChair: true, WaitTime: true}
	result := calc.Estimate(nycPickup, nycDropoff, VehicleStretcher, all, false)
	require.True(t, result.Ok)

	assert.Equal(t, 100.0, result.Breakdown.ServicesFee)
	assert.Equal(t, 95.0, result.Breakdown.BaseFare)
	assert.Equal(t, 220.0, result.Breakdown.Subtotal)
}

func TestEstimate_IsDeterministic(t *testing.T) {
	calc := newTestCalculator()
	services := AdditionalServices{StairChair: true}

	first := calc.Estimate(nycPickup, nycDropoff, VehicleStretcher, services, true)
	second := calc.Estimate(nycPickup, nycDropoff, VehicleStretcher, services, true)
	assert.Equal(t, first, second)
}

// =============================================================================
// Test Estimate - failure propagation
// =============================================================================

func TestEstimate_PropagatesDistanceFailure(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Estimate(geo.Coordinate{Lat: 0, Lng: 0}, nycDropoff, VehicleStandard, AdditionalServices{}, false)
	assert.False(t, result.Ok)
	assert.Nil(t, result.Breakdown)
	assert.Equal(t, string(geo.ReasonDegenerate), result.Reason)
	assert.Contains(t, result.Message, "Pickup location: ")
}

func TestEstimate_RejectsUnknownVehicleType(t *testing.T) {
	calc := newTestCalculator()

	result := calc.Estimate(nycPickup, nycDropoff, VehicleType("hovercraft"), AdditionalServices{}, false)
	assert.False(t, result.Ok)
	assert.Equal(t, "unknown_vehicle_type", result.Reason)
}

// =============================================================================
// Test ParseVehicleType
// =============================================================================

func TestParseVehicleType(t *testing.T) {
	for _, valid := range []string{"standard", "wheelchair", "stretcher"} {
		vt, err := ParseVehicleType(valid)
		require.NoError(t, err)
		assert.Equal(t, VehicleType(valid), vt)
	}

	_, err := ParseVehicleType("sedan")
	assert.Error(t, err)
}

// =============================================================================
// Test presentation helpers
// =============================================================================

func TestEstimatedDurationLabel(t *testing.T) {
	calc := newTestCalculator()

	tests := []struct {
		miles float64
		want  string
	}{
		{10.0, "20 min"},
		{0.5, "1 min"},
		{29.5, "59 min"},
		{30.0, "1h 0m"},
		{45.0, "1h 30m"},
		{100.0, "3h 20m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calc.EstimatedDurationLabel(tt.miles), "distance %.1f", tt.miles)
	}
}

func TestFormatDistance(t *testing.T) {
	calc := newTestCalculator()

	assert.Equal(t, "10.0 mi", calc.FormatDistance(10.0))
	assert.Equal(t, "3.6 mi", calc.FormatDistance(3.56))
	assert.Equal(t, "0.1 mi", calc.FormatDistance(0.1))
}
