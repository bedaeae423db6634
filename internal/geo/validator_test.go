package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Validate - format and range rejection
// =============================================================================

func TestValidate_RejectsNonFiniteCoordinates(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		c    Coordinate
	}{
		{"NaN latitude", Coordinate{Lat: math.NaN(), Lng: -90.0}},
		{"NaN longitude", Coordinate{Lat: 35.0, Lng: math.NaN()}},
		{"positive infinity latitude", Coordinate{Lat: math.Inf(1), Lng: -90.0}},
		{"negative infinity longitude", Coordinate{Lat: 35.0, Lng: math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.c)
			assert.False(t, result.Valid)
			assert.Equal(t, ReasonInvalidFormat, result.Reason)
		})
	}
}

func TestValidate_RejectsOutOfRangeCoordinates(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		c    Coordinate
	}{
		{"latitude above 90", Coordinate{Lat: 91.0, Lng: 0.0}},
		{"latitude below -90", Coordinate{Lat: -90.5, Lng: -100.0}},
		{"longitude above 180", Coordinate{Lat: 35.0, Lng: 180.1}},
		{"longitude below -180", Coordinate{Lat: 35.0, Lng: -180.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.c)
			assert.False(t, result.Valid)
			assert.Equal(t, ReasonOutOfRange, result.Reason)
		})
	}
}

// =============================================================================
// Test Validate - degenerate fallback coordinates
// =============================================================================

func TestValidate_RejectsDegenerateCoordinates(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		c    Coordinate
	}{
		{"null island", Coordinate{Lat: 0, Lng: 0}},
		{"near null island", Coordinate{Lat: 0.0005, Lng: -0.0009}},
		{"one one", Coordinate{Lat: 1, Lng: 1}},
		{"north pole", Coordinate{Lat: 90, Lng: 0}},
		{"south pole", Coordinate{Lat: -90, Lng: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.c)
			assert.False(t, result.Valid)
			assert.Equal(t, ReasonDegenerate, result.Reason)
		})
	}
}

// =============================================================================
// Test Validate - service area
// =============================================================================

func TestValidate_ServiceArea(t *testing.T) {
	v := NewValidator()

	t.Run("accepts continental US", func(t *testing.T) {
		// Memphis, TN
		result := v.Validate(Coordinate{Lat: 35.1495, Lng: -90.0490})
		require.True(t, result.Valid)
	})

	t.Run("accepts Alaska mainland", func(t *testing.T) {
		// Anchorage
		result := v.Validate(Coordinate{Lat: 61.2181, Lng: -149.9003})
		require.True(t, result.Valid)
	})

	t.Run("accepts Aleutian islands past the antimeridian", func(t *testing.T) {
		// Attu Island area, positive longitude
		result := v.Validate(Coordinate{Lat: 52.89, Lng: 173.18})
		require.True(t, result.Valid)
	})

	t.Run("accepts Hawaii", func(t *testing.T) {
		// Honolulu
		result := v.Validate(Coordinate{Lat: 21.3069, Lng: -157.8583})
		require.True(t, result.Valid)
	})

	t.Run("rejects London", func(t *testing.T) {
		result := v.Validate(Coordinate{Lat: 51.5074, Lng: -0.1278})
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonOutOfServiceArea, result.Reason)
		assert.Equal(t, "Service is currently available within the United States only", result.Message)
	})

	t.Run("rejects mid-Pacific", func(t *testing.T) {
		result := v.Validate(Coordinate{Lat: 10.0, Lng: -150.0})
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonOutOfServiceArea, result.Reason)
	})
}

func TestValidate_SanitizesToSixDecimals(t *testing.T) {
	v := NewValidator()

	result := v.Validate(Coordinate{Lat: 40.71280001234, Lng: -74.00599998765})
	require.True(t, result.Valid)
	assert.Equal(t, 40.7128, result.Coordinate.Lat)
	assert.Equal(t, -74.006, result.Coordinate.Lng)
}

// =============================================================================
// Test DistanceBetween
// =============================================================================

func TestDistanceBetween_KnownDistance(t *testing.T) {
	v := NewValidator()

	// One tenth of a degree of latitude is very close to 10 miles.
	nyc := Coordinate{Lat: 40.7128, Lng: -74.0060}
	north := Coordinate{Lat: 40.8576, Lng: -74.0060}

	result := v.DistanceBetween(nyc, north)
	require.True(t, result.Ok)
	assert.InDelta(t, 10.0, result.Miles, 0.05)
}

func TestDistanceBetween_Symmetry(t *testing.T) {
	v := NewValidator()

	pairs := []struct {
		name string
		a, b Coordinate
	}{
		{"NYC to Philadelphia", Coordinate{Lat: 40.7128, Lng: -74.0060}, Coordinate{Lat: 39.9526, Lng: -75.1652}},
		{"Seattle to Portland", Coordinate{Lat: 47.6062, Lng: -122.3321}, Coordinate{Lat: 45.5152, Lng: -122.6784}},
		{"Honolulu to Kailua", Coordinate{Lat: 21.3069, Lng: -157.8583}, Coordinate{Lat: 21.4022, Lng: -157.7394}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			forward := v.DistanceBetween(tt.a, tt.b)
			backward := v.DistanceBetween(tt.b, tt.a)
			require.True(t, forward.Ok)
			require.True(t, backward.Ok)
			assert.Equal(t, forward.Miles, backward.Miles)
		})
	}
}

func TestDistanceBetween_EndpointFailuresAreContextualized(t *testing.T) {
	v := NewValidator()
	memphis := Coordinate{Lat: 35.1495, Lng: -90.0490}

	t.Run("invalid pickup", func(t *testing.T) {
		result := v.DistanceBetween(Coordinate{Lat: 0, Lng: 0}, memphis)
		assert.False(t, result.Ok)
		assert.Equal(t, ReasonDegenerate, result.Reason)
		assert.Contains(t, result.Message, "Pickup location: ")
	})

	t.Run("invalid destination", func(t *testing.T) {
		result := v.DistanceBetween(memphis, Coordinate{Lat: 51.5074, Lng: -0.1278})
		assert.False(t, result.Ok)
		assert.Equal(t, ReasonOutOfServiceArea, result.Reason)
		assert.Contains(t, result.Message, "Destination: ")
	})
}

func TestDistanceBetween_DomainBounds(t *testing.T) {
	v := NewValidator()

	t.Run("rejects distances under a tenth of a mile", func(t *testing.T) {
		a := Coordinate{Lat: 35.1495, Lng: -90.0490}
		b := Coordinate{Lat: 35.14951, Lng: -90.04901}
		result := v.DistanceBetween(a, b)
		assert.False(t, result.Ok)
		assert.Equal(t, ReasonDistanceDomain, result.Reason)
	})

	t.Run("rejects implausibly long ground trips", func(t *testing.T) {
		seattle := Coordinate{Lat: 47.6062, Lng: -122.3321}
		miami := Coordinate{Lat: 25.7617, Lng: -80.1918}
		result := v.DistanceBetween(seattle, miami)
		assert.False(t, result.Ok)
		assert.Equal(t, ReasonDistanceDomain, result.Reason)
	})
}

func TestValidate_RepeatedCallsAreIdempotent(t *testing.T) {
	v := NewValidator()
	c := Coordinate{Lat: 40.7128, Lng: -74.0060}

	first := v.Validate(c)
	second := v.Validate(c)
	assert.Equal(t, first, second)
}
