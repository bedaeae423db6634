package pricing

import (
	"fmt"
	"math"

	"github.com/medtransit/fare-engine/internal/geo"
)

const (
	perMileRate = 2.50

	// roundTripFactor is the flat 5% discount applied to the pre-fee subtotal
	// of round trips.
	roundTripFactor = 0.95

	platformFeeRate = 0.05
	taxRate         = 0.08

	// averageSpeedMph is the assumed ground speed for duration estimates.
	averageSpeedMph = 30.0
)

// baseFares holds the flat base fare per vehicle class. The vehicle premium
// is already folded into these values, which is why FareBreakdown carries
// VehicleTypePremium as an explicit zero.
var baseFares = map[VehicleType]float64{
	VehicleStandard:   45,
	VehicleWheelchair: 70,
	VehicleStretcher:  95,
}

// serviceFees holds the flat per-service fee for each additional service.
var serviceFees = struct {
	ramp       float64
	companion  float64
	stairChair float64
	waitTime   float64
}{
	ramp:       15,
	companion:  20,
	stairChair: 30,
	waitTime:   35,
}

// Calculator turns validated trip attributes into a fare breakdown. It is
// the deterministic fallback pricing path used when the routing provider is
// unavailable, so it must produce the same fare for the same inputs every
// time. Stateless and safe for concurrent use.
type Calculator struct {
	validator *geo.Validator
}

// NewCalculator creates a new fare calculator.
func NewCalculator(validator *geo.Validator) *Calculator {
	return &Calculator{validator: validator}
}

// Estimate computes the fare for a trip. Distance failures from the
// coordinate validator are propagated as-is; no partial breakdown is
// produced. All intermediate math runs at full float64 precision and each
// reported field is rounded independently at the output boundary.
func (c *Calculator) Estimate(pickup, dropoff geo.Coordinate, vehicleType VehicleType, services AdditionalServices, isRoundTrip bool) FareResult {
	distance := c.validator.DistanceBetween(pickup, dropoff)
	if !distance.Ok {
		return FareResult{Ok: false, Reason: string(distance.Reason), Message: distance.Message}
	}

	baseFare, ok := baseFares[vehicleType]
	if !ok {
		return FareResult{
			Ok:      false,
			Reason:  "unknown_vehicle_type",
			Message: fmt.Sprintf("unknown vehicle type %q", vehicleType),
		}
	}

	distanceFare := distance.Miles * perMileRate
	servicesFee := servicesFeeTotal(services)

	subtotal := baseFare + distanceFare + servicesFee
	if isRoundTrip {
		subtotal *= roundTripFactor
	}

	platformFee := subtotal * platformFeeRate
	subtotalWithFee := subtotal + platformFee
	tax := subtotalWithFee * taxRate
	total := subtotalWithFee + tax

	return FareResult{
		Ok:            true,
		DistanceMiles: distance.Miles,
		Breakdown: &FareBreakdown{
			BaseFare:           round2(baseFare),
			DistanceFare:       round2(distanceFare),
			VehicleTypePremium: 0,
			ServicesFee:        round2(servicesFee),
			Subtotal:           round2(subtotal),
			PlatformFee:        round2(platformFee),
			Tax:                round2(tax),
			Total:              round2(total),
		},
	}
}

// EstimatedDurationLabel formats the expected trip duration for display,
// assuming the average ground speed.
func (c *Calculator) EstimatedDurationLabel(distanceMiles float64) string {
	totalMinutes := int(math.Round(distanceMiles / averageSpeedMph * 60))
	if totalMinutes < 60 {
		return fmt.Sprintf("%d min", totalMinutes)
	}
	return fmt.Sprintf("%dh %dm", totalMinutes/60, totalMinutes%60)
}

// FormatDistance formats a distance for display with one decimal place.
func (c *Calculator) FormatDistance(distanceMiles float64) string {
	return fmt.Sprintf("%.1f mi", distanceMiles)
}

func servicesFeeTotal(services AdditionalServices) float64 {
	var fee float64
	if services.Ramp {
		fee += serviceFees.ramp
	}
	if services.Companion {
		fee += serviceFees.companion
	}
	if services.StairChair {
		fee += serviceFees.stairChair
	}
	if services.WaitTime {
		fee += serviceFees.waitTime
	}
	return fee
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
