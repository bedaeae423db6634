package geo

import (
	"fmt"
	"math"
)

const (
	// earthRadiusMiles is the mean Earth radius used by the haversine formula.
	earthRadiusMiles = 3959.0

	// minDistanceMiles and maxDistanceMiles bound the distances this service
	// considers meaningful for ground transport.
	minDistanceMiles = 0.1
	maxDistanceMiles = 1000.0

	// degenerateTolerance is how close (in degrees) a point must be to a known
	// fallback value to be treated as degenerate.
	degenerateTolerance = 0.001
)

// boundingBox is an inclusive lat/lng rectangle.
type boundingBox struct {
	name   string
	minLat float64
	maxLat float64
	minLng float64
	maxLng float64
}

func (b boundingBox) contains(c Coordinate) bool {
	return c.Lat >= b.minLat && c.Lat <= b.maxLat &&
		c.Lng >= b.minLng && c.Lng <= b.maxLng
}

// serviceArea is the union of boxes covering the serviceable United States.
// Alaska is split in two because its Aleutian chain crosses the antimeridian.
var serviceArea = []boundingBox{
	{name: "continental_us", minLat: 24.0, maxLat: 49.5, minLng: -125.0, maxLng: -66.9},
	{name: "alaska", minLat: 51.0, maxLat: 71.5, minLng: -179.1, maxLng: -129.0},
	{name: "alaska_aleutian", minLat: 51.0, maxLat: 71.5, minLng: 172.0, maxLng: 180.0},
	{name: "hawaii", minLat: 18.9, maxLat: 28.5, minLng: -178.0, maxLng: -154.0},
}

// degenerateCoordinates are default/error values upstream geocoders emit in
// place of a real location.
var degenerateCoordinates = []Coordinate{
	{Lat: 0, Lng: 0},
	{Lat: 1, Lng: 1},
	{Lat: 90, Lng: 0},
	{Lat: -90, Lng: 0},
}

// Validator validates geographic points and computes great-circle distances.
// It is stateless and safe for concurrent use.
type Validator struct{}

// NewValidator creates a new coordinate validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a raw coordinate and returns either the sanitized point
// (lat/lng rounded to 6 decimal places) or a rejection reason.
func (v *Validator) Validate(c Coordinate) ValidationResult {
	if !isFinite(c.Lat) || !isFinite(c.Lng) {
		return invalid(ReasonInvalidFormat, ReasonInvalidFormat.Message())
	}

	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return invalid(ReasonOutOfRange, ReasonOutOfRange.Message())
	}

	for _, d := range degenerateCoordinates {
		if math.Abs(c.Lat-d.Lat) <= degenerateTolerance && math.Abs(c.Lng-d.Lng) <= degenerateTolerance {
			return invalid(ReasonDegenerate, ReasonDegenerate.Message())
		}
	}

	if !inServiceArea(c) {
		return invalid(ReasonOutOfServiceArea, ReasonOutOfServiceArea.Message())
	}

	sanitized := Coordinate{
		Lat: roundTo(c.Lat, 6),
		Lng: roundTo(c.Lng, 6),
	}
	return ValidationResult{Valid: true, Coordinate: sanitized}
}

// DistanceBetween validates both endpoints and computes the great-circle
// distance between them in miles. Validation failures are contextualized so
// the caller can tell which endpoint was rejected. The result is rounded to
// 2 decimal places only at the return boundary.
func (v *Validator) DistanceBetween(pickup, dropoff Coordinate) DistanceResult {
	pickupResult := v.Validate(pickup)
	if !pickupResult.Valid {
		return distanceErr(pickupResult.Reason, fmt.Sprintf("Pickup location: %s", pickupResult.Message))
	}

	dropoffResult := v.Validate(dropoff)
	if !dropoffResult.Valid {
		return distanceErr(dropoffResult.Reason, fmt.Sprintf("Destination: %s", dropoffResult.Message))
	}

	miles := haversineMiles(pickupResult.Coordinate, dropoffResult.Coordinate)

	if miles < minDistanceMiles || miles > maxDistanceMiles {
		return distanceErr(ReasonDistanceDomain, ReasonDistanceDomain.Message())
	}

	return DistanceResult{Ok: true, Miles: roundTo(miles, 2)}
}

// haversineMiles returns the great-circle distance between two points in
// miles. Operates on already-sanitized coordinates.
func haversineMiles(a, b Coordinate) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func inServiceArea(c Coordinate) bool {
	for _, box := range serviceArea {
		if box.contains(c) {
			return true
		}
	}
	return false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
