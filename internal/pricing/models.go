package pricing

import "fmt"

// VehicleType is the closed set of vehicle classes this platform dispatches.
type VehicleType string

const (
	VehicleStandard   VehicleType = "standard"
	VehicleWheelchair VehicleType = "wheelchair"
	VehicleStretcher  VehicleType = "stretcher"
)

// ParseVehicleType converts a raw string into a VehicleType. Unknown values
// are rejected rather than defaulted.
func ParseVehicleType(s string) (VehicleType, error) {
	switch VehicleType(s) {
	case VehicleStandard, VehicleWheelchair, VehicleStretcher:
		return VehicleType(s), nil
	default:
		return "", fmt.Errorf("unknown vehicle type %q", s)
	}
}

// AdditionalServices is the set of independently billable service flags a
// rider can request. Any subset, including none, is valid.
type AdditionalServices struct {
	Ramp       bool `json:"ramp"`
	Companion  bool `json:"companion"`
	StairChair bool `json:"stair_chair"`
	WaitTime   bool `json:"wait_time"`
}

// FareBreakdown is the immutable fare record returned to callers. Every
// field is rounded to 2 decimals independently from its full-precision
// value; no field is derived by re-summing already-rounded fields.
type FareBreakdown struct {
	BaseFare           float64 `json:"base_fare"`
	DistanceFare       float64 `json:"distance_fare"`
	VehicleTypePremium float64 `json:"vehicle_type_premium"`
	ServicesFee        float64 `json:"services_fee"`
	Subtotal           float64 `json:"subtotal"`
	PlatformFee        float64 `json:"platform_fee"`
	Tax                float64 `json:"tax"`
	Total              float64 `json:"total"`
}

// FareResult is the tagged outcome of a fare estimate. On failure it carries
// the validator's reason and message and no partial breakdown.
type FareResult struct {
	Ok            bool           `json:"ok"`
	DistanceMiles float64        `json:"distance_miles,omitempty"`
	Breakdown     *FareBreakdown `json:"breakdown,omitempty"`
	Reason        string         `json:"reason,omitempty"`
	Message       string         `json:"message,omitempty"`
}

// EstimateRequest is the HTTP payload for a fare estimate.
type EstimateRequest struct {
	PickupLatitude   float64            `json:"pickup_latitude" binding:"required,latitude"`
	PickupLongitude  float64            `json:"pickup_longitude" binding:"required,longitude"`
	DropoffLatitude  float64            `json:"dropoff_latitude" binding:"required,latitude"`
	DropoffLongitude float64            `json:"dropoff_longitude" binding:"required,longitude"`
	VehicleType      string             `json:"vehicle_type" binding:"required,vehicle_type"`
	Services         AdditionalServices `json:"services"`
	IsRoundTrip      bool               `json:"is_round_trip"`
}

// EstimateResponse is the HTTP payload returned for a successful estimate.
type EstimateResponse struct {
	Breakdown         *FareBreakdown `json:"breakdown"`
	DistanceMiles     float64        `json:"distance_miles"`
	FormattedDistance string         `json:"formatted_distance"`
	EstimatedDuration string         `json:"estimated_duration"`
	Currency          string         `json:"currency"`
}
