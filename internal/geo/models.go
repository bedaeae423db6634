package geo

// Coordinate is a geographic point in decimal degrees. It is always passed
// by value and has no lifecycle of its own.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Reason identifies why a coordinate or distance was rejected.
type Reason string

// Rejection reasons returned by the validator.
const (
	ReasonInvalidFormat    Reason = "invalid_coordinate_format"
	ReasonOutOfRange       Reason = "coordinate_out_of_range"
	ReasonOutOfServiceArea Reason = "coordinate_out_of_service_area"
	ReasonDegenerate       Reason = "degenerate_coordinate"
	ReasonDistanceDomain   Reason = "distance_out_of_domain"
)

// friendlyMessages maps rejection reasons to user-visible text. Unmapped
// reasons fall back to a generic message.
var friendlyMessages = map[Reason]string{
	ReasonInvalidFormat:    "Location coordinates are not valid numbers",
	ReasonOutOfRange:       "Location coordinates are outside the valid range",
	ReasonOutOfServiceArea: "Service is currently available within the United States only",
	ReasonDegenerate:       "Location could not be determined, please re-enter the address",
	ReasonDistanceDomain:   "Trip distance is outside the range we can service",
}

// Message returns the user-visible text for a rejection reason.
func (r Reason) Message() string {
	if msg, ok := friendlyMessages[r]; ok {
		return msg
	}
	return "We cannot process this request at this time"
}

// ValidationResult is the outcome of validating a single coordinate. When
// Valid is true, Coordinate holds the sanitized (6-decimal-rounded) point.
type ValidationResult struct {
	Valid      bool       `json:"valid"`
	Coordinate Coordinate `json:"coordinate,omitempty"`
	Reason     Reason     `json:"reason,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// DistanceResult is the outcome of a distance computation. When Ok is true,
// Miles holds the great-circle distance rounded to 2 decimals.
type DistanceResult struct {
	Ok      bool    `json:"ok"`
	Miles   float64 `json:"miles,omitempty"`
	Reason  Reason  `json:"reason,omitempty"`
	Message string  `json:"message,omitempty"`
}

func invalid(reason Reason, message string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason, Message: message}
}

func distanceErr(reason Reason, message string) DistanceResult {
	return DistanceResult{Ok: false, Reason: reason, Message: message}
}
