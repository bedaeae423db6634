package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medtransit/fare-engine/internal/geo"
	"github.com/medtransit/fare-engine/pkg/common"
	"github.com/medtransit/fare-engine/pkg/validation"
)

// Handler handles HTTP requests for fare estimation
type Handler struct {
	calculator *Calculator
}

// NewHandler creates a new pricing handler
func NewHandler(calculator *Calculator) *Handler {
	return &Handler{calculator: calculator}
}

// Estimate computes a fare estimate for a trip
func (h *Handler) Estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	vehicleType, err := ParseVehicleType(req.VehicleType)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	pickup := geo.Coordinate{Lat: req.PickupLatitude, Lng: req.PickupLongitude}
	dropoff := geo.Coordinate{Lat: req.DropoffLatitude, Lng: req.DropoffLongitude}

	result := h.calculator.Estimate(pickup, dropoff, vehicleType, req.Services, req.IsRoundTrip)
	if !result.Ok {
		common.ErrorResponse(c, http.StatusUnprocessableEntity, result.Message)
		return
	}

	common.SuccessResponse(c, EstimateResponse{
		Breakdown:         result.Breakdown,
		DistanceMiles:     result.DistanceMiles,
		FormattedDistance: h.calculator.FormatDistance(result.DistanceMiles),
		EstimatedDuration: h.calculator.EstimatedDurationLabel(result.DistanceMiles),
		Currency:          "USD",
	})
}
