package promos

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medtransit/fare-engine/pkg/common"
	"github.com/medtransit/fare-engine/pkg/validation"
)

// Handler handles HTTP requests for promo codes
type Handler struct {
	service *Service
}

// NewHandler creates a new promos handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type validateRequest struct {
	Code   string  `json:"code" binding:"required"`
	UserID string  `json:"user_id" binding:"required,uuid"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Role   string  `json:"role" binding:"required,oneof=rider driver admin"`
}

type redeemRequest struct {
	Code   string  `json:"code" binding:"required"`
	UserID string  `json:"user_id" binding:"required,uuid"`
	RideID *string `json:"ride_id" binding:"omitempty,uuid"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Role   string  `json:"role" binding:"required,oneof=rider driver admin"`
}

// ValidatePromoCode checks a promo code against an amount without consuming
// a use. Rejections are returned as a result payload, not an HTTP error, so
// the caller can distinguish "rejected" from "could not process".
func (h *Handler) ValidatePromoCode(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	result, err := h.service.Validate(c.Request.Context(), req.Code, userID, req.Amount, req.Role)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "We cannot process this request at this time")
		return
	}

	common.SuccessResponse(c, result)
}

// RedeemPromoCode consumes one use of a promo code for a ride.
func (h *Handler) RedeemPromoCode(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid user_id")
		return
	}

	var rideID *uuid.UUID
	if req.RideID != nil {
		parsed, err := uuid.Parse(*req.RideID)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid ride_id")
			return
		}
		rideID = &parsed
	}

	result, err := h.service.Redeem(c.Request.Context(), req.Code, userID, rideID, req.Amount, req.Role)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "We cannot process this request at this time")
		return
	}

	common.SuccessResponse(c, result)
}
