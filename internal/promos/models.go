package promos

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType determines how a promo code's discount is computed.
type DiscountType string

const (
	DiscountFixedAmount DiscountType = "fixed_amount"
	DiscountPercentage  DiscountType = "percentage"
	DiscountSetPrice    DiscountType = "set_price"
)

// Platform roles a promo code can be scoped to.
const (
	RoleRider  = "rider"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

// knownRoles is the fallback when a stored role set is malformed: the code is
// treated as applicable to everyone rather than no one.
var knownRoles = []string{RoleRider, RoleDriver, RoleAdmin}

// PromoCode represents a promotional code. Codes are created by the admin
// workflow; the only mutation this service performs is the used_count
// increment during redemption.
type PromoCode struct {
	ID              uuid.UUID    `json:"id" db:"id"`
	Code            string       `json:"code" db:"code"`
	Description     string       `json:"description" db:"description"`
	DiscountType    DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue   float64      `json:"discount_value" db:"discount_value"`
	MinimumAmount   *float64     `json:"minimum_amount,omitempty" db:"minimum_amount"`
	MaxUses         *int         `json:"max_uses,omitempty" db:"max_uses"`
	UsedCount       int          `json:"used_count" db:"used_count"`
	ExpiresAt       *time.Time   `json:"expires_at,omitempty" db:"expires_at"`
	IsActive        bool         `json:"is_active" db:"is_active"`
	ApplicableRoles []string     `json:"applicable_roles,omitempty" db:"applicable_roles"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// UsageRecord is the append-only audit entry written for every successful
// redemption. Records are never mutated or deleted.
type UsageRecord struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	PromoCodeID    uuid.UUID  `json:"promo_code_id" db:"promo_code_id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	RideID         *uuid.UUID `json:"ride_id,omitempty" db:"ride_id"`
	OriginalAmount float64    `json:"original_amount" db:"original_amount"`
	FinalAmount    float64    `json:"final_amount" db:"final_amount"`
	DiscountAmount float64    `json:"discount_amount" db:"discount_amount"`
	AppliedAt      time.Time  `json:"applied_at" db:"applied_at"`
}

// Redemption is the unit of work handed to the repository: one conditional
// counter increment, one audit record, one ride price update, all-or-nothing.
type Redemption struct {
	PromoCodeID    uuid.UUID
	UserID         uuid.UUID
	RideID         *uuid.UUID
	OriginalAmount float64
	FinalAmount    float64
	DiscountAmount float64
}

// FailureReason identifies why a promo code was rejected.
type FailureReason string

const (
	ReasonNotFound            FailureReason = "promo_code_not_found"
	ReasonInactive            FailureReason = "promo_code_inactive"
	ReasonExpired             FailureReason = "promo_code_expired"
	ReasonUsageLimitReached   FailureReason = "promo_usage_limit_reached"
	ReasonMinimumAmountNotMet FailureReason = "promo_minimum_amount_not_met"
	ReasonRoleIneligible      FailureReason = "promo_role_ineligible"
)

var friendlyMessages = map[FailureReason]string{
	ReasonNotFound:            "This promo code does not exist",
	ReasonInactive:            "This promo code is no longer active",
	ReasonExpired:             "This promo code has expired",
	ReasonUsageLimitReached:   "This promo code has reached its usage limit",
	ReasonMinimumAmountNotMet: "The ride amount does not meet the minimum for this promo code",
	ReasonRoleIneligible:      "This promo code is not available for your account",
}

// Message returns the user-visible text for a failure reason.
func (r FailureReason) Message() string {
	if msg, ok := friendlyMessages[r]; ok {
		return msg
	}
	return "We cannot process this request at this time"
}

// RedemptionResult is the outcome of validating or redeeming a promo code.
// On success it carries the discounted amounts and a snapshot of the matched
// code.
type RedemptionResult struct {
	Success        bool          `json:"success"`
	Reason         FailureReason `json:"reason,omitempty"`
	Message        string        `json:"message"`
	OriginalAmount float64       `json:"original_amount"`
	DiscountAmount float64       `json:"discount_amount"`
	FinalAmount    float64       `json:"final_amount"`
	PromoCode      *PromoCode    `json:"promo_code,omitempty"`
}

func failure(reason FailureReason, originalAmount float64) *RedemptionResult {
	return &RedemptionResult{
		Success:        false,
		Reason:         reason,
		Message:        reason.Message(),
		OriginalAmount: originalAmount,
		FinalAmount:    originalAmount,
	}
}
