package promos

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medtransit/fare-engine/pkg/common"
	"github.com/medtransit/fare-engine/pkg/logger"
)

// Service handles promo code validation and redemption.
type Service struct {
	repo Repository
}

// NewService creates a new promos service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate checks a promo code against an amount without consuming a use.
// Expected rejections come back as an unsuccessful RedemptionResult; the
// error return is reserved for persistence failures. Checks run in a fixed
// order and short-circuit on the first failure.
func (s *Service) Validate(ctx context.Context, code string, userID uuid.UUID, amount float64, role string) (*RedemptionResult, error) {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrPromoCodeNotFound) {
			return failure(ReasonNotFound, amount), nil
		}
		return nil, err
	}

	if !promo.IsActive {
		return failure(ReasonInactive, amount), nil
	}

	if promo.ExpiresAt != nil && !promo.ExpiresAt.After(time.Now()) {
		return failure(ReasonExpired, amount), nil
	}

	if promo.MaxUses != nil && promo.UsedCount >= *promo.MaxUses {
		return failure(ReasonUsageLimitReached, amount), nil
	}

	if promo.MinimumAmount != nil && amount < *promo.MinimumAmount {
		return failure(ReasonMinimumAmountNotMet, amount), nil
	}

	if !roleEligible(promo.ApplicableRoles, role) {
		return failure(ReasonRoleIneligible, amount), nil
	}

	discountAmount, finalAmount := applyDiscount(promo, amount)

	return &RedemptionResult{
		Success:        true,
		Message:        "Promo code applied",
		OriginalAmount: amount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		PromoCode:      promo,
	}, nil
}

// Redeem validates a promo code and, on success, consumes one use: the audit
// record, the used_count increment and the ride price update are applied as
// one atomic unit by the repository. A concurrent redemption that exhausts
// the last use between our read and the write surfaces as a usage-limit
// failure, not an error.
func (s *Service) Redeem(ctx context.Context, code string, userID uuid.UUID, rideID *uuid.UUID, originalAmount float64, role string) (*RedemptionResult, error) {
	result, err := s.Validate(ctx, code, userID, originalAmount, role)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return result, nil
	}

	redemption := &Redemption{
		PromoCodeID:    result.PromoCode.ID,
		UserID:         userID,
		RideID:         rideID,
		OriginalAmount: result.OriginalAmount,
		FinalAmount:    result.FinalAmount,
		DiscountAmount: result.DiscountAmount,
	}

	if err := s.repo.Redeem(ctx, redemption); err != nil {
		if errors.Is(err, ErrUsageLimitExhausted) {
			return failure(ReasonUsageLimitReached, originalAmount), nil
		}
		if errors.Is(err, ErrRideNotFound) {
			return nil, common.NewNotFoundError("ride not found")
		}
		return nil, err
	}

	logger.Info("promo code redeemed",
		zap.String("promo_code_id", result.PromoCode.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("discount_amount", result.DiscountAmount),
	)

	return result, nil
}

// applyDiscount computes the discount for a promo code against an amount.
// Pure function of its inputs.
//
// set_price pins the final amount to discount_value as-is, which can exceed
// the original amount. TODO: confirm with product whether set_price should
// clamp to the original amount before this path ships to production.
func applyDiscount(promo *PromoCode, originalAmount float64) (discountAmount, finalAmount float64) {
	switch promo.DiscountType {
	case DiscountFixedAmount:
		discountAmount = math.Min(promo.DiscountValue, originalAmount)
		finalAmount = math.Max(0, originalAmount-discountAmount)
	case DiscountPercentage:
		discountAmount = originalAmount * promo.DiscountValue / 100
		finalAmount = math.Max(0, originalAmount-discountAmount)
	case DiscountSetPrice:
		discountAmount = math.Max(0, originalAmount-promo.DiscountValue)
		finalAmount = promo.DiscountValue
	default:
		// Unknown discount types are a safe no-op, not an error.
		discountAmount = 0
		finalAmount = originalAmount
	}
	return discountAmount, finalAmount
}

// roleEligible reports whether a role may use a code. A missing or malformed
// stored role set falls back to all known roles.
func roleEligible(applicableRoles []string, role string) bool {
	roles := applicableRoles
	if len(roles) == 0 {
		roles = knownRoles
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
