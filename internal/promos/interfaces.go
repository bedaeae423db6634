package promos

import (
	"context"
	"errors"
)

// Sentinel errors returned by Repository implementations.
var (
	// ErrPromoCodeNotFound is returned when no promo code matches the lookup.
	ErrPromoCodeNotFound = errors.New("promo code not found")

	// ErrUsageLimitExhausted is returned when the conditional used_count
	// increment matched no row, i.e. the code hit max_uses between the read
	// and the write.
	ErrUsageLimitExhausted = errors.New("promo code usage limit exhausted")

	// ErrRideNotFound is returned when the redemption targets a ride that
	// does not exist.
	ErrRideNotFound = errors.New("ride not found")
)

// Repository is the persistence contract for promo redemption.
//
// Redeem must apply its three side effects (conditional used_count
// increment, audit record append, ride price update) as a single atomic unit
// of work, and must guarantee used_count never exceeds max_uses regardless
// of concurrent callers.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*PromoCode, error)
	Redeem(ctx context.Context, redemption *Redemption) error
}
