package promos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles database operations for promo codes.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new promos repository.
func NewRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByCode looks up a promo code case-insensitively.
func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*PromoCode, error) {
	query := `
		SELECT id, code, description, discount_type, discount_value,
		       minimum_amount, max_uses, used_count, expires_at, is_active,
		       applicable_roles, created_at, updated_at
		FROM promo_codes
		WHERE LOWER(code) = LOWER($1)
	`

	promo := &PromoCode{}
	var rolesJSON []byte

	err := r.db.QueryRow(ctx, query, code).Scan(
		&promo.ID, &promo.Code, &promo.Description, &promo.DiscountType,
		&promo.DiscountValue, &promo.MinimumAmount, &promo.MaxUses,
		&promo.UsedCount, &promo.ExpiresAt, &promo.IsActive,
		&rolesJSON, &promo.CreatedAt, &promo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromoCodeNotFound
		}
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}

	// A malformed role set is left nil, which the service treats as
	// applicable to all roles.
	if len(rolesJSON) > 0 {
		if err := json.Unmarshal(rolesJSON, &promo.ApplicableRoles); err != nil {
			promo.ApplicableRoles = nil
		}
	}

	return promo, nil
}

// Redeem applies one redemption as a single transaction: the conditional
// used_count increment, the audit record and the ride price update either
// all commit or all roll back. The increment is guarded in SQL so used_count
// can never pass max_uses no matter how many callers race on the same code.
func (r *PostgresRepository) Redeem(ctx context.Context, redemption *Redemption) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin redemption transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	incremented, err := incrementUsedCountIfBelowLimit(ctx, tx, redemption.PromoCodeID)
	if err != nil {
		return err
	}
	if !incremented {
		return ErrUsageLimitExhausted
	}

	if err := appendUsageRecord(ctx, tx, redemption); err != nil {
		return err
	}

	if redemption.RideID != nil {
		if err := updateRideFinalPrice(ctx, tx, *redemption.RideID, redemption.FinalAmount, redemption.PromoCodeID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit redemption: %w", err)
	}

	return nil
}

// incrementUsedCountIfBelowLimit performs the atomic conditional increment.
// Returns false when the code is inactive or already at its usage limit.
func incrementUsedCountIfBelowLimit(ctx context.Context, tx pgx.Tx, promoCodeID uuid.UUID) (bool, error) {
	query := `
		UPDATE promo_codes
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE id = $1
		  AND is_active = true
		  AND (max_uses IS NULL OR used_count < max_uses)
	`

	tag, err := tx.Exec(ctx, query, promoCodeID)
	if err != nil {
		return false, fmt.Errorf("failed to increment promo code usage: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// appendUsageRecord writes the append-only audit entry for a redemption.
func appendUsageRecord(ctx context.Context, tx pgx.Tx, redemption *Redemption) error {
	query := `
		INSERT INTO promo_code_usage
			(id, promo_code_id, user_id, ride_id, original_amount, final_amount, discount_amount, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := tx.Exec(ctx, query,
		uuid.New(), redemption.PromoCodeID, redemption.UserID, redemption.RideID,
		redemption.OriginalAmount, redemption.FinalAmount, redemption.DiscountAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to append promo usage record: %w", err)
	}

	return nil
}

// updateRideFinalPrice records the discounted price and the applied code on
// the ride.
func updateRideFinalPrice(ctx context.Context, tx pgx.Tx, rideID uuid.UUID, finalAmount float64, promoCodeID uuid.UUID) error {
	query := `
		UPDATE rides
		SET final_price = $1, promo_code_id = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := tx.Exec(ctx, query, finalAmount, promoCodeID, rideID)
	if err != nil {
		return fmt.Errorf("failed to update ride final price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ride %s: %w", rideID, ErrRideNotFound)
	}

	return nil
}
