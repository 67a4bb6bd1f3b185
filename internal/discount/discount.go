package discount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

var hundred = decimal.NewFromInt(100)

// Effect is the pricing impact of a discount on a single line.
type Effect struct {
	Amount       decimal.Decimal
	IsPercentage bool
}

// LineAmount returns the unrounded discount for qty units at price. Flat
// discounts apply per unit. The result never exceeds the line value, so a
// discount can zero a line but not push it below zero.
func (e Effect) LineAmount(price decimal.Decimal, qty int32) decimal.Decimal {
	q := decimal.NewFromInt32(qty)
	line := price.Mul(q)
	var amount decimal.Decimal
	if e.IsPercentage {
		amount = line.Mul(e.Amount).Div(hundred)
	} else {
		amount = e.Amount.Mul(q)
	}
	if amount.GreaterThan(line) {
		return line
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Rule is a stored discount with its validity window.
type Rule struct {
	ID        int64
	Effect    Effect
	StartDate time.Time
	EndDate   *time.Time
}

// ActiveAt reports whether the discount still applies at now. Only the end
// date bounds validity; an open-ended discount never expires.
func (r Rule) ActiveAt(now time.Time) bool {
	return r.EndDate == nil || !r.EndDate.Before(now)
}

// Querier is the subset of generated queries the resolver needs.
type Querier interface {
	GetDiscountByID(ctx context.Context, id int64) (dbgen.Discount, error)
}

// Resolver looks up the discount attached to a product variation.
type Resolver struct {
	Q   Querier
	Now func() time.Time
}

// Resolve returns the discount effect for discountID when one is attached and
// active. Missing or expired discounts yield ok=false without an error.
func (r Resolver) Resolve(ctx context.Context, discountID pgtype.Int8) (Effect, bool, error) {
	if !discountID.Valid {
		return Effect{}, false, nil
	}
	if r.Q == nil {
		return Effect{}, false, errors.New("discount: queries not configured")
	}
	row, err := r.Q.GetDiscountByID(ctx, discountID.Int64)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Effect{}, false, nil
		}
		return Effect{}, false, fmt.Errorf("discount: load %d: %w", discountID.Int64, err)
	}
	rule := FromRow(row)
	if !rule.ActiveAt(r.now()) {
		return Effect{}, false, nil
	}
	return rule.Effect, true, nil
}

func (r Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// FromRow converts a stored discount row.
func FromRow(row dbgen.Discount) Rule {
	rule := Rule{
		ID:     row.ID,
		Effect: Effect{Amount: row.Amount, IsPercentage: row.IsPercentage},
	}
	if row.StartDate.Valid {
		rule.StartDate = row.StartDate.Time
	}
	if row.EndDate.Valid {
		end := row.EndDate.Time
		rule.EndDate = &end
	}
	return rule
}
