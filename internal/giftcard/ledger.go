package giftcard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

var (
	// ErrNotFound is returned when no card with the id exists for the business.
	ErrNotFound = errors.New("gift card not found")
	// ErrInsufficientFunds is returned when the balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient gift card balance")
	// ErrInvalidAmount is returned for negative debit or balance values.
	ErrInvalidAmount = errors.New("gift card amount must not be negative")
	// ErrBalanceChanged is returned when an adjustment raced a debit.
	ErrBalanceChanged = errors.New("gift card balance changed, reload and retry")
)

// TxQuerier is the transactional query surface of the ledger. Callers pass the
// querier bound to the settlement transaction so lock, debit and payment
// archive commit together.
type TxQuerier interface {
	GetGiftcardForUpdate(ctx context.Context, arg dbgen.GetGiftcardForUpdateParams) (dbgen.Giftcard, error)
	DebitGiftcard(ctx context.Context, arg dbgen.DebitGiftcardParams) (dbgen.Giftcard, error)
}

// FindForUpdate loads and row-locks the card. Cards of other businesses are
// reported as not found.
func FindForUpdate(ctx context.Context, q TxQuerier, id string, businessID int64) (dbgen.Giftcard, error) {
	card, err := q.GetGiftcardForUpdate(ctx, dbgen.GetGiftcardForUpdateParams{ID: id, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.Giftcard{}, ErrNotFound
		}
		return dbgen.Giftcard{}, fmt.Errorf("giftcard: lock %s: %w", id, err)
	}
	return card, nil
}

// Sufficient reports whether the card covers amount.
func Sufficient(card dbgen.Giftcard, amount decimal.Decimal) bool {
	return card.Balance.GreaterThanOrEqual(amount)
}

// Debit subtracts amount from the card. The update is guarded by the balance
// so a concurrent debit that got there first makes this one fail with
// ErrInsufficientFunds instead of overdrawing.
func Debit(ctx context.Context, q TxQuerier, card dbgen.Giftcard, amount decimal.Decimal) (dbgen.Giftcard, error) {
	if amount.IsNegative() {
		return dbgen.Giftcard{}, ErrInvalidAmount
	}
	if !Sufficient(card, amount) {
		obs.RecordGiftcardDebit("insufficient_funds")
		return dbgen.Giftcard{}, ErrInsufficientFunds
	}
	updated, err := q.DebitGiftcard(ctx, dbgen.DebitGiftcardParams{
		Amount:     amount,
		ID:         card.ID,
		BusinessID: card.BusinessID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			obs.RecordGiftcardDebit("insufficient_funds")
			return dbgen.Giftcard{}, ErrInsufficientFunds
		}
		obs.RecordGiftcardDebit("error")
		return dbgen.Giftcard{}, fmt.Errorf("giftcard: debit %s: %w", card.ID, err)
	}
	obs.RecordGiftcardDebit("success")
	return updated, nil
}
