package giftcard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// Querier captures the queries used by gift card administration.
type Querier interface {
	CreateGiftcard(ctx context.Context, arg dbgen.CreateGiftcardParams) (dbgen.Giftcard, error)
	GetGiftcard(ctx context.Context, arg dbgen.GetGiftcardParams) (dbgen.Giftcard, error)
	UpdateGiftcardBalance(ctx context.Context, arg dbgen.UpdateGiftcardBalanceParams) (dbgen.Giftcard, error)
}

// Card is a gift card as seen by administration.
type Card struct {
	ID         string
	BusinessID int64
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Patch holds optional overrides for an existing card.
type Patch struct {
	Balance *decimal.Decimal
}

// ApplyPatch merges patch into existing without touching storage.
func ApplyPatch(existing Card, patch Patch) (Card, error) {
	out := existing
	if patch.Balance != nil {
		if patch.Balance.IsNegative() {
			return Card{}, ErrInvalidAmount
		}
		out.Balance = patch.Balance.Round(2)
	}
	return out, nil
}

// Service implements operator administration of gift cards. Settlement never
// goes through it; see FindForUpdate and Debit.
type Service struct {
	Q     Querier
	NewID func() string
}

func (s *Service) Create(ctx context.Context, businessID int64, balance decimal.Decimal) (Card, error) {
	if s == nil || s.Q == nil {
		return Card{}, errors.New("giftcard service not configured")
	}
	if balance.IsNegative() {
		return Card{}, ErrInvalidAmount
	}
	row, err := s.Q.CreateGiftcard(ctx, dbgen.CreateGiftcardParams{
		ID:         s.newID(),
		BusinessID: businessID,
		Balance:    balance.Round(2),
	})
	if err != nil {
		return Card{}, fmt.Errorf("giftcard: create: %w", err)
	}
	return toCard(row), nil
}

func (s *Service) Get(ctx context.Context, businessID int64, id string) (Card, error) {
	if s == nil || s.Q == nil {
		return Card{}, errors.New("giftcard service not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Card{}, ErrNotFound
	}
	row, err := s.Q.GetGiftcard(ctx, dbgen.GetGiftcardParams{ID: id, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("giftcard: get %s: %w", id, err)
	}
	return toCard(row), nil
}

// Adjust applies an operator patch to the card balance. The write only lands
// if the balance is still the one the patch was computed from; a settlement
// debit in between yields ErrBalanceChanged rather than being overwritten.
func (s *Service) Adjust(ctx context.Context, businessID int64, id string, patch Patch) (Card, error) {
	existing, err := s.Get(ctx, businessID, id)
	if err != nil {
		return Card{}, err
	}
	updated, err := ApplyPatch(existing, patch)
	if err != nil {
		return Card{}, err
	}
	if updated.Balance.Equal(existing.Balance) {
		return existing, nil
	}
	row, err := s.Q.UpdateGiftcardBalance(ctx, dbgen.UpdateGiftcardBalanceParams{
		Balance:         updated.Balance,
		ID:              existing.ID,
		BusinessID:      businessID,
		ExpectedBalance: existing.Balance,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := s.Get(ctx, businessID, id); getErr != nil {
				return Card{}, getErr
			}
			return Card{}, ErrBalanceChanged
		}
		return Card{}, fmt.Errorf("giftcard: update %s: %w", id, err)
	}
	return toCard(row), nil
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return "gc_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func toCard(row dbgen.Giftcard) Card {
	card := Card{ID: row.ID, BusinessID: row.BusinessID, Balance: row.Balance}
	if row.CreatedAt.Valid {
		card.CreatedAt = row.CreatedAt.Time
	}
	if row.UpdatedAt.Valid {
		card.UpdatedAt = row.UpdatedAt.Time
	}
	return card
}
