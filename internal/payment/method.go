package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/giftcard"
)

var (
	// ErrUnknownMethod is returned for a method tag other than card, giftcard or cash.
	ErrUnknownMethod = errors.New("unknown payment method")
	// ErrMissingIntent is returned for card payments without a payment intent id.
	ErrMissingIntent = errors.New("card payment requires a payment intent id")
	// ErrMissingGiftcard is returned for gift card payments without a card id.
	ErrMissingGiftcard = errors.New("gift card payment requires a gift card id")
)

// Method is the payment method tag stored on the payment archive.
type Method = dbgen.PaymentMethod

const (
	MethodCard     = dbgen.PaymentMethodCard
	MethodGiftcard = dbgen.PaymentMethodGiftcard
	MethodCash     = dbgen.PaymentMethodCash
)

// ParseMethod normalises a client supplied method tag.
func ParseMethod(raw string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "card":
		return MethodCard, nil
	case "giftcard", "gift_card", "gift-card":
		return MethodGiftcard, nil
	case "cash":
		return MethodCash, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrUnknownMethod)
	}
}

// Request is the payment part of a create-order call.
type Request struct {
	Method          Method
	PaymentIntentID string
	GiftcardID      string
}

// NewRequest parses and validates the raw method and its reference.
func NewRequest(method, paymentIntentID, giftcardID string) (Request, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return Request{}, err
	}
	req := Request{Method: m}
	switch m {
	case MethodCard:
		req.PaymentIntentID = strings.TrimSpace(paymentIntentID)
		if req.PaymentIntentID == "" {
			return Request{}, ErrMissingIntent
		}
	case MethodGiftcard:
		req.GiftcardID = strings.TrimSpace(giftcardID)
		if req.GiftcardID == "" {
			return Request{}, ErrMissingGiftcard
		}
	}
	return req, nil
}

// TxQuerier is what Settle needs from the settlement transaction.
type TxQuerier interface {
	giftcard.TxQuerier
	CreatePaymentArchive(ctx context.Context, arg dbgen.CreatePaymentArchiveParams) (dbgen.PaymentArchive, error)
}

// Settle resolves the payment for amount inside the caller's transaction:
// gift cards are locked and debited, then the payment archive is written.
func Settle(ctx context.Context, q TxQuerier, businessID, orderID int64, req Request, amount decimal.Decimal) (dbgen.PaymentArchive, error) {
	params := dbgen.CreatePaymentArchiveParams{
		OrderID:   orderID,
		Method:    req.Method,
		PaidPrice: amount,
	}
	switch req.Method {
	case MethodCard:
		if req.PaymentIntentID == "" {
			return dbgen.PaymentArchive{}, ErrMissingIntent
		}
		params.PaymentIntentID = pgtype.Text{String: req.PaymentIntentID, Valid: true}
	case MethodGiftcard:
		if req.GiftcardID == "" {
			return dbgen.PaymentArchive{}, ErrMissingGiftcard
		}
		card, err := giftcard.FindForUpdate(ctx, q, req.GiftcardID, businessID)
		if err != nil {
			return dbgen.PaymentArchive{}, err
		}
		if _, err := giftcard.Debit(ctx, q, card, amount); err != nil {
			return dbgen.PaymentArchive{}, err
		}
		params.GiftcardID = pgtype.Text{String: card.ID, Valid: true}
	case MethodCash:
	default:
		return dbgen.PaymentArchive{}, fmt.Errorf("%q: %w", req.Method, ErrUnknownMethod)
	}
	archive, err := q.CreatePaymentArchive(ctx, params)
	if err != nil {
		return dbgen.PaymentArchive{}, fmt.Errorf("payment: archive: %w", err)
	}
	return archive, nil
}
