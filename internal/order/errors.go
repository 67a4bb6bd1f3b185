package order

import (
	"errors"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/giftcard"
	"github.com/noah-isme/backend-kasir/internal/payment"
	"github.com/noah-isme/backend-kasir/internal/servicecharge"
	"github.com/noah-isme/backend-kasir/internal/tax"
)

var (
	ErrEmptyCart         = errors.New("at least one item or service required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidTip        = errors.New("tip must not be negative")
	ErrVariationNotFound = errors.New("product variation not found")
	ErrForbidden         = errors.New("product variation belongs to another business")
	ErrBusinessNotFound  = errors.New("business not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNegativeTotal     = errors.New("order total must not be negative")
)

// toAppError maps package and collaborator sentinels onto client facing
// errors. Unknown errors become INTERNAL.
func toAppError(err error) *common.AppError {
	if err == nil {
		return nil
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return common.AsAppError(err)
	}
	switch {
	case errors.Is(err, ErrEmptyCart):
		return common.ValidationError(ErrEmptyCart.Error(), err)
	case errors.Is(err, ErrInvalidQuantity):
		return common.ValidationError(ErrInvalidQuantity.Error(), err)
	case errors.Is(err, ErrInvalidTip):
		return common.ValidationError(ErrInvalidTip.Error(), err)
	case errors.Is(err, ErrNegativeTotal):
		return common.ValidationError(ErrNegativeTotal.Error(), err)
	case errors.Is(err, giftcard.ErrInvalidAmount):
		return common.ValidationError(giftcard.ErrInvalidAmount.Error(), err)
	case errors.Is(err, payment.ErrUnknownMethod):
		return common.ValidationError("payment method must be card, giftcard or cash", err)
	case errors.Is(err, payment.ErrMissingIntent):
		return common.ValidationError(payment.ErrMissingIntent.Error(), err)
	case errors.Is(err, payment.ErrMissingGiftcard):
		return common.ValidationError(payment.ErrMissingGiftcard.Error(), err)
	case errors.Is(err, ErrVariationNotFound):
		return common.NotFound(ErrVariationNotFound.Error(), err)
	case errors.Is(err, servicecharge.ErrNotFound):
		return common.NotFound(servicecharge.ErrNotFound.Error(), err)
	case errors.Is(err, giftcard.ErrNotFound):
		return common.NotFound(giftcard.ErrNotFound.Error(), err)
	case errors.Is(err, ErrBusinessNotFound):
		return common.NotFound(ErrBusinessNotFound.Error(), err)
	case errors.Is(err, tax.ErrNoRules):
		return common.NotFound(tax.ErrNoRules.Error(), err)
	case errors.Is(err, ErrOrderNotFound):
		return common.NotFound(ErrOrderNotFound.Error(), err)
	case errors.Is(err, ErrForbidden):
		return common.Forbidden(ErrForbidden.Error(), err)
	case errors.Is(err, servicecharge.ErrForbidden):
		return common.Forbidden(servicecharge.ErrForbidden.Error(), err)
	case errors.Is(err, giftcard.ErrInsufficientFunds):
		return common.InsufficientFunds(giftcard.ErrInsufficientFunds.Error(), err)
	default:
		return common.Internal(err)
	}
}
