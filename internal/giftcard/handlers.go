package giftcard

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes gift card administration endpoints.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

type createPayload struct {
	Balance *decimal.Decimal `json:"balance" validate:"required"`
}

type patchPayload struct {
	Balance *decimal.Decimal `json:"balance"`
}

type cardResponse struct {
	ID        string    `json:"id"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	var payload createPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		common.WriteError(w, err)
		return
	}
	card, err := h.Svc.Create(r.Context(), businessID, *payload.Balance)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toResponse(card)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	card, err := h.Svc.Get(r.Context(), businessID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toResponse(card)})
}

// Patch adjusts the balance of a card. Omitted fields keep their value.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	var payload patchPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		common.WriteError(w, err)
		return
	}
	card, err := h.Svc.Adjust(r.Context(), businessID, strings.TrimSpace(chi.URLParam(r, "id")), Patch{Balance: payload.Balance})
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toResponse(card)})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		err = common.NotFound("gift card not found", err)
	case errors.Is(err, ErrInvalidAmount):
		err = common.ValidationError("balance must not be negative", err)
	case errors.Is(err, ErrBalanceChanged):
		err = common.Conflict(ErrBalanceChanged.Error(), err)
	}
	if appErr := common.WriteError(w, err); appErr.HTTPStatus >= http.StatusInternalServerError {
		h.Logger.Error().Err(err).Msg("giftcard request failed")
	}
}

func toResponse(c Card) cardResponse {
	return cardResponse{
		ID:        c.ID,
		Balance:   c.Balance.StringFixed(2),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
