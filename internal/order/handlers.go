package order

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/payment"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

type paymentPayload struct {
	Method          string `json:"method" validate:"required"`
	PaymentIntentID string `json:"paymentIntentId"`
	GiftcardID      string `json:"giftcardId"`
}

type createPayload struct {
	Cart
	Payment paymentPayload `json:"payment"`
}

type taxResponse struct {
	Position     int32  `json:"position"`
	Name         string `json:"name"`
	Amount       string `json:"amount"`
	IsPercentage bool   `json:"isPercentage"`
	Value        string `json:"value"`
}

type breakdownResponse struct {
	Subtotal           string        `json:"subtotal"`
	DiscountTotal      string        `json:"discountTotal"`
	ServiceChargeTotal string        `json:"serviceChargeTotal"`
	Taxes              []taxResponse `json:"taxes"`
	TaxesTotal         string        `json:"taxesTotal"`
	Tip                string        `json:"tip"`
	GrandTotal         string        `json:"grandTotal"`
}

type discountResponse struct {
	Amount       string `json:"amount"`
	IsPercentage bool   `json:"isPercentage"`
}

type lineResponse struct {
	VariationID int64             `json:"variationId"`
	Name        string            `json:"name"`
	Price       string            `json:"price"`
	Quantity    int32             `json:"quantity"`
	Discount    *discountResponse `json:"discount,omitempty"`
}

type serviceResponse struct {
	ServiceID    int64  `json:"serviceId"`
	Name         string `json:"name"`
	Amount       string `json:"amount"`
	IsPercentage bool   `json:"isPercentage"`
}

type paymentResponse struct {
	Method          string `json:"method"`
	PaidPrice       string `json:"paidPrice"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	GiftcardID      string `json:"giftcardId,omitempty"`
}

type orderResponse struct {
	ID        int64             `json:"id"`
	Status    string            `json:"status"`
	UserID    int64             `json:"userId"`
	CreatedAt time.Time         `json:"createdAt"`
	Breakdown breakdownResponse `json:"breakdown"`
	Lines     []lineResponse    `json:"lines"`
	Services  []serviceResponse `json:"services"`
	Payment   *paymentResponse  `json:"payment,omitempty"`
}

type summaryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Status    string    `json:"status"`
	Method    string    `json:"method,omitempty"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preview prices a cart without persisting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	var cart Cart
	if err := common.DecodeJSON(r, &cart); err != nil {
		common.WriteError(w, err)
		return
	}
	breakdown, err := h.Svc.Preview(r.Context(), businessID, cart)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toBreakdownResponse(breakdown)})
}

// Create settles a cart into a closed order.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	rawUser, _ := common.UserID(r.Context())
	userID, ok := common.ParseID(rawUser)
	if !ok {
		common.WriteError(w, common.Unauthenticated("authentication required"))
		return
	}
	var payload createPayload
	if err := common.DecodeJSON(r, &payload); err != nil {
		common.WriteError(w, err)
		return
	}
	req, err := payment.NewRequest(payload.Payment.Method, payload.Payment.PaymentIntentID, payload.Payment.GiftcardID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	settled, err := h.Svc.Create(r.Context(), businessID, userID, payload.Cart, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": toOrderResponse(settled)})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	orderID, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.WriteError(w, common.ValidationError("invalid order id", nil))
		return
	}
	settled, err := h.Svc.Get(r.Context(), businessID, orderID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toOrderResponse(settled)})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	rows, total, err := h.Svc.List(r.Context(), businessID, page, perPage)
	if err != nil {
		h.writeError(w, err)
		return
	}
	data := make([]summaryResponse, 0, len(rows))
	for _, row := range rows {
		data = append(data, summaryResponse{
			ID:        row.ID,
			UserID:    row.UserID,
			Status:    string(row.Status),
			Method:    string(row.Method),
			Total:     row.Total.StringFixed(2),
			CreatedAt: row.CreatedAt,
		})
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(total),
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	appErr := common.WriteError(w, toAppError(err))
	if appErr != nil && appErr.HTTPStatus >= http.StatusInternalServerError {
		h.Logger.Error().Err(err).Msg("order request failed")
	}
}

func toBreakdownResponse(b pricing.Breakdown) breakdownResponse {
	taxes := make([]taxResponse, 0, len(b.Taxes))
	for _, t := range b.Taxes {
		taxes = append(taxes, taxResponse{
			Position:     t.Position,
			Name:         t.Name,
			Amount:       t.Amount.String(),
			IsPercentage: t.IsPercentage,
			Value:        t.Value.StringFixed(2),
		})
	}
	return breakdownResponse{
		Subtotal:           b.Subtotal.StringFixed(2),
		DiscountTotal:      b.DiscountTotal.StringFixed(2),
		ServiceChargeTotal: b.ServiceChargeTotal.StringFixed(2),
		Taxes:              taxes,
		TaxesTotal:         b.TaxesTotal.StringFixed(2),
		Tip:                b.Tip.StringFixed(2),
		GrandTotal:         b.GrandTotal.StringFixed(2),
	}
}

func toOrderResponse(o SettledOrder) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		Status:    string(o.Status),
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		Breakdown: toBreakdownResponse(o.Breakdown),
		Lines:     make([]lineResponse, 0, len(o.Lines)),
		Services:  make([]serviceResponse, 0, len(o.Services)),
	}
	for _, l := range o.Lines {
		line := lineResponse{VariationID: l.VariationID, Name: l.Name, Price: l.Price.StringFixed(2), Quantity: l.Quantity}
		if l.Discount != nil {
			line.Discount = &discountResponse{Amount: l.Discount.Amount.String(), IsPercentage: l.Discount.IsPercentage}
		}
		resp.Lines = append(resp.Lines, line)
	}
	for _, s := range o.Services {
		resp.Services = append(resp.Services, serviceResponse{
			ServiceID:    s.ServiceID,
			Name:         s.Name,
			Amount:       s.Amount.String(),
			IsPercentage: s.IsPercentage,
		})
	}
	if o.Payment != nil {
		resp.Payment = &paymentResponse{
			Method:          string(o.Payment.Method),
			PaidPrice:       o.Payment.PaidPrice.StringFixed(2),
			PaymentIntentID: o.Payment.PaymentIntentID,
			GiftcardID:      o.Payment.GiftcardID,
		}
	}
	return resp
}
