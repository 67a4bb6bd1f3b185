package analytics

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/common"
)

// Handler exposes analytics read endpoints.
type Handler struct {
	Svc    *Service
	Logger zerolog.Logger
}

type daySalesResponse struct {
	Day     string `json:"day"`
	Method  string `json:"method"`
	Orders  int64  `json:"orders"`
	Revenue string `json:"revenue"`
}

type reportResponse struct {
	From     string             `json:"from"`
	To       string             `json:"to"`
	Days     []daySalesResponse `json:"days"`
	ByMethod map[string]string  `json:"byMethod"`
	Orders   int64              `json:"orders"`
	Revenue  string             `json:"revenue"`
}

// Sales returns the business's sales for ?from&to (dates or RFC3339), or for
// the last ?days days when no bounds are given.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	businessID, ok := common.BusinessID(r.Context())
	if !ok {
		common.WriteError(w, common.Unauthenticated("business context required"))
		return
	}
	query := r.URL.Query()
	fromStr := strings.TrimSpace(query.Get("from"))
	toStr := strings.TrimSpace(query.Get("to"))
	var from, to time.Time
	if fromStr != "" || toStr != "" {
		var err error
		if from, err = parseBound(fromStr); err != nil {
			common.WriteError(w, common.ValidationError("invalid from date", err))
			return
		}
		if to, err = parseBound(toStr); err != nil {
			common.WriteError(w, common.ValidationError("invalid to date", err))
			return
		}
	} else {
		days := h.Svc.DefaultRange
		if days <= 0 {
			days = 30
		}
		if parsed := common.AtoiDefault(query.Get("days"), days); parsed > 0 {
			days = parsed
		}
		to = h.Svc.now()
		from = to.AddDate(0, 0, -days)
	}
	report, err := h.Svc.SalesReport(r.Context(), businessID, from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			common.WriteError(w, common.ValidationError(err.Error(), err))
			return
		}
		h.Logger.Error().Err(err).Int64("business_id", businessID).Msg("sales report failed")
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toResponse(report)})
}

func parseBound(raw string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func toResponse(r Report) reportResponse {
	resp := reportResponse{
		From:     r.From,
		To:       r.To,
		Days:     make([]daySalesResponse, 0, len(r.Days)),
		ByMethod: make(map[string]string, len(r.ByMethod)),
		Orders:   r.Orders,
		Revenue:  r.Revenue.StringFixed(2),
	}
	for _, d := range r.Days {
		resp.Days = append(resp.Days, daySalesResponse{Day: d.Day, Method: d.Method, Orders: d.Orders, Revenue: d.Revenue.StringFixed(2)})
	}
	for method, revenue := range r.ByMethod {
		resp.ByMethod[method] = revenue.StringFixed(2)
	}
	return resp
}
