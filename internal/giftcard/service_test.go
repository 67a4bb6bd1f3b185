package giftcard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/common"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

func TestApplyPatch(t *testing.T) {
	existing := Card{ID: "gc_1", Balance: money("5.00")}

	same, err := ApplyPatch(existing, Patch{})
	require.NoError(t, err)
	require.Equal(t, existing, same)

	balance := money("12.345")
	updated, err := ApplyPatch(existing, Patch{Balance: &balance})
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(money("12.35")))
	require.True(t, existing.Balance.Equal(money("5.00")))

	negative := money("-1")
	_, err = ApplyPatch(existing, Patch{Balance: &negative})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestServiceCreateGetAdjust(t *testing.T) {
	store := newMemCards()
	svc := &Service{Q: store, NewID: func() string { return "gc_fixed" }}
	ctx := context.Background()

	card, err := svc.Create(ctx, 1, money("25"))
	require.NoError(t, err)
	require.Equal(t, "gc_fixed", card.ID)

	_, err = svc.Get(ctx, 2, "gc_fixed")
	require.ErrorIs(t, err, ErrNotFound)

	balance := money("7.50")
	adjusted, err := svc.Adjust(ctx, 1, "gc_fixed", Patch{Balance: &balance})
	require.NoError(t, err)
	require.True(t, adjusted.Balance.Equal(balance))
}

func TestServiceGeneratesOpaqueIDs(t *testing.T) {
	svc := &Service{Q: newMemCards()}
	a, err := svc.Create(context.Background(), 1, money("1"))
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), 1, money("1"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(a.ID, "gc_"))
	require.NotEqual(t, a.ID, b.ID)
}

func withBusiness(r *http.Request, id int64) *http.Request {
	return r.WithContext(common.WithBusinessID(r.Context(), id))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(contextWithRoute(r, rctx))
}

func contextWithRoute(r *http.Request, rctx *chi.Context) context.Context {
	return context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
}

func TestHandlerCreateAndPatch(t *testing.T) {
	store := newMemCards()
	h := &Handler{Svc: &Service{Q: store, NewID: func() string { return "gc_h" }}, Logger: zerolog.Nop()}

	req := withBusiness(httptest.NewRequest(http.MethodPost, "/api/v1/admin/giftcards", strings.NewReader(`{"balance":"10"}`)), 1)
	rr := httptest.NewRecorder()
	h.Create(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Contains(t, rr.Body.String(), `"balance":"10.00"`)

	req = withBusiness(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/giftcards/gc_h", strings.NewReader(`{"balance":"-3"}`)), 1)
	req = withURLParam(req, "id", "gc_h")
	rr = httptest.NewRecorder()
	h.Patch(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), common.CodeValidation)

	req = withBusiness(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/giftcards/gc_h", strings.NewReader(`{"balance":4.5}`)), 1)
	req = withURLParam(req, "id", "gc_h")
	rr = httptest.NewRecorder()
	h.Patch(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"balance":"4.50"`)
}

func TestHandlerCreateRequiresBalance(t *testing.T) {
	h := &Handler{Svc: &Service{Q: newMemCards()}, Logger: zerolog.Nop()}
	req := withBusiness(httptest.NewRequest(http.MethodPost, "/api/v1/admin/giftcards", strings.NewReader(`{}`)), 1)
	rr := httptest.NewRecorder()
	h.Create(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), `"balance":"required"`)
}

func TestHandlerGetOtherBusinessIsNotFound(t *testing.T) {
	store := newMemCards(dbgen.Giftcard{ID: "gc_1", BusinessID: 1, Balance: money("3")})
	h := &Handler{Svc: &Service{Q: store}, Logger: zerolog.Nop()}
	req := withURLParam(withBusiness(httptest.NewRequest(http.MethodGet, "/api/v1/giftcards/gc_1", nil), 2), "id", "gc_1")
	rr := httptest.NewRecorder()
	h.Get(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

// debitAfterRead lets a settlement debit land right after the first balance
// read, the window an unguarded absolute write would lose.
type debitAfterRead struct {
	*memCards
	debit decimal.Decimal
	done  bool
}

func (d *debitAfterRead) GetGiftcard(ctx context.Context, arg dbgen.GetGiftcardParams) (dbgen.Giftcard, error) {
	card, err := d.memCards.GetGiftcard(ctx, arg)
	if err == nil && !d.done {
		d.done = true
		if _, err := Debit(ctx, d.memCards, card, d.debit); err != nil {
			return dbgen.Giftcard{}, err
		}
	}
	return card, err
}

func TestAdjustDoesNotOverwriteConcurrentDebit(t *testing.T) {
	store := &debitAfterRead{
		memCards: newMemCards(dbgen.Giftcard{ID: "gc_1", BusinessID: 1, Balance: money("10.00")}),
		debit:    money("6.00"),
	}
	svc := &Service{Q: store}

	balance := money("12.00")
	_, err := svc.Adjust(context.Background(), 1, "gc_1", Patch{Balance: &balance})
	require.ErrorIs(t, err, ErrBalanceChanged)
	require.True(t, store.cards["gc_1"].Balance.Equal(money("4.00")))

	// a retry reads the debited balance and applies
	adjusted, err := svc.Adjust(context.Background(), 1, "gc_1", Patch{Balance: &balance})
	require.NoError(t, err)
	require.True(t, adjusted.Balance.Equal(balance))
}

func TestHandlerPatchConflictAfterDebit(t *testing.T) {
	store := &debitAfterRead{
		memCards: newMemCards(dbgen.Giftcard{ID: "gc_1", BusinessID: 1, Balance: money("10.00")}),
		debit:    money("1.00"),
	}
	h := &Handler{Svc: &Service{Q: store}, Logger: zerolog.Nop()}

	req := withBusiness(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/giftcards/gc_1", strings.NewReader(`{"balance":"20"}`)), 1)
	req = withURLParam(req, "id", "gc_1")
	rr := httptest.NewRecorder()
	h.Patch(rr, req)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), common.CodeConflict)
	require.True(t, store.cards["gc_1"].Balance.Equal(money("9.00")))
}
