package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

type stubQueries struct {
	rows  map[int64]dbgen.Discount
	err   error
	calls int
}

func (s *stubQueries) GetDiscountByID(_ context.Context, id int64) (dbgen.Discount, error) {
	s.calls++
	if s.err != nil {
		return dbgen.Discount{}, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return dbgen.Discount{}, pgx.ErrNoRows
	}
	return row, nil
}

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TestLineAmountFlatVersusPercentage(t *testing.T) {
	price := decimal.RequireFromString("10.00")

	flat := Effect{Amount: decimal.RequireFromString("2.00")}
	require.True(t, flat.LineAmount(price, 3).Equal(decimal.RequireFromString("6.00")))

	pct := Effect{Amount: decimal.NewFromInt(10), IsPercentage: true}
	require.True(t, pct.LineAmount(price, 3).Equal(decimal.RequireFromString("3.00")))
}

func TestLineAmountNeverExceedsLineValue(t *testing.T) {
	price := decimal.RequireFromString("1.00")

	flat := Effect{Amount: decimal.RequireFromString("5.00")}
	require.True(t, flat.LineAmount(price, 1).Equal(price))
	require.True(t, flat.LineAmount(price, 3).Equal(decimal.RequireFromString("3.00")))

	pct := Effect{Amount: decimal.NewFromInt(150), IsPercentage: true}
	require.True(t, pct.LineAmount(price, 2).Equal(decimal.RequireFromString("2.00")))

	negative := Effect{Amount: decimal.RequireFromString("-1.00")}
	require.True(t, negative.LineAmount(price, 1).IsZero())
}

func TestLineAmountIsNotRounded(t *testing.T) {
	pct := Effect{Amount: decimal.RequireFromString("12.5"), IsPercentage: true}
	got := pct.LineAmount(decimal.RequireFromString("0.99"), 1)
	require.True(t, got.Equal(decimal.RequireFromString("0.12375")), got.String())
}

func TestActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.True(t, Rule{}.ActiveAt(now))
	require.True(t, Rule{EndDate: &future}.ActiveAt(now))
	require.True(t, Rule{EndDate: &now}.ActiveAt(now))
	require.False(t, Rule{EndDate: &past}.ActiveAt(now))
}

func TestResolveSkipsExpiredDiscount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := &stubQueries{rows: map[int64]dbgen.Discount{
		1: {ID: 1, Amount: decimal.NewFromInt(2), StartDate: ts(now.AddDate(0, -1, 0)), EndDate: ts(now.AddDate(0, 0, -1))},
		2: {ID: 2, Amount: decimal.NewFromInt(5), IsPercentage: true, StartDate: ts(now.AddDate(0, -1, 0))},
	}}
	r := Resolver{Q: q, Now: func() time.Time { return now }}

	_, ok, err := r.Resolve(context.Background(), pgtype.Int8{Int64: 1, Valid: true})
	require.NoError(t, err)
	require.False(t, ok)

	effect, ok, err := r.Resolve(context.Background(), pgtype.Int8{Int64: 2, Valid: true})
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, effect.IsPercentage)
	require.True(t, effect.Amount.Equal(decimal.NewFromInt(5)))
}

func TestResolveWithoutReferenceSkipsLookup(t *testing.T) {
	q := &stubQueries{}
	_, ok, err := Resolver{Q: q}.Resolve(context.Background(), pgtype.Int8{})
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, q.calls)
}

func TestResolveMissingRowIsSilent(t *testing.T) {
	q := &stubQueries{rows: map[int64]dbgen.Discount{}}
	_, ok, err := Resolver{Q: q}.Resolve(context.Background(), pgtype.Int8{Int64: 9, Valid: true})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolvePropagatesStorageErrors(t *testing.T) {
	q := &stubQueries{err: errors.New("connection refused")}
	_, _, err := Resolver{Q: q}.Resolve(context.Background(), pgtype.Int8{Int64: 9, Valid: true})
	require.Error(t, err)
}
