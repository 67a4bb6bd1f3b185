package tax

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/cache"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

type stubQueries struct {
	rules map[string][]dbgen.TaxRule
	calls int
}

func (s *stubQueries) ListTaxRulesByCountry(_ context.Context, country string) ([]dbgen.TaxRule, error) {
	s.calls++
	return s.rules[country], nil
}

func TestCatalogCachesRulesInOrder(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	q := &stubQueries{rules: map[string][]dbgen.TaxRule{
		"LIT": {
			{ID: 1, CountryCode: "LIT", Position: 1, Name: "PVM", TaxAmount: decimal.NewFromInt(7), IsPercentage: true},
			{ID: 2, CountryCode: "LIT", Position: 2, Name: "Eco", TaxAmount: decimal.RequireFromString("0.50")},
		},
	}}
	catalog := &Catalog{Q: q, Cache: cache.New(client, time.Minute), Logger: zerolog.Nop()}

	first, err := catalog.GetTaxesByCountry(context.Background(), "lit")
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, "PVM", first[0].Name)
	require.Equal(t, "Eco", first[1].Name)

	second, err := catalog.GetTaxesByCountry(context.Background(), "LIT")
	require.NoError(t, err)
	require.Equal(t, 1, q.calls)
	require.Len(t, second, 2)
	require.True(t, second[1].Amount.Equal(decimal.RequireFromString("0.50")))
	require.False(t, second[1].IsPercentage)
}

func TestCatalogUnknownCountry(t *testing.T) {
	catalog := &Catalog{Q: &stubQueries{}, Logger: zerolog.Nop()}
	_, err := catalog.GetTaxesByCountry(context.Background(), "XXX")
	require.ErrorIs(t, err, ErrNoRules)
}
