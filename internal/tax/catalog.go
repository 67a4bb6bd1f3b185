package tax

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/cache"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

// ErrNoRules is returned for a country without any configured tax rule.
var ErrNoRules = errors.New("no tax rules configured for country")

type Querier interface {
	ListTaxRulesByCountry(ctx context.Context, countryCode string) ([]dbgen.TaxRule, error)
}

// Catalog resolves the ordered tax list of a country. Rules are reference
// data, so lookups are served from Redis when a cache is configured.
type Catalog struct {
	Q      Querier
	Cache  *cache.Cache
	Logger zerolog.Logger
}

// GetTaxesByCountry returns the country's rules in position order.
func (c *Catalog) GetTaxesByCountry(ctx context.Context, country string) ([]pricing.TaxRule, error) {
	if c == nil || c.Q == nil {
		return nil, errors.New("tax: catalog not configured")
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return nil, fmt.Errorf("country %q: %w", country, ErrNoRules)
	}
	key := cache.KeyTaxRules(country)
	var cached []pricing.TaxRule
	if hit, err := c.Cache.GetJSON(ctx, key, &cached); err != nil {
		c.Logger.Warn().Err(err).Str("country", country).Msg("tax cache read failed")
	} else if hit && len(cached) > 0 {
		return cached, nil
	}

	rows, err := c.Q.ListTaxRulesByCountry(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("tax: list rules for %s: %w", country, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("country %s: %w", country, ErrNoRules)
	}
	rules := make([]pricing.TaxRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, pricing.TaxRule{
			Position:     row.Position,
			Name:         row.Name,
			Amount:       row.TaxAmount,
			IsPercentage: row.IsPercentage,
		})
	}
	if err := c.Cache.SetJSON(ctx, key, rules); err != nil {
		c.Logger.Warn().Err(err).Str("country", country).Msg("tax cache write failed")
	}
	return rules, nil
}
