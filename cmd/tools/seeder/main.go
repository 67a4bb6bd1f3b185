package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/app"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/giftcard"
	"github.com/noah-isme/backend-kasir/internal/obs"
)

type variation struct {
	Name     string
	Price    string
	Discount string
}

type product struct {
	Name       string
	Variations []variation
}

type service struct {
	Name         string
	Charge       string
	IsPercentage bool
	Minutes      int
}

var taxRules = []struct {
	Position     int
	Name         string
	Amount       string
	IsPercentage bool
}{
	{1, "PVM", "7", true},
}

var products = []product{
	{"Coffee", []variation{{"Espresso", "2.50", ""}, {"Latte", "3.20", "flat"}, {"Cappuccino", "3.10", ""}}},
	{"Pastry", []variation{{"Croissant", "2.20", "pct"}, {"Cinnamon bun", "2.60", ""}}},
	{"Cake", []variation{{"Cheesecake slice", "4.40", ""}, {"Honey cake slice", "4.10", "pct"}}},
}

var services = []service{
	{"Table service", "12.5", true, 0},
	{"Gift wrapping", "1.50", false, 5},
	{"Barista workshop", "25.00", false, 60},
}

func main() {
	_ = godotenv.Load()
	logger := obs.NewLogger("console", "info").With().Str("component", "seeder").Logger()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := app.OpenPostgres(ctx, dbURL, "kasir-seeder")
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := seed(ctx, tx, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	if err := tx.Commit(ctx); err != nil {
		logger.Fatal().Err(err).Msg("commit")
	}
	logger.Info().Msg("seeding completed")
}

func seed(ctx context.Context, tx pgx.Tx, logger zerolog.Logger) error {
	for _, rule := range taxRules {
		_, err := tx.Exec(ctx, `
			INSERT INTO tax_rules (country_code, position, name, tax_amount, is_percentage)
			VALUES ('LIT', $1, $2, $3, $4)
			ON CONFLICT (country_code, position) DO UPDATE
			SET name = EXCLUDED.name, tax_amount = EXCLUDED.tax_amount, is_percentage = EXCLUDED.is_percentage`,
			rule.Position, rule.Name, decimal.RequireFromString(rule.Amount), rule.IsPercentage)
		if err != nil {
			return fmt.Errorf("tax rule %s: %w", rule.Name, err)
		}
	}

	var businessID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO businesses (name, country_code, currency)
		VALUES ('Demo Kavinė', 'LIT', 'EUR')
		RETURNING id`).Scan(&businessID); err != nil {
		return fmt.Errorf("business: %w", err)
	}
	logger.Info().Int64("business_id", businessID).Msg("business created")

	discounts, err := seedDiscounts(ctx, tx, businessID)
	if err != nil {
		return err
	}

	for _, p := range products {
		var productID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO products (business_id, name) VALUES ($1, $2) RETURNING id`,
			businessID, p.Name).Scan(&productID); err != nil {
			return fmt.Errorf("product %s: %w", p.Name, err)
		}
		for _, v := range p.Variations {
			var discountID *int64
			if id, ok := discounts[v.Discount]; ok {
				discountID = &id
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO product_variations (product_id, name, price, discount_id)
				VALUES ($1, $2, $3, $4)`,
				productID, v.Name, decimal.RequireFromString(v.Price), discountID); err != nil {
				return fmt.Errorf("variation %s: %w", v.Name, err)
			}
		}
	}

	for _, s := range services {
		if _, err := tx.Exec(ctx, `
			INSERT INTO services (business_id, name, service_charge, is_percentage, duration_minutes)
			VALUES ($1, $2, $3, $4, $5)`,
			businessID, s.Name, decimal.RequireFromString(s.Charge), s.IsPercentage, s.Minutes); err != nil {
			return fmt.Errorf("service %s: %w", s.Name, err)
		}
	}

	cards := &giftcard.Service{Q: dbgen.New(tx)}
	card, err := cards.Create(ctx, businessID, decimal.RequireFromString("50.00"))
	if err != nil {
		return fmt.Errorf("gift card: %w", err)
	}
	logger.Info().Str("giftcard_id", card.ID).Str("balance", card.Balance.StringFixed(2)).Msg("gift card created")
	return nil
}

// seedDiscounts creates a flat and a percentage discount valid for a year.
func seedDiscounts(ctx context.Context, tx pgx.Tx, businessID int64) (map[string]int64, error) {
	now := time.Now().UTC()
	defs := map[string]struct {
		Amount       string
		IsPercentage bool
	}{
		"flat": {"0.50", false},
		"pct":  {"10", true},
	}
	out := make(map[string]int64, len(defs))
	for key, d := range defs {
		var id int64
		if err := tx.QueryRow(ctx, `
			INSERT INTO discounts (business_id, amount, is_percentage, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			businessID, decimal.RequireFromString(d.Amount), d.IsPercentage, now, now.AddDate(1, 0, 0)).Scan(&id); err != nil {
			return nil, fmt.Errorf("discount %s: %w", key, err)
		}
		out[key] = id
	}
	return out, nil
}
