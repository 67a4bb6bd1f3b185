package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/cache"
	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

const dayLayout = "2006-01-02"

// ErrInvalidRange is returned when from is not before to.
var ErrInvalidRange = errors.New("from must be before to")

// Querier defines the database access required for analytics operations.
type Querier interface {
	GetSalesDailyRange(ctx context.Context, arg dbgen.GetSalesDailyRangeParams) ([]dbgen.GetSalesDailyRangeRow, error)
}

// Service aggregates settled payments into sales reports, cached per
// business and window.
type Service struct {
	Q            Querier
	Cache        *cache.Cache
	Logger       zerolog.Logger
	DefaultRange int
	Now          func() time.Time
}

// DaySales is revenue for one day and payment method.
type DaySales struct {
	Day     string          `json:"day"`
	Method  string          `json:"method"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Report is the sales report of a business over [From, To).
type Report struct {
	From     string                     `json:"from"`
	To       string                     `json:"to"`
	Days     []DaySales                 `json:"days"`
	ByMethod map[string]decimal.Decimal `json:"byMethod"`
	Orders   int64                      `json:"orders"`
	Revenue  decimal.Decimal            `json:"revenue"`
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SalesReport returns sales between from (inclusive) and to (exclusive).
func (s *Service) SalesReport(ctx context.Context, businessID int64, from, to time.Time) (Report, error) {
	if s == nil || s.Q == nil {
		return Report{}, errors.New("analytics service not configured")
	}
	if !from.Before(to) {
		return Report{}, ErrInvalidRange
	}
	key := cache.KeySalesReport(businessID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	var cached Report
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("sales report cache read failed")
	} else if hit {
		return cached, nil
	}

	rows, err := s.Q.GetSalesDailyRange(ctx, dbgen.GetSalesDailyRangeParams{
		BusinessID: businessID,
		StartDate:  pgtype.Timestamptz{Time: from, Valid: true},
		EndDate:    pgtype.Timestamptz{Time: to, Valid: true},
	})
	if err != nil {
		return Report{}, fmt.Errorf("analytics: sales range: %w", err)
	}
	report := buildReport(from, to, rows)
	if err := s.Cache.SetJSON(ctx, key, report); err != nil {
		s.Logger.Warn().Err(err).Str("key", key).Msg("sales report cache write failed")
	}
	return report, nil
}

func buildReport(from, to time.Time, rows []dbgen.GetSalesDailyRangeRow) Report {
	report := Report{
		From:     from.UTC().Format(dayLayout),
		To:       to.UTC().Format(dayLayout),
		Days:     make([]DaySales, 0, len(rows)),
		ByMethod: map[string]decimal.Decimal{},
		Revenue:  decimal.Zero,
	}
	for _, row := range rows {
		method := string(row.Method)
		report.Days = append(report.Days, DaySales{
			Day:     row.Day.Time.Format(dayLayout),
			Method:  method,
			Orders:  row.Orders,
			Revenue: row.Revenue,
		})
		report.ByMethod[method] = report.ByMethod[method].Add(row.Revenue)
		report.Orders += row.Orders
		report.Revenue = report.Revenue.Add(row.Revenue)
	}
	sort.SliceStable(report.Days, func(i, j int) bool {
		if report.Days[i].Day != report.Days[j].Day {
			return report.Days[i].Day < report.Days[j].Day
		}
		return report.Days[i].Method < report.Days[j].Method
	})
	return report
}
