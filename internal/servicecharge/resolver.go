package servicecharge

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/pricing"
)

var (
	// ErrNotFound is returned when the requested service does not exist.
	ErrNotFound = errors.New("service not found")
	// ErrForbidden is returned when the service belongs to another business.
	ErrForbidden = errors.New("service belongs to another business")
)

// Charge is a resolved service ready to be archived and priced.
type Charge struct {
	ServiceID    int64
	Name         string
	Amount       decimal.Decimal
	IsPercentage bool
}

// Pricing converts the charge into its pricing engine form.
func (c Charge) Pricing() pricing.ServiceCharge {
	return pricing.ServiceCharge{Amount: c.Amount, IsPercentage: c.IsPercentage}
}

type Querier interface {
	GetServiceByID(ctx context.Context, id int64) (dbgen.Service, error)
}

// Resolver loads services selected on a cart. Unlike discounts, a missing
// service is fatal to the caller.
type Resolver struct {
	Q Querier
}

func (r Resolver) Resolve(ctx context.Context, businessID, serviceID int64) (Charge, error) {
	if r.Q == nil {
		return Charge{}, errors.New("servicecharge: queries not configured")
	}
	row, err := r.Q.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Charge{}, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
		}
		return Charge{}, fmt.Errorf("servicecharge: load %d: %w", serviceID, err)
	}
	if row.BusinessID != businessID {
		return Charge{}, fmt.Errorf("service %d: %w", serviceID, ErrForbidden)
	}
	return Charge{
		ServiceID:    row.ID,
		Name:         row.Name,
		Amount:       row.ServiceCharge,
		IsPercentage: row.IsPercentage,
	}, nil
}
