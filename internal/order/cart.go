package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/discount"
	"github.com/noah-isme/backend-kasir/internal/pricing"
	"github.com/noah-isme/backend-kasir/internal/servicecharge"
)

// Item is one cart line: a product variation and how many units.
type Item struct {
	VariationID int64 `json:"variationId" validate:"gt=0"`
	Quantity    int32 `json:"quantity"`
}

// Cart is the client supplied input of preview and create.
type Cart struct {
	Items        []Item           `json:"items" validate:"dive"`
	ServiceIDs   []int64          `json:"serviceIds" validate:"dive,gt=0"`
	Tip          *decimal.Decimal `json:"tip"`
	ReceiptEmail string           `json:"receiptEmail" validate:"omitempty,email"`
}

// Validate rejects carts that cannot be priced. It runs before any lookup.
func (c Cart) Validate() error {
	if len(c.Items) == 0 && len(c.ServiceIDs) == 0 {
		return ErrEmptyCart
	}
	for i, it := range c.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("item %d: %w", i, ErrInvalidQuantity)
		}
	}
	if c.Tip != nil && c.Tip.IsNegative() {
		return ErrInvalidTip
	}
	return nil
}

// resolvedLine is a cart line after the variation and its discount were loaded.
type resolvedLine struct {
	VariationID int64
	Name        string
	Price       decimal.Decimal
	Quantity    int32
	Discount    *discount.Effect
}

type resolvedCart struct {
	Lines    []resolvedLine
	Services []servicecharge.Charge
}

func (rc resolvedCart) pricingInput(taxes []pricing.TaxRule, tip *decimal.Decimal) pricing.Input {
	in := pricing.Input{Taxes: taxes, Tip: tip}
	for _, l := range rc.Lines {
		in.Lines = append(in.Lines, pricing.Line{Price: l.Price, Quantity: l.Quantity, Discount: l.Discount})
	}
	for _, s := range rc.Services {
		in.Services = append(in.Services, s.Pricing())
	}
	return in
}

// archiveSet is the snapshot of an order as stored. Breakdowns of settled
// orders are always derived from it, never from the live catalog.
type archiveSet struct {
	Products  []dbgen.ProductArchive
	Discounts []dbgen.DiscountArchive
	Services  []dbgen.ServiceArchive
	Taxes     []dbgen.TaxArchive
}

func (a archiveSet) pricingInput(taxes []pricing.TaxRule, tip decimal.NullDecimal) pricing.Input {
	byProduct := make(map[int64]dbgen.DiscountArchive, len(a.Discounts))
	for _, d := range a.Discounts {
		byProduct[d.ProductArchiveID] = d
	}
	in := pricing.Input{Taxes: taxes}
	if tip.Valid {
		t := tip.Decimal
		in.Tip = &t
	}
	for _, p := range a.Products {
		line := pricing.Line{Price: p.Price, Quantity: p.Quantity}
		if d, ok := byProduct[p.ID]; ok {
			line.Discount = &discount.Effect{Amount: d.Amount, IsPercentage: d.IsPercentage}
		}
		in.Lines = append(in.Lines, line)
	}
	for _, s := range a.Services {
		in.Services = append(in.Services, pricing.ServiceCharge{Amount: s.ServiceCharge, IsPercentage: s.IsPercentage})
	}
	return in
}

func (a archiveSet) taxRules() []pricing.TaxRule {
	rules := make([]pricing.TaxRule, 0, len(a.Taxes))
	for _, t := range a.Taxes {
		rules = append(rules, pricing.TaxRule{
			Position:     t.Position,
			Name:         t.Name,
			Amount:       t.TaxAmount,
			IsPercentage: t.IsPercentage,
		})
	}
	return rules
}

func (a archiveSet) lines() []ArchivedLine {
	byProduct := make(map[int64]dbgen.DiscountArchive, len(a.Discounts))
	for _, d := range a.Discounts {
		byProduct[d.ProductArchiveID] = d
	}
	out := make([]ArchivedLine, 0, len(a.Products))
	for _, p := range a.Products {
		line := ArchivedLine{
			ArchiveID:   p.ID,
			VariationID: p.VariationID,
			Name:        p.Name,
			Price:       p.Price,
			Quantity:    p.Quantity,
		}
		if d, ok := byProduct[p.ID]; ok {
			line.Discount = &discount.Effect{Amount: d.Amount, IsPercentage: d.IsPercentage}
		}
		out = append(out, line)
	}
	return out
}

func (a archiveSet) services() []ArchivedService {
	out := make([]ArchivedService, 0, len(a.Services))
	for _, s := range a.Services {
		out = append(out, ArchivedService{
			ArchiveID:    s.ID,
			ServiceID:    s.ServiceID,
			Name:         s.Name,
			Amount:       s.ServiceCharge,
			IsPercentage: s.IsPercentage,
		})
	}
	return out
}
