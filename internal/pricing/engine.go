package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-kasir/internal/discount"
)

var hundred = decimal.NewFromInt(100)

// Line is a product line as priced: unit price, quantity and the active
// discount effect, if any.
type Line struct {
	Price    decimal.Decimal
	Quantity int32
	Discount *discount.Effect
}

// ServiceCharge is a selected service. Flat charges join the subtotal,
// percentage charges apply to the rounded subtotal.
type ServiceCharge struct {
	Amount       decimal.Decimal
	IsPercentage bool
}

// TaxRule is one entry of a country's tax list.
type TaxRule struct {
	Position     int32
	Name         string
	Amount       decimal.Decimal
	IsPercentage bool
}

// TaxLine is a tax rule together with the value it produced.
type TaxLine struct {
	Position     int32
	Name         string
	Amount       decimal.Decimal
	IsPercentage bool
	Value        decimal.Decimal
}

// Input collects everything the engine needs; all lookups happen before Compute.
type Input struct {
	Lines    []Line
	Services []ServiceCharge
	Taxes    []TaxRule
	Tip      *decimal.Decimal
}

// Breakdown aggregates computed pricing components.
type Breakdown struct {
	Subtotal           decimal.Decimal
	DiscountTotal      decimal.Decimal
	ServiceChargeTotal decimal.Decimal
	Taxes              []TaxLine
	TaxesTotal         decimal.Decimal
	Tip                decimal.Decimal
	GrandTotal         decimal.Decimal
}

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compute prices a resolved cart. The step order is fixed: totals are rounded
// where they become totals and per-line products are summed unrounded.
func Compute(in Input) Breakdown {
	raw := decimal.Zero
	discountSum := decimal.Zero
	for _, line := range in.Lines {
		raw = raw.Add(line.Price.Mul(decimal.NewFromInt32(line.Quantity)))
		if line.Discount != nil {
			discountSum = discountSum.Add(line.Discount.LineAmount(line.Price, line.Quantity))
		}
	}

	var pctPool []decimal.Decimal
	for _, svc := range in.Services {
		if svc.IsPercentage {
			pctPool = append(pctPool, svc.Amount)
			continue
		}
		raw = raw.Add(svc.Amount)
	}

	subtotal := Round2(raw)

	// percentage services see the rounded subtotal
	serviceSum := decimal.Zero
	for _, pct := range pctPool {
		serviceSum = serviceSum.Add(subtotal.Mul(pct).Div(hundred))
	}
	serviceTotal := Round2(serviceSum)

	taxes := make([]TaxLine, 0, len(in.Taxes))
	taxSum := decimal.Zero
	for _, rule := range in.Taxes {
		value := rule.Amount
		if rule.IsPercentage {
			value = subtotal.Mul(rule.Amount).Div(hundred)
		}
		value = Round2(value)
		taxSum = taxSum.Add(value)
		taxes = append(taxes, TaxLine{
			Position:     rule.Position,
			Name:         rule.Name,
			Amount:       rule.Amount,
			IsPercentage: rule.IsPercentage,
			Value:        value,
		})
	}

	discountTotal := Round2(discountSum)
	taxesTotal := Round2(taxSum)
	tip := decimal.Zero
	if in.Tip != nil {
		tip = Round2(*in.Tip)
	}

	grand := Round2(subtotal.Add(taxesTotal).Add(serviceTotal).Add(tip).Sub(discountTotal))

	return Breakdown{
		Subtotal:           subtotal,
		DiscountTotal:      discountTotal,
		ServiceChargeTotal: serviceTotal,
		Taxes:              taxes,
		TaxesTotal:         taxesTotal,
		Tip:                tip,
		GrandTotal:         grand,
	}
}
