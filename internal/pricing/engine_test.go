package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/discount"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, d(want).Equal(got), "want %s got %s", want, got.String())
}

func TestComputeEndToEndScenario(t *testing.T) {
	tip := d("1.50")
	out := Compute(Input{
		Lines: []Line{{Price: d("10.00"), Quantity: 2}},
		Taxes: []TaxRule{{Position: 1, Name: "VAT", Amount: d("7"), IsPercentage: true}},
		Tip:   &tip,
	})

	requireMoney(t, "20.00", out.Subtotal)
	requireMoney(t, "0.00", out.ServiceChargeTotal)
	requireMoney(t, "1.40", out.TaxesTotal)
	requireMoney(t, "0.00", out.DiscountTotal)
	requireMoney(t, "1.50", out.Tip)
	requireMoney(t, "22.90", out.GrandTotal)
	require.Len(t, out.Taxes, 1)
	requireMoney(t, "1.40", out.Taxes[0].Value)
}

func TestComputeFlatAndPercentageDiscounts(t *testing.T) {
	flat := Compute(Input{Lines: []Line{{
		Price: d("10.00"), Quantity: 3,
		Discount: &discount.Effect{Amount: d("2.00")},
	}}})
	requireMoney(t, "6.00", flat.DiscountTotal)
	requireMoney(t, "24.00", flat.GrandTotal)

	pct := Compute(Input{Lines: []Line{{
		Price: d("10.00"), Quantity: 3,
		Discount: &discount.Effect{Amount: d("10"), IsPercentage: true},
	}}})
	requireMoney(t, "3.00", pct.DiscountTotal)
	requireMoney(t, "27.00", pct.GrandTotal)
}

func TestComputeDiscountCappedAtLineValue(t *testing.T) {
	out := Compute(Input{Lines: []Line{
		{Price: d("1.00"), Quantity: 1, Discount: &discount.Effect{Amount: d("5.00")}},
		{Price: d("4.00"), Quantity: 1},
	}})
	requireMoney(t, "5.00", out.Subtotal)
	requireMoney(t, "1.00", out.DiscountTotal)
	requireMoney(t, "4.00", out.GrandTotal)
}

func TestComputeRoundsEachTaxRule(t *testing.T) {
	split := Compute(Input{
		Lines: []Line{{Price: d("10.00"), Quantity: 1}},
		Taxes: []TaxRule{
			{Position: 1, Name: "State", Amount: d("7.5"), IsPercentage: true},
			{Position: 2, Name: "City", Amount: d("7.5"), IsPercentage: true},
		},
	})
	requireMoney(t, "0.75", split.Taxes[0].Value)
	requireMoney(t, "0.75", split.Taxes[1].Value)
	requireMoney(t, "1.50", split.TaxesTotal)

	// at 0.30 per-rule rounding (0.02 + 0.02) differs from one 15% rule (0.05)
	odd := Compute(Input{
		Lines: []Line{{Price: d("0.30"), Quantity: 1}},
		Taxes: []TaxRule{
			{Position: 1, Name: "State", Amount: d("7.5"), IsPercentage: true},
			{Position: 2, Name: "City", Amount: d("7.5"), IsPercentage: true},
		},
	})
	combined := Compute(Input{
		Lines: []Line{{Price: d("0.30"), Quantity: 1}},
		Taxes: []TaxRule{{Position: 1, Name: "Combined", Amount: d("15"), IsPercentage: true}},
	})
	requireMoney(t, "0.04", odd.TaxesTotal)
	requireMoney(t, "0.05", combined.TaxesTotal)
}

func TestComputeFlatTaxRule(t *testing.T) {
	out := Compute(Input{
		Lines: []Line{{Price: d("4.00"), Quantity: 1}},
		Taxes: []TaxRule{{Position: 1, Name: "Bag fee", Amount: d("0.105")}},
	})
	requireMoney(t, "0.11", out.TaxesTotal)
	requireMoney(t, "4.11", out.GrandTotal)
}

func TestComputeServiceCharges(t *testing.T) {
	out := Compute(Input{
		Lines: []Line{{Price: d("10.00"), Quantity: 1}},
		Services: []ServiceCharge{
			{Amount: d("5.00")},
			{Amount: d("10"), IsPercentage: true},
		},
		Taxes: []TaxRule{{Position: 1, Name: "VAT", Amount: d("10"), IsPercentage: true}},
	})
	// flat service is taxed as part of the subtotal, the percentage one is not
	requireMoney(t, "15.00", out.Subtotal)
	requireMoney(t, "1.50", out.ServiceChargeTotal)
	requireMoney(t, "1.50", out.TaxesTotal)
	requireMoney(t, "18.00", out.GrandTotal)
}

func TestComputePercentageServiceUsesRoundedSubtotal(t *testing.T) {
	pct := discount.Effect{Amount: d("10"), IsPercentage: true}
	out := Compute(Input{
		Lines: []Line{
			{Price: d("0.333"), Quantity: 3},
		},
		Services: []ServiceCharge{{Amount: d("50"), IsPercentage: true}},
	})
	requireMoney(t, "1.00", out.Subtotal)
	requireMoney(t, "0.50", out.ServiceChargeTotal)

	withDiscount := Compute(Input{Lines: []Line{{Price: d("0.333"), Quantity: 3, Discount: &pct}}})
	requireMoney(t, "0.10", withDiscount.DiscountTotal)
}

func TestComputeSumsLinesBeforeRounding(t *testing.T) {
	out := Compute(Input{Lines: []Line{
		{Price: d("0.005"), Quantity: 1},
		{Price: d("0.005"), Quantity: 1},
	}})
	// rounding each line first would give 0.02
	requireMoney(t, "0.01", out.Subtotal)
}

func TestComputeWithoutTipOrTaxes(t *testing.T) {
	out := Compute(Input{Lines: []Line{{Price: d("2.50"), Quantity: 2}}})
	requireMoney(t, "0", out.Tip)
	require.Empty(t, out.Taxes)
	requireMoney(t, "5.00", out.GrandTotal)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	requireMoney(t, "0.13", Round2(d("0.125")))
	requireMoney(t, "-0.13", Round2(d("-0.125")))
	requireMoney(t, "0.12", Round2(d("0.1249")))
}
