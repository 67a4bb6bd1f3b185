package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// memState is the in-memory database. Transactions work on a clone that
// replaces the committed state only when fn succeeds.
type memState struct {
	businesses map[int64]dbgen.Business
	variations map[int64]dbgen.GetVariationForOrderRow
	discounts  map[int64]dbgen.Discount
	services   map[int64]dbgen.Service
	taxRules   map[string][]dbgen.TaxRule
	giftcards  map[string]dbgen.Giftcard

	orders           []dbgen.Order
	products         []dbgen.ProductArchive
	discountArchives []dbgen.DiscountArchive
	serviceArchives  []dbgen.ServiceArchive
	taxArchives      []dbgen.TaxArchive
	payments         []dbgen.PaymentArchive
	nextID           int64
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *memState) clone() *memState {
	return &memState{
		businesses:       cloneMap(s.businesses),
		variations:       cloneMap(s.variations),
		discounts:        cloneMap(s.discounts),
		services:         cloneMap(s.services),
		taxRules:         cloneMap(s.taxRules),
		giftcards:        cloneMap(s.giftcards),
		orders:           append([]dbgen.Order(nil), s.orders...),
		products:         append([]dbgen.ProductArchive(nil), s.products...),
		discountArchives: append([]dbgen.DiscountArchive(nil), s.discountArchives...),
		serviceArchives:  append([]dbgen.ServiceArchive(nil), s.serviceArchives...),
		taxArchives:      append([]dbgen.TaxArchive(nil), s.taxArchives...),
		payments:         append([]dbgen.PaymentArchive(nil), s.payments...),
		nextID:           s.nextID,
	}
}

// memStore implements TxQuerier and Transactor. ExecTx holds a store wide
// lock for the whole transaction, which serializes gift card debits the way
// a row lock does. Concurrent tests against it therefore never interleave
// inside a transaction; the guarded debit under interleaving is covered in
// the payment package.
type memStore struct {
	mu      sync.Mutex
	state   *memState
	lookups int
}

func (m *memStore) ExecTx(_ context.Context, fn func(q TxQuerier) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	backup := m.state.clone()
	if err := fn(m); err != nil {
		m.state = backup
		return err
	}
	return nil
}

func (m *memStore) id() int64 {
	m.state.nextID++
	return m.state.nextID
}

func (m *memStore) GetBusiness(_ context.Context, id int64) (dbgen.Business, error) {
	m.lookups++
	b, ok := m.state.businesses[id]
	if !ok {
		return dbgen.Business{}, pgx.ErrNoRows
	}
	return b, nil
}

func (m *memStore) GetVariationForOrder(_ context.Context, id int64) (dbgen.GetVariationForOrderRow, error) {
	m.lookups++
	v, ok := m.state.variations[id]
	if !ok {
		return dbgen.GetVariationForOrderRow{}, pgx.ErrNoRows
	}
	return v, nil
}

func (m *memStore) GetDiscountByID(_ context.Context, id int64) (dbgen.Discount, error) {
	m.lookups++
	d, ok := m.state.discounts[id]
	if !ok {
		return dbgen.Discount{}, pgx.ErrNoRows
	}
	return d, nil
}

func (m *memStore) GetServiceByID(_ context.Context, id int64) (dbgen.Service, error) {
	m.lookups++
	s, ok := m.state.services[id]
	if !ok {
		return dbgen.Service{}, pgx.ErrNoRows
	}
	return s, nil
}

func (m *memStore) ListTaxRulesByCountry(_ context.Context, country string) ([]dbgen.TaxRule, error) {
	m.lookups++
	rules := append([]dbgen.TaxRule(nil), m.state.taxRules[country]...)
	sort.Slice(rules, func(i, j int) bool { return rules[i].Position < rules[j].Position })
	return rules, nil
}

func (m *memStore) GetGiftcardForUpdate(_ context.Context, arg dbgen.GetGiftcardForUpdateParams) (dbgen.Giftcard, error) {
	card, ok := m.state.giftcards[arg.ID]
	if !ok || card.BusinessID != arg.BusinessID {
		return dbgen.Giftcard{}, pgx.ErrNoRows
	}
	return card, nil
}

func (m *memStore) DebitGiftcard(_ context.Context, arg dbgen.DebitGiftcardParams) (dbgen.Giftcard, error) {
	card, ok := m.state.giftcards[arg.ID]
	if !ok || card.BusinessID != arg.BusinessID || card.Balance.LessThan(arg.Amount) {
		return dbgen.Giftcard{}, pgx.ErrNoRows
	}
	card.Balance = card.Balance.Sub(arg.Amount)
	m.state.giftcards[arg.ID] = card
	return card, nil
}

func (m *memStore) CreateOrder(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	o := dbgen.Order{
		ID:         m.id(),
		BusinessID: arg.BusinessID,
		UserID:     arg.UserID,
		Tip:        arg.Tip,
		Status:     arg.Status,
		CreatedAt:  pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	m.state.orders = append(m.state.orders, o)
	return o, nil
}

func (m *memStore) UpdateOrderStatus(_ context.Context, arg dbgen.UpdateOrderStatusParams) error {
	for i := range m.state.orders {
		if m.state.orders[i].ID == arg.ID && m.state.orders[i].BusinessID == arg.BusinessID {
			m.state.orders[i].Status = arg.Status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memStore) CreateProductArchive(_ context.Context, arg dbgen.CreateProductArchiveParams) (dbgen.ProductArchive, error) {
	row := dbgen.ProductArchive{ID: m.id(), OrderID: arg.OrderID, VariationID: arg.VariationID, Name: arg.Name, Price: arg.Price, Quantity: arg.Quantity}
	m.state.products = append(m.state.products, row)
	return row, nil
}

func (m *memStore) CreateDiscountArchive(_ context.Context, arg dbgen.CreateDiscountArchiveParams) (dbgen.DiscountArchive, error) {
	row := dbgen.DiscountArchive{ID: m.id(), OrderID: arg.OrderID, ProductArchiveID: arg.ProductArchiveID, Amount: arg.Amount, IsPercentage: arg.IsPercentage}
	m.state.discountArchives = append(m.state.discountArchives, row)
	return row, nil
}

func (m *memStore) CreateServiceArchive(_ context.Context, arg dbgen.CreateServiceArchiveParams) (dbgen.ServiceArchive, error) {
	row := dbgen.ServiceArchive{ID: m.id(), OrderID: arg.OrderID, ServiceID: arg.ServiceID, Name: arg.Name, ServiceCharge: arg.ServiceCharge, IsPercentage: arg.IsPercentage}
	m.state.serviceArchives = append(m.state.serviceArchives, row)
	return row, nil
}

func (m *memStore) CreateTaxArchive(_ context.Context, arg dbgen.CreateTaxArchiveParams) (dbgen.TaxArchive, error) {
	row := dbgen.TaxArchive{ID: m.id(), OrderID: arg.OrderID, Position: arg.Position, Name: arg.Name, TaxAmount: arg.TaxAmount, IsPercentage: arg.IsPercentage, TaxValue: arg.TaxValue}
	m.state.taxArchives = append(m.state.taxArchives, row)
	return row, nil
}

func (m *memStore) CreatePaymentArchive(_ context.Context, arg dbgen.CreatePaymentArchiveParams) (dbgen.PaymentArchive, error) {
	row := dbgen.PaymentArchive{
		ID:              m.id(),
		OrderID:         arg.OrderID,
		Method:          arg.Method,
		PaidPrice:       arg.PaidPrice,
		PaymentIntentID: arg.PaymentIntentID,
		GiftcardID:      arg.GiftcardID,
		CreatedAt:       pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	m.state.payments = append(m.state.payments, row)
	return row, nil
}

func (m *memStore) GetOrderByBusiness(_ context.Context, arg dbgen.GetOrderByBusinessParams) (dbgen.Order, error) {
	for _, o := range m.state.orders {
		if o.ID == arg.ID && o.BusinessID == arg.BusinessID {
			return o, nil
		}
	}
	return dbgen.Order{}, pgx.ErrNoRows
}

func (m *memStore) ListOrdersByBusiness(_ context.Context, arg dbgen.ListOrdersByBusinessParams) ([]dbgen.Order, error) {
	var rows []dbgen.Order
	for i := len(m.state.orders) - 1; i >= 0; i-- {
		if m.state.orders[i].BusinessID == arg.BusinessID {
			rows = append(rows, m.state.orders[i])
		}
	}
	start := int(arg.Offset)
	if start > len(rows) {
		return nil, nil
	}
	end := start + int(arg.Limit)
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], nil
}

func (m *memStore) CountOrdersByBusiness(_ context.Context, businessID int64) (int64, error) {
	var n int64
	for _, o := range m.state.orders {
		if o.BusinessID == businessID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ListProductArchivesByOrder(_ context.Context, orderID int64) ([]dbgen.ProductArchive, error) {
	var out []dbgen.ProductArchive
	for _, r := range m.state.products {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListDiscountArchivesByOrder(_ context.Context, orderID int64) ([]dbgen.DiscountArchive, error) {
	var out []dbgen.DiscountArchive
	for _, r := range m.state.discountArchives {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListServiceArchivesByOrder(_ context.Context, orderID int64) ([]dbgen.ServiceArchive, error) {
	var out []dbgen.ServiceArchive
	for _, r := range m.state.serviceArchives {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListTaxArchivesByOrder(_ context.Context, orderID int64) ([]dbgen.TaxArchive, error) {
	var out []dbgen.TaxArchive
	for _, r := range m.state.taxArchives {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) GetPaymentArchiveByOrder(_ context.Context, orderID int64) (dbgen.PaymentArchive, error) {
	for _, r := range m.state.payments {
		if r.OrderID == orderID {
			return r, nil
		}
	}
	return dbgen.PaymentArchive{}, pgx.ErrNoRows
}

func (m *memStore) balance(id string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.giftcards[id].Balance
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ts(t time.Time) pgtype.Timestamptz { return pgtype.Timestamptz{Time: t, Valid: true} }

// Fixture businesses:
//
//	1: LIT, one 7% tax. Variations 1-3, services 1-2.
//	2: LIT. Variation 4, service 3.
//	3: XZ, a 0% tax so totals equal the subtotal. Variations 5-6, gift cards.
//	4: NOP, no tax rules.
func newMemStore() *memStore {
	st := &memState{
		businesses: map[int64]dbgen.Business{
			1: {ID: 1, Name: "Kavine", CountryCode: "LIT", Currency: "EUR"},
			2: {ID: 2, Name: "Kirpykla", CountryCode: "LIT", Currency: "EUR"},
			3: {ID: 3, Name: "Nulis", CountryCode: "XZ", Currency: "EUR"},
			4: {ID: 4, Name: "Be mokesciu", CountryCode: "NOP", Currency: "EUR"},
		},
		variations: map[int64]dbgen.GetVariationForOrderRow{
			1: {ID: 1, Name: "Espresso", Price: money("10.00"), ProductID: 1, BusinessID: 1},
			2: {ID: 2, Name: "Latte", Price: money("10.00"), DiscountID: pgtype.Int8{Int64: 10, Valid: true}, ProductID: 1, BusinessID: 1},
			3: {ID: 3, Name: "Mocha", Price: money("10.00"), DiscountID: pgtype.Int8{Int64: 11, Valid: true}, ProductID: 1, BusinessID: 1},
			4: {ID: 4, Name: "Shampoo", Price: money("7.00"), ProductID: 2, BusinessID: 2},
			5: {ID: 5, Name: "Tea", Price: money("10.00"), ProductID: 3, BusinessID: 3},
			6: {ID: 6, Name: "Cookie", Price: money("6.00"), ProductID: 3, BusinessID: 3},
			7: {ID: 7, Name: "Cake", Price: money("3.33"), DiscountID: pgtype.Int8{Int64: 12, Valid: true}, ProductID: 1, BusinessID: 1},
			8: {ID: 8, Name: "Sample", Price: money("1.00"), DiscountID: pgtype.Int8{Int64: 13, Valid: true}, ProductID: 3, BusinessID: 3},
		},
		discounts: map[int64]dbgen.Discount{
			10: {ID: 10, BusinessID: 1, Amount: money("2.00"), StartDate: ts(testNow.Add(-48 * time.Hour))},
			11: {ID: 11, BusinessID: 1, Amount: money("10"), IsPercentage: true, StartDate: ts(testNow.Add(-48 * time.Hour)), EndDate: ts(testNow.Add(-time.Hour))},
			12: {ID: 12, BusinessID: 1, Amount: money("12.5"), IsPercentage: true, StartDate: ts(testNow.Add(-48 * time.Hour)), EndDate: ts(testNow.Add(time.Hour))},
			13: {ID: 13, BusinessID: 3, Amount: money("5.00"), StartDate: ts(testNow.Add(-48 * time.Hour))},
		},
		services: map[int64]dbgen.Service{
			1: {ID: 1, BusinessID: 1, Name: "Delivery", ServiceCharge: money("5.00")},
			2: {ID: 2, BusinessID: 1, Name: "Table service", ServiceCharge: money("12.5"), IsPercentage: true},
			3: {ID: 3, BusinessID: 2, Name: "Haircut", ServiceCharge: money("15.00")},
		},
		taxRules: map[string][]dbgen.TaxRule{
			"LIT": {{ID: 1, CountryCode: "LIT", Position: 1, Name: "PVM", TaxAmount: money("7"), IsPercentage: true}},
			"XZ":  {{ID: 2, CountryCode: "XZ", Position: 1, Name: "Zero", TaxAmount: money("0"), IsPercentage: true}},
		},
		giftcards: map[string]dbgen.Giftcard{
			"gc_five": {ID: "gc_five", BusinessID: 3, Balance: money("5.00")},
			"gc_ten":  {ID: "gc_ten", BusinessID: 3, Balance: money("10.00")},
		},
		nextID: 100,
	}
	return &memStore{state: st}
}
