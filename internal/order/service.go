package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
	"github.com/noah-isme/backend-kasir/internal/discount"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/payment"
	"github.com/noah-isme/backend-kasir/internal/pricing"
	"github.com/noah-isme/backend-kasir/internal/servicecharge"
)

// Querier is the read side used by preview and the order read API.
type Querier interface {
	discount.Querier
	servicecharge.Querier
	GetBusiness(ctx context.Context, id int64) (dbgen.Business, error)
	GetVariationForOrder(ctx context.Context, id int64) (dbgen.GetVariationForOrderRow, error)
	GetOrderByBusiness(ctx context.Context, arg dbgen.GetOrderByBusinessParams) (dbgen.Order, error)
	ListOrdersByBusiness(ctx context.Context, arg dbgen.ListOrdersByBusinessParams) ([]dbgen.Order, error)
	CountOrdersByBusiness(ctx context.Context, businessID int64) (int64, error)
	ListProductArchivesByOrder(ctx context.Context, orderID int64) ([]dbgen.ProductArchive, error)
	ListDiscountArchivesByOrder(ctx context.Context, orderID int64) ([]dbgen.DiscountArchive, error)
	ListServiceArchivesByOrder(ctx context.Context, orderID int64) ([]dbgen.ServiceArchive, error)
	ListTaxArchivesByOrder(ctx context.Context, orderID int64) ([]dbgen.TaxArchive, error)
	GetPaymentArchiveByOrder(ctx context.Context, orderID int64) (dbgen.PaymentArchive, error)
}

// TxQuerier is everything a settlement does inside its transaction.
type TxQuerier interface {
	Querier
	payment.TxQuerier
	CreateOrder(ctx context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error)
	CreateProductArchive(ctx context.Context, arg dbgen.CreateProductArchiveParams) (dbgen.ProductArchive, error)
	CreateDiscountArchive(ctx context.Context, arg dbgen.CreateDiscountArchiveParams) (dbgen.DiscountArchive, error)
	CreateServiceArchive(ctx context.Context, arg dbgen.CreateServiceArchiveParams) (dbgen.ServiceArchive, error)
	CreateTaxArchive(ctx context.Context, arg dbgen.CreateTaxArchiveParams) (dbgen.TaxArchive, error)
	UpdateOrderStatus(ctx context.Context, arg dbgen.UpdateOrderStatusParams) error
}

// TaxSource resolves a country's ordered tax list.
type TaxSource interface {
	GetTaxesByCountry(ctx context.Context, country string) ([]pricing.TaxRule, error)
}

// Emitter publishes domain events after commit.
type Emitter interface {
	Emit(ctx context.Context, topic string, aggregateID int64, payload any) (dbgen.DomainEvent, error)
}

// Service prices carts and settles orders.
type Service struct {
	Q      Querier
	Tx     Transactor
	Taxes  TaxSource
	Events Emitter
	Logger zerolog.Logger
	Now    func() time.Time
}

// ArchivedLine is a product line as snapshotted on the order.
type ArchivedLine struct {
	ArchiveID   int64
	VariationID int64
	Name        string
	Price       decimal.Decimal
	Quantity    int32
	Discount    *discount.Effect
}

// ArchivedService is a service charge as snapshotted on the order.
type ArchivedService struct {
	ArchiveID    int64
	ServiceID    int64
	Name         string
	Amount       decimal.Decimal
	IsPercentage bool
}

// Payment is the payment disposition of a settled order.
type Payment struct {
	Method          payment.Method
	PaidPrice       decimal.Decimal
	PaymentIntentID string
	GiftcardID      string
}

// SettledOrder is an order with its archived snapshot and derived breakdown.
type SettledOrder struct {
	ID         int64
	BusinessID int64
	UserID     int64
	Status     dbgen.OrderStatus
	CreatedAt  time.Time
	Breakdown  pricing.Breakdown
	Lines      []ArchivedLine
	Services   []ArchivedService
	Payment    *Payment
}

// Summary is an order row of the list endpoint.
type Summary struct {
	ID        int64
	UserID    int64
	Status    dbgen.OrderStatus
	Method    payment.Method
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Preview prices the cart without writing anything.
func (s *Service) Preview(ctx context.Context, businessID int64, cart Cart) (pricing.Breakdown, error) {
	if err := cart.Validate(); err != nil {
		return pricing.Breakdown{}, err
	}
	if s == nil || s.Q == nil || s.Taxes == nil {
		return pricing.Breakdown{}, errors.New("order: service not configured")
	}
	resolved, err := s.resolveCart(ctx, s.Q, businessID, cart)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	taxes, err := s.taxesFor(ctx, s.Q, businessID)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	breakdown := pricing.Compute(resolved.pricingInput(taxes, roundTip(cart.Tip)))
	if breakdown.GrandTotal.IsNegative() {
		return pricing.Breakdown{}, ErrNegativeTotal
	}
	return breakdown, nil
}

// Create settles the cart in one transaction: header, archives, taxes,
// payment and status change commit together or not at all.
func (s *Service) Create(ctx context.Context, businessID, userID int64, cart Cart, req payment.Request) (SettledOrder, error) {
	if err := cart.Validate(); err != nil {
		return SettledOrder{}, err
	}
	if s == nil || s.Tx == nil || s.Taxes == nil {
		return SettledOrder{}, errors.New("order: service not configured")
	}
	start := time.Now()
	stage := StageDraft
	var out SettledOrder
	err := s.Tx.ExecTx(ctx, func(q TxQuerier) error {
		taxes, err := s.taxesFor(ctx, q, businessID)
		if err != nil {
			return err
		}
		tip := roundTip(cart.Tip)
		header, err := q.CreateOrder(ctx, dbgen.CreateOrderParams{
			BusinessID: businessID,
			UserID:     userID,
			Tip:        nullDecimal(tip),
			Status:     dbgen.OrderStatusOpen,
		})
		if err != nil {
			return fmt.Errorf("order: insert header: %w", err)
		}
		stage = StageHeaderPersisted

		archives, err := s.archiveCart(ctx, q, businessID, header.ID, cart)
		if err != nil {
			return err
		}
		stage = StageLinesArchived

		breakdown := pricing.Compute(archives.pricingInput(taxes, header.Tip))
		if breakdown.GrandTotal.IsNegative() {
			return ErrNegativeTotal
		}
		for _, line := range breakdown.Taxes {
			row, err := q.CreateTaxArchive(ctx, dbgen.CreateTaxArchiveParams{
				OrderID:      header.ID,
				Position:     line.Position,
				Name:         line.Name,
				TaxAmount:    line.Amount,
				IsPercentage: line.IsPercentage,
				TaxValue:     line.Value,
			})
			if err != nil {
				return fmt.Errorf("order: archive tax %q: %w", line.Name, err)
			}
			archives.Taxes = append(archives.Taxes, row)
		}
		stage = StageTaxesArchived

		paid, err := payment.Settle(ctx, q, businessID, header.ID, req, breakdown.GrandTotal)
		if err != nil {
			return err
		}
		stage = StagePaymentResolved

		if err := q.UpdateOrderStatus(ctx, dbgen.UpdateOrderStatusParams{ID: header.ID, BusinessID: header.BusinessID, Status: dbgen.OrderStatusClosed}); err != nil {
			return fmt.Errorf("order: close: %w", err)
		}
		header.Status = dbgen.OrderStatusClosed
		out = settledFrom(header, archives, breakdown, &paid)
		return nil
	})
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		s.logRollback(req, stage, err)
		obs.RecordSettlement(string(req.Method), "rolled_back", elapsed)
		return SettledOrder{}, err
	}
	obs.RecordSettlement(string(req.Method), "committed", elapsed)
	s.Logger.Info().
		Int64("order_id", out.ID).
		Int64("business_id", businessID).
		Str("method", string(req.Method)).
		Str("grand_total", out.Breakdown.GrandTotal.StringFixed(2)).
		Msg("order settled")
	s.emitSettled(ctx, out, cart.ReceiptEmail)
	return out, nil
}

// Get loads a settled order of the business and re-derives its breakdown
// from the archive rows.
func (s *Service) Get(ctx context.Context, businessID, orderID int64) (SettledOrder, error) {
	if s == nil || s.Q == nil {
		return SettledOrder{}, errors.New("order: service not configured")
	}
	header, err := s.Q.GetOrderByBusiness(ctx, dbgen.GetOrderByBusinessParams{ID: orderID, BusinessID: businessID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SettledOrder{}, fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
		}
		return SettledOrder{}, fmt.Errorf("order: load %d: %w", orderID, err)
	}
	var archives archiveSet
	if archives.Products, err = s.Q.ListProductArchivesByOrder(ctx, orderID); err != nil {
		return SettledOrder{}, fmt.Errorf("order: product archives: %w", err)
	}
	if archives.Discounts, err = s.Q.ListDiscountArchivesByOrder(ctx, orderID); err != nil {
		return SettledOrder{}, fmt.Errorf("order: discount archives: %w", err)
	}
	if archives.Services, err = s.Q.ListServiceArchivesByOrder(ctx, orderID); err != nil {
		return SettledOrder{}, fmt.Errorf("order: service archives: %w", err)
	}
	if archives.Taxes, err = s.Q.ListTaxArchivesByOrder(ctx, orderID); err != nil {
		return SettledOrder{}, fmt.Errorf("order: tax archives: %w", err)
	}
	var paid *dbgen.PaymentArchive
	row, err := s.Q.GetPaymentArchiveByOrder(ctx, orderID)
	switch {
	case err == nil:
		paid = &row
	case !errors.Is(err, pgx.ErrNoRows):
		return SettledOrder{}, fmt.Errorf("order: payment archive: %w", err)
	}
	breakdown := pricing.Compute(archives.pricingInput(archives.taxRules(), header.Tip))
	return settledFrom(header, archives, breakdown, paid), nil
}

// List returns a page of the business's orders, newest first.
func (s *Service) List(ctx context.Context, businessID int64, page, perPage int) ([]Summary, int64, error) {
	if s == nil || s.Q == nil {
		return nil, 0, errors.New("order: service not configured")
	}
	total, err := s.Q.CountOrdersByBusiness(ctx, businessID)
	if err != nil {
		return nil, 0, fmt.Errorf("order: count: %w", err)
	}
	offset := (page - 1) * perPage
	if offset < 0 {
		offset = 0
	}
	rows, err := s.Q.ListOrdersByBusiness(ctx, dbgen.ListOrdersByBusinessParams{
		BusinessID: businessID,
		Limit:      int32(perPage),
		Offset:     int32(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("order: list: %w", err)
	}
	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		sum := Summary{ID: row.ID, UserID: row.UserID, Status: row.Status, CreatedAt: row.CreatedAt.Time}
		paid, err := s.Q.GetPaymentArchiveByOrder(ctx, row.ID)
		switch {
		case err == nil:
			sum.Method = paid.Method
			sum.Total = paid.PaidPrice
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, 0, fmt.Errorf("order: payment archive %d: %w", row.ID, err)
		}
		out = append(out, sum)
	}
	return out, total, nil
}

// resolveCart loads every variation and service of the cart. Unknown
// references abort; only discounts may be silently absent.
func (s *Service) resolveCart(ctx context.Context, q Querier, businessID int64, cart Cart) (resolvedCart, error) {
	discounts := discount.Resolver{Q: q, Now: s.Now}
	services := servicecharge.Resolver{Q: q}
	var out resolvedCart
	for _, it := range cart.Items {
		row, err := s.variation(ctx, q, businessID, it.VariationID)
		if err != nil {
			return resolvedCart{}, err
		}
		line := resolvedLine{VariationID: row.ID, Name: row.Name, Price: row.Price, Quantity: it.Quantity}
		effect, ok, err := discounts.Resolve(ctx, row.DiscountID)
		if err != nil {
			return resolvedCart{}, err
		}
		if ok {
			line.Discount = &effect
		}
		out.Lines = append(out.Lines, line)
	}
	for _, id := range cart.ServiceIDs {
		charge, err := services.Resolve(ctx, businessID, id)
		if err != nil {
			return resolvedCart{}, err
		}
		out.Services = append(out.Services, charge)
	}
	return out, nil
}

// archiveCart resolves the cart inside the settlement transaction and writes
// product, discount and service archives as it goes.
func (s *Service) archiveCart(ctx context.Context, q TxQuerier, businessID, orderID int64, cart Cart) (archiveSet, error) {
	resolved, err := s.resolveCart(ctx, q, businessID, cart)
	if err != nil {
		return archiveSet{}, err
	}
	var out archiveSet
	for _, line := range resolved.Lines {
		product, err := q.CreateProductArchive(ctx, dbgen.CreateProductArchiveParams{
			OrderID:     orderID,
			VariationID: line.VariationID,
			Name:        line.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
		})
		if err != nil {
			return archiveSet{}, fmt.Errorf("order: archive variation %d: %w", line.VariationID, err)
		}
		out.Products = append(out.Products, product)
		if line.Discount == nil {
			continue
		}
		d, err := q.CreateDiscountArchive(ctx, dbgen.CreateDiscountArchiveParams{
			OrderID:          orderID,
			ProductArchiveID: product.ID,
			Amount:           line.Discount.Amount,
			IsPercentage:     line.Discount.IsPercentage,
		})
		if err != nil {
			return archiveSet{}, fmt.Errorf("order: archive discount: %w", err)
		}
		out.Discounts = append(out.Discounts, d)
	}
	for _, charge := range resolved.Services {
		row, err := q.CreateServiceArchive(ctx, dbgen.CreateServiceArchiveParams{
			OrderID:       orderID,
			ServiceID:     charge.ServiceID,
			Name:          charge.Name,
			ServiceCharge: charge.Amount,
			IsPercentage:  charge.IsPercentage,
		})
		if err != nil {
			return archiveSet{}, fmt.Errorf("order: archive service %d: %w", charge.ServiceID, err)
		}
		out.Services = append(out.Services, row)
	}
	return out, nil
}

func (s *Service) variation(ctx context.Context, q Querier, businessID, id int64) (dbgen.GetVariationForOrderRow, error) {
	row, err := q.GetVariationForOrder(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dbgen.GetVariationForOrderRow{}, fmt.Errorf("variation %d: %w", id, ErrVariationNotFound)
		}
		return dbgen.GetVariationForOrderRow{}, fmt.Errorf("order: load variation %d: %w", id, err)
	}
	if row.BusinessID != businessID {
		return dbgen.GetVariationForOrderRow{}, fmt.Errorf("variation %d: %w", id, ErrForbidden)
	}
	return row, nil
}

func (s *Service) taxesFor(ctx context.Context, q Querier, businessID int64) ([]pricing.TaxRule, error) {
	business, err := q.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("business %d: %w", businessID, ErrBusinessNotFound)
		}
		return nil, fmt.Errorf("order: load business %d: %w", businessID, err)
	}
	return s.Taxes.GetTaxesByCountry(ctx, business.CountryCode)
}

func (s *Service) logRollback(req payment.Request, stage Stage, err error) {
	appErr := toAppError(err)
	evt := s.Logger.Warn()
	if appErr.HTTPStatus >= 500 {
		evt = s.Logger.Error()
	}
	evt.Err(err).
		Str("method", string(req.Method)).
		Str("stage", stage.String()).
		Str("code", appErr.Code).
		Msg("order settlement rolled back")
	if req.Method == payment.MethodCard {
		obs.RecordCardRollback()
		s.Logger.Error().
			Str("payment_intent_id", req.PaymentIntentID).
			Str("stage", stage.String()).
			Msg("card payment authorized without a settled order; reconcile manually")
	}
}

func (s *Service) emitSettled(ctx context.Context, o SettledOrder, receiptEmail string) {
	if s.Events == nil {
		return
	}
	payload := events.SettledPayload{
		OrderID:      o.ID,
		BusinessID:   o.BusinessID,
		UserID:       o.UserID,
		GrandTotal:   o.Breakdown.GrandTotal.StringFixed(2),
		ReceiptEmail: receiptEmail,
	}
	if o.Payment != nil {
		payload.Method = string(o.Payment.Method)
	}
	if _, err := s.Events.Emit(ctx, events.TopicOrderSettled, o.ID, payload); err != nil {
		s.Logger.Warn().Err(err).Int64("order_id", o.ID).Msg("emit order.settled failed")
	}
}

func settledFrom(header dbgen.Order, archives archiveSet, breakdown pricing.Breakdown, paid *dbgen.PaymentArchive) SettledOrder {
	out := SettledOrder{
		ID:         header.ID,
		BusinessID: header.BusinessID,
		UserID:     header.UserID,
		Status:     header.Status,
		CreatedAt:  header.CreatedAt.Time,
		Breakdown:  breakdown,
		Lines:      archives.lines(),
		Services:   archives.services(),
	}
	if paid != nil {
		out.Payment = &Payment{
			Method:          paid.Method,
			PaidPrice:       paid.PaidPrice,
			PaymentIntentID: textValue(paid.PaymentIntentID),
			GiftcardID:      textValue(paid.GiftcardID),
		}
	}
	return out
}

func roundTip(tip *decimal.Decimal) *decimal.Decimal {
	if tip == nil {
		return nil
	}
	r := pricing.Round2(*tip)
	return &r
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func textValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
