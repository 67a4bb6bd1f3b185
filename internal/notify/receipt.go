package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-kasir/internal/common"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/order"
)

// OrderReader loads a settled order scoped to its business.
type OrderReader interface {
	Get(ctx context.Context, businessID, orderID int64) (order.SettledOrder, error)
}

// ReceiptMailer handles receipt:send tasks.
type ReceiptMailer struct {
	Orders OrderReader
	Mail   common.EmailSender
	Logger zerolog.Logger
}

// ProcessTask implements asynq.Handler. Malformed payloads are not retried.
func (m ReceiptMailer) ProcessTask(ctx context.Context, t *asynq.Task) error {
	task, err := events.ParseReceiptTask(t)
	if err != nil {
		obs.RecordReceiptJob("invalid")
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	settled, err := m.Orders.Get(ctx, task.BusinessID, task.OrderID)
	if err != nil {
		obs.RecordReceiptJob("failed")
		return fmt.Errorf("load order %d: %w", task.OrderID, err)
	}
	subject := fmt.Sprintf("Receipt for order #%d", settled.ID)
	if err := m.Mail.Send(task.Email, subject, RenderReceipt(settled)); err != nil {
		obs.RecordReceiptJob("failed")
		return fmt.Errorf("send receipt %d: %w", task.OrderID, err)
	}
	obs.RecordReceiptJob("sent")
	m.Logger.Info().
		Int64("order_id", settled.ID).
		Int64("business_id", settled.BusinessID).
		Msg("receipt sent")
	return nil
}

// RenderReceipt formats a settled order as plain text.
func RenderReceipt(o order.SettledOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n%s\n\n", o.ID, o.CreatedAt.UTC().Format(time.RFC1123))
	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%d x %s @ %s\n", line.Quantity, line.Name, line.Price.StringFixed(2))
	}
	for _, svc := range o.Services {
		if svc.IsPercentage {
			fmt.Fprintf(&b, "%s %s%%\n", svc.Name, svc.Amount.String())
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", svc.Name, svc.Amount.StringFixed(2))
	}

	bd := o.Breakdown
	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", bd.Subtotal.StringFixed(2))
	if bd.DiscountTotal.IsPositive() {
		fmt.Fprintf(&b, "Discounts: -%s\n", bd.DiscountTotal.StringFixed(2))
	}
	if bd.ServiceChargeTotal.IsPositive() {
		fmt.Fprintf(&b, "Service charges: %s\n", bd.ServiceChargeTotal.StringFixed(2))
	}
	for _, tax := range bd.Taxes {
		fmt.Fprintf(&b, "%s: %s\n", tax.Name, tax.Value.StringFixed(2))
	}
	if bd.Tip.IsPositive() {
		fmt.Fprintf(&b, "Tip: %s\n", bd.Tip.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s\n", bd.GrandTotal.StringFixed(2))
	if o.Payment != nil {
		fmt.Fprintf(&b, "Paid by %s: %s\n", o.Payment.Method, o.Payment.PaidPrice.StringFixed(2))
	}
	return b.String()
}
