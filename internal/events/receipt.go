package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// SettledPayload is the JSON body of an order.settled event.
type SettledPayload struct {
	OrderID      int64  `json:"orderId"`
	BusinessID   int64  `json:"businessId"`
	UserID       int64  `json:"userId"`
	Method       string `json:"method"`
	GrandTotal   string `json:"grandTotal"`
	ReceiptEmail string `json:"receiptEmail,omitempty"`
}

// ReceiptTask is the payload of a receipt:send task.
type ReceiptTask struct {
	OrderID    int64  `json:"orderId"`
	BusinessID int64  `json:"businessId"`
	Email      string `json:"email"`
}

// Enqueuer is the subset of *asynq.Client used by ReceiptNotifier.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReceiptNotifier turns settled orders that carry a receipt email into
// background receipt tasks.
type ReceiptNotifier struct {
	Client   Enqueuer
	Enabled  bool
	Queue    string
	MaxRetry int
}

// Notify implements Notifier.
func (n ReceiptNotifier) Notify(ctx context.Context, event dbgen.DomainEvent) error {
	if !n.Enabled || n.Client == nil || event.Topic != TopicOrderSettled {
		return nil
	}
	var payload SettledPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("decode settled payload: %w", err)
	}
	email := strings.TrimSpace(payload.ReceiptEmail)
	if email == "" {
		return nil
	}
	task, err := NewReceiptTask(ReceiptTask{OrderID: payload.OrderID, BusinessID: payload.BusinessID, Email: email})
	if err != nil {
		return err
	}
	opts := []asynq.Option{
		asynq.TaskID(fmt.Sprintf("receipt:%d", payload.OrderID)),
		asynq.Timeout(30 * time.Second),
	}
	if n.Queue != "" {
		opts = append(opts, asynq.Queue(n.Queue))
	}
	if n.MaxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(n.MaxRetry))
	}
	if _, err := n.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue receipt: %w", err)
	}
	return nil
}

// NewReceiptTask encodes a receipt task.
func NewReceiptTask(p ReceiptTask) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReceiptSend, data), nil
}

// ParseReceiptTask decodes a receipt task payload.
func ParseReceiptTask(t *asynq.Task) (ReceiptTask, error) {
	var p ReceiptTask
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ReceiptTask{}, fmt.Errorf("decode receipt task: %w", err)
	}
	if p.OrderID <= 0 || p.BusinessID <= 0 || strings.TrimSpace(p.Email) == "" {
		return ReceiptTask{}, fmt.Errorf("receipt task missing fields: %+v", p)
	}
	return p, nil
}
