package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	dbgen "github.com/noah-isme/backend-kasir/internal/db/gen"
)

// EventStore persists domain events in the domain_events table.
type EventStore interface {
	InsertDomainEvent(ctx context.Context, arg dbgen.InsertDomainEventParams) (dbgen.DomainEvent, error)
}

// Notifier reacts to a stored event; the receipt enqueuer is the only one
// wired today.
type Notifier interface {
	Notify(ctx context.Context, event dbgen.DomainEvent) error
}

// Bus persists domain events and fans them out to notifiers. Notifier
// failures are joined into the returned error; the event row is already
// stored by then.
type Bus struct {
	Store     EventStore
	Notifiers []Notifier
}

// Emit stores the event row and hands it to every notifier. Settlement calls
// it after commit with the order id as aggregate.
func (b *Bus) Emit(ctx context.Context, topic string, aggregateID int64, payload any) (dbgen.DomainEvent, error) {
	if b == nil || b.Store == nil {
		return dbgen.DomainEvent{}, errors.New("events: store not configured")
	}
	topic = strings.TrimSpace(topic)
	switch {
	case topic == "":
		return dbgen.DomainEvent{}, errors.New("events: topic is required")
	case aggregateID <= 0:
		return dbgen.DomainEvent{}, errors.New("events: aggregate id is required")
	}
	body, err := marshalPayload(payload)
	if err != nil {
		return dbgen.DomainEvent{}, fmt.Errorf("events: %s payload: %w", topic, err)
	}
	ev, err := b.Store.InsertDomainEvent(ctx, dbgen.InsertDomainEventParams{
		Topic:       topic,
		AggregateID: aggregateID,
		Payload:     body,
	})
	if err != nil {
		return dbgen.DomainEvent{}, fmt.Errorf("events: persist %s: %w", topic, err)
	}
	var errs []error
	for _, n := range b.Notifiers {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return ev, errors.Join(errs...)
}

// marshalPayload stores pre-encoded JSON as is and marshals anything else.
// Empty payloads become "{}".
func marshalPayload(payload any) ([]byte, error) {
	var raw []byte
	switch v := payload.(type) {
	case nil:
		return []byte("{}"), nil
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	case string:
		raw = []byte(strings.TrimSpace(v))
	default:
		return json.Marshal(v)
	}
	if len(raw) == 0 {
		return []byte("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("payload is not valid json")
	}
	return append([]byte(nil), raw...), nil
}
