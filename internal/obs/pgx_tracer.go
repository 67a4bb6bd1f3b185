package obs

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/backend-kasir/internal/common"
)

const maxStatementLen = 300

type querySpanKey struct{}

// PGXTracer opens one span per statement. Spans are named after the sqlc
// query ("GetGiftcardForUpdate") when the statement carries its name header
// and tagged with the business of the request.
type PGXTracer struct{}

func (PGXTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	name, operation := describeStatement(data.SQL)
	ctx, span := otel.Tracer("kasir/db").Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	attrs := []attribute.KeyValue{
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", operation),
		attribute.String("db.statement", clipStatement(data.SQL)),
	}
	if businessID, ok := common.BusinessID(ctx); ok {
		attrs = append(attrs, attribute.Int64("kasir.business_id", businessID))
	}
	span.SetAttributes(attrs...)
	return context.WithValue(ctx, querySpanKey{}, span)
}

func (PGXTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	span, ok := ctx.Value(querySpanKey{}).(trace.Span)
	if !ok {
		return
	}
	defer span.End()
	// no rows on a guarded debit or balance update is a business outcome
	if data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) {
		span.RecordError(data.Err)
		span.SetStatus(codes.Error, data.Err.Error())
		return
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", data.CommandTag.RowsAffected()))
}

// describeStatement returns the span name and the leading SQL verb. sqlc
// prefixes every statement with "-- name: <Query> :<kind>".
func describeStatement(sql string) (name, operation string) {
	body := strings.TrimSpace(sql)
	if rest, ok := strings.CutPrefix(body, "-- name:"); ok {
		header, stmt, _ := strings.Cut(rest, "\n")
		if fields := strings.Fields(header); len(fields) > 0 {
			name = fields[0]
		}
		body = strings.TrimSpace(stmt)
	}
	if fields := strings.Fields(body); len(fields) > 0 {
		operation = strings.ToUpper(fields[0])
	}
	switch {
	case name != "":
	case operation != "":
		name = "pgx " + operation
	default:
		name = "pgx.query"
	}
	return name, operation
}

func clipStatement(sql string) string {
	s := strings.TrimSpace(sql)
	if len(s) > maxStatementLen {
		return s[:maxStatementLen] + "..."
	}
	return s
}
