package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/noah-isme/backend-kasir/internal/common"
)

func TestDescribeStatement(t *testing.T) {
	name, op := describeStatement("-- name: DebitGiftcard :one\nUPDATE giftcards\nSET balance = balance - $1")
	require.Equal(t, "DebitGiftcard", name)
	require.Equal(t, "UPDATE", op)

	name, op = describeStatement("  select 1")
	require.Equal(t, "pgx SELECT", name)
	require.Equal(t, "SELECT", op)

	name, op = describeStatement("")
	require.Equal(t, "pgx.query", name)
	require.Empty(t, op)
}

func TestPGXTracerTagsBusinessAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	tracer := PGXTracer{}
	ctx := common.WithBusinessID(context.Background(), 3)

	qctx := tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "-- name: GetGiftcardForUpdate :one\nSELECT id FROM giftcards FOR UPDATE"})
	tracer.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{Err: pgx.ErrNoRows})

	qctx = tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "-- name: CreatePaymentArchive :one\nINSERT INTO payment_archives"})
	tracer.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{Err: errors.New("check constraint violated")})

	qctx = tracer.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "-- name: UpdateOrderStatus :exec\nUPDATE orders"})
	tracer.TraceQueryEnd(qctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("UPDATE 1")})

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	lock := spans[0]
	require.Equal(t, "GetGiftcardForUpdate", lock.Name())
	require.Contains(t, lock.Attributes(), attribute.Int64("kasir.business_id", 3))
	require.NotEqual(t, codes.Error, lock.Status().Code)

	archive := spans[1]
	require.Equal(t, codes.Error, archive.Status().Code)
	require.Contains(t, archive.Attributes(), attribute.String("db.operation", "INSERT"))

	update := spans[2]
	require.Contains(t, update.Attributes(), attribute.Int64("db.rows_affected", 1))
}
