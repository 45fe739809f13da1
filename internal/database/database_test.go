package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host: "::1", Port: 5432, User: "foodgram", Password: "p@ss:word", Name: "foodgram", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://foodgram:p%40ss%3Aword@[::1]:5432/foodgram?sslmode=disable", dsn)
}

type recordingTracer struct {
	name  string
	calls *[]string
}

func (r recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	*r.calls = append(*r.calls, r.name+":start")
	return ctx
}

func (r recordingTracer) TraceQueryEnd(_ context.Context, _ *pgx.Conn, _ pgx.TraceQueryEndData) {
	*r.calls = append(*r.calls, r.name+":end")
}

func TestChainTracer(t *testing.T) {
	var calls []string
	first := recordingTracer{name: "a", calls: &calls}
	second := recordingTracer{name: "b", calls: &calls}

	assert.Equal(t, pgx.QueryTracer(first), chainTracer(nil, first))

	chained := chainTracer(first, second)
	ctx := chained.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	chained.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, []string{"a:start", "b:start", "a:end", "b:end"}, calls)
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	tracer := &slowQueryTracer{threshold: time.Millisecond, log: &log}

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT pg_sleep(1)"})
	time.Sleep(5 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT pg_sleep(1)"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)

	buf.Reset()
	tracer.threshold = time.Hour
	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String(), "queries without a start are ignored")
}

func TestBuildTracer(t *testing.T) {
	log := zerolog.Nop()

	local := &config.Config{Primary: config.Primary{Env: "local"}, Observability: config.DefaultObservabilityConfig()}
	_, ok := buildTracer(local, &log, nil).(*tracelog.TraceLog)
	assert.True(t, ok, "local env logs every query")

	prod := &config.Config{Primary: config.Primary{Env: "production"}, Observability: config.DefaultObservabilityConfig()}
	slow, ok := buildTracer(prod, &log, nil).(*slowQueryTracer)
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, slow.threshold)

	prod.Observability.Logging.SlowQueryThreshold = 0
	assert.Nil(t, buildTracer(prod, &log, nil))
}
