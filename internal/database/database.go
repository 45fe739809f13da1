// Package database opens the pgx pool, wires query tracing into it and
// applies the embedded schema migrations.
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/foodgram/internal/config"
	loggerConfig "github.com/deppfellow/foodgram/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans pgx's single Tracer slot out to several tracers.
// Members that do not implement a hook are skipped for it.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// chainTracer returns next when current is empty, otherwise both.
func chainTracer(current pgx.QueryTracer, next pgx.QueryTracer) pgx.QueryTracer {
	if current == nil {
		return next
	}
	return &multiTracer{tracers: []any{current, next}}
}

// DatabasePingTimeout is in seconds.
const DatabasePingTimeout = 10

// New connects the pool and pings it.
//
// Tracers: New Relic when the agent runs, full SQL logging in the local env,
// and slow query warnings everywhere else.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	// pgxpool has no idle connection cap; MaxIdleConns is the warm minimum.
	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	pgxPoolConfig.ConnConfig.Tracer = buildTracer(cfg, logger, loggerService)

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return &Database{Pool: pool, log: logger}, nil
}

func buildTracer(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) pgx.QueryTracer {
	var tracer pgx.QueryTracer

	if loggerService != nil && loggerService.GetApplication() != nil {
		tracer = nrpgx5.NewTracer()
	}

	if cfg.Primary.Env == "local" {
		level := logger.GetLevel()
		return chainTracer(tracer, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(level)),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(level)),
		})
	}

	if cfg.Observability != nil && cfg.Observability.Logging.SlowQueryThreshold > 0 {
		tracer = chainTracer(tracer, &slowQueryTracer{
			threshold: cfg.Observability.Logging.SlowQueryThreshold,
			log:       logger,
		})
	}

	return tracer
}

// DSN builds a postgres:// URL. The password is escaped and IPv6 hosts are
// bracketed.
func DSN(cfg *config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

type slowQueryStartKey struct{}

type slowQueryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer warns about queries that take at least threshold.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryStartKey{}, slowQueryStart{at: time.Now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(slowQueryStartKey{}).(slowQueryStart)
	if !ok {
		return
	}
	if elapsed := time.Since(start.at); elapsed >= t.threshold {
		t.log.Warn().
			Dur("duration", elapsed).
			Str("sql", start.sql).
			Err(data.Err).
			Msg("slow query")
	}
}

func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
