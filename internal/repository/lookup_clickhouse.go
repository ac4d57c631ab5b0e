package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"RaptorExplorer/internal/domain/models"
	pkgch "RaptorExplorer/pkg/clickhouse"
	applogger "RaptorExplorer/pkg/logger"
)

// LookupSchema creates the lookup analytics table in database db.
func LookupSchema(db, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
            occurred_at DateTime64(3, 'UTC'),
            request_id  String,
            vehicle_id  LowCardinality(String),
            year        LowCardinality(String),
            make        LowCardinality(String),
            model       String,
            trim        String,
            provider    LowCardinality(String),
            price       Int64,
            outcome     LowCardinality(String),
            duration_ms UInt32
        ) ENGINE = ReplacingMergeTree
        PARTITION BY toYYYYMM(occurred_at)
        ORDER BY (vehicle_id, occurred_at, request_id)`, db, table),
	}
}

// CHLookupStorage writes lookup events to ClickHouse. Request ids are the
// dedup key of the ReplacingMergeTree, so redelivered events collapse.
type CHLookupStorage struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewCHLookupStorage takes a fully qualified table name such as
// "raptor.valuation_lookups".
func NewCHLookupStorage(ch *pkgch.Client, table string, l *applogger.Logger) *CHLookupStorage {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHLookupStorage{db: ch.DB(), table: table, l: l}
}

const lookupColumns = "occurred_at, request_id, vehicle_id, year, make, model, trim, provider, price, outcome, duration_ms"

func (s *CHLookupStorage) StoreLookup(ctx context.Context, e *models.LookupEvent) error {
	return s.StoreBatch(ctx, []*models.LookupEvent{e})
}

// StoreBatch inserts events with one multi-row VALUES statement.
func (s *CHLookupStorage) StoreBatch(ctx context.Context, events []*models.LookupEvent) error {
	if len(events) == 0 {
		return nil
	}
	start := time.Now()

	placeholders := make([]string, 0, len(events))
	args := make([]interface{}, 0, len(events)*11)
	for _, e := range events {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, lookupRow(e)...)
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, lookupColumns, strings.Join(placeholders, ", "))

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		s.l.Error("clickhouse store_lookups error",
			applogger.String("table", s.table),
			applogger.Int("rows", len(events)),
			applogger.Error(err),
		)
		return fmt.Errorf("insert lookups: %w", err)
	}
	s.l.Debug("clickhouse store_lookups ok",
		applogger.String("table", s.table),
		applogger.Int("rows", len(events)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

func lookupRow(e *models.LookupEvent) []interface{} {
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	dur := e.DurationMs
	if dur < 0 {
		dur = 0
	}
	return []interface{}{
		occurred.UTC(),
		e.RequestID,
		e.VehicleID,
		e.Year,
		e.Make,
		e.Model,
		e.Trim,
		e.Provider,
		e.Price,
		e.Outcome,
		uint32(dur),
	}
}

func (s *CHLookupStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
