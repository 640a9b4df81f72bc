package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DefaultTable is the table PostgresSink writes to when Table is empty
const DefaultTable = "statistics_results"

// PostgresSink stores reports as rows of a Postgres table
type PostgresSink struct {
	DB    *sql.DB
	Table string
}

func (s PostgresSink) table() string {
	if s.Table == "" {
		return DefaultTable
	}
	return s.Table
}

func schemaStatement(table string) string {
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id                 BIGSERIAL PRIMARY KEY,
  source             TEXT NOT NULL,
  count              INTEGER NOT NULL,
  mean               DOUBLE PRECISION NOT NULL,
  median             DOUBLE PRECISION NOT NULL,
  mode               DOUBLE PRECISION,
  variance           DOUBLE PRECISION NOT NULL,
  standard_deviation DOUBLE PRECISION NOT NULL,
  invalid_entries    INTEGER NOT NULL,
  duration           DOUBLE PRECISION NOT NULL,
  created_at         TIMESTAMPTZ NOT NULL
)`, pq.QuoteIdentifier(table))
}

func insertStatement(table string) string {
	return fmt.Sprintf(`
INSERT INTO %s
  (source, count, mean, median, mode, variance, standard_deviation, invalid_entries, duration, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, pq.QuoteIdentifier(table))
}

// insertArgs returns the values bound to insertStatement
func insertArgs(r *Report) []interface{} {
	var mode sql.NullFloat64
	if v, ok := r.Stats.ModeValue(); ok {
		mode = sql.NullFloat64{Float64: v, Valid: true}
	}
	return []interface{}{
		r.Source,
		r.Stats.Count,
		r.Stats.Mean,
		r.Stats.Median,
		mode,
		r.Stats.Variance,
		r.Stats.StdDev,
		r.Invalid,
		r.Elapsed.Seconds(),
		r.GeneratedAt,
	}
}

// EnsureSchema creates the results table if it does not exist
func (s PostgresSink) EnsureSchema(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("postgres sink has no database")
	}
	if _, err := s.DB.ExecContext(ctx, schemaStatement(s.table())); err != nil {
		return fmt.Errorf("create table %s: %w", s.table(), err)
	}
	return nil
}

// Store inserts one row for the report
func (s PostgresSink) Store(ctx context.Context, r *Report) error {
	if s.DB == nil {
		return errors.New("postgres sink has no database")
	}
	if _, err := s.DB.ExecContext(ctx, insertStatement(s.table()), insertArgs(r)...); err != nil {
		return fmt.Errorf("insert into %s failed: %w", s.table(), err)
	}
	return nil
}
