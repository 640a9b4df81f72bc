package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	_ "github.com/lib/pq"
)

// BuildDSNFromEnv builds a Postgres connection string from POSTGRES_HOST,
// POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD and POSTGRES_DB, falling
// back to DATABASE_URL when POSTGRES_DB is not set.
func BuildDSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
	return dsn, nil
}

// OpenPostgres opens a connection pool and checks that the server answers
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not reachable: %w", err)
	}
	return db, nil
}

// PostgresSource reads a sample from the first column of a query
type PostgresSource struct {
	DB    *sql.DB
	Query string
	Args  []interface{}
}

// Name returns the query with whitespace collapsed
func (p PostgresSource) Name() string {
	return "postgres: " + strings.Join(strings.Fields(p.Query), " ")
}

// Load runs the query. NULL and non-finite values are skipped.
func (p PostgresSource) Load(ctx context.Context, opts Options) (*Data, error) {
	if p.DB == nil {
		return nil, errors.New("postgres source has no database")
	}

	rows, err := p.DB.QueryContext(ctx, p.Query, p.Args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	data := &Data{Source: p.Name()}
	if err := scanValues(rows, data, opts); err != nil {
		return nil, err
	}
	return data, nil
}

// rowScanner is the part of *sql.Rows used by scanValues
type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanValues(rows rowScanner, data *Data, opts Options) error {
	rowNum := 0
	for rows.Next() {
		rowNum++
		var v sql.NullFloat64
		if err := rows.Scan(&v); err != nil {
			return fmt.Errorf("scan row %d: %w", rowNum, err)
		}

		if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
			text := "NULL"
			if v.Valid {
				text = fmt.Sprintf("%v", v.Float64)
			}
			data.Invalid = append(data.Invalid, Invalid{Line: rowNum, Text: text})
			opts.warnf("Warning: Invalid data at row %d: '%s' - Skipping\n", rowNum, text)
			continue
		}
		data.Values = append(data.Values, v.Float64)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	if len(data.Invalid) > 0 {
		opts.warnf("\nTotal invalid entries skipped: %d\n\n", len(data.Invalid))
	}
	return nil
}
