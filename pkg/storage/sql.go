package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "github.com/lib/pq" // postgres driver

	"github.com/ssargent/recordcast/pkg/codec"
)

const loadQuery = "SELECT id, data FROM records ORDER BY id"

// SQLLoader reads records from a relational "records" table with columns
// id (integer) and data (text).
type SQLLoader struct {
	db *sql.DB
}

// OpenSQL connects to PostgreSQL using dsn
func OpenSQL(dsn string) (*SQLLoader, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &SQLLoader{db: db}, nil
}

// NewSQLLoader wraps an existing connection pool
func NewSQLLoader(db *sql.DB) *SQLLoader {
	return &SQLLoader{db: db}
}

// Load returns all rows of the records table ordered by id
func (l *SQLLoader) Load(ctx context.Context) ([]codec.Record, error) {
	rows, err := l.db.QueryContext(ctx, loadQuery)
	if err != nil {
		return nil, fmt.Errorf("postgres: query records: %w", err)
	}
	defer rows.Close()

	var records []codec.Record
	for rows.Next() {
		var (
			id   int64
			data string
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("postgres: scan record: %w", err)
		}
		if id < 0 || id > math.MaxUint32 {
			return nil, fmt.Errorf("postgres: record id %d out of range", id)
		}
		records = append(records, codec.Record{ID: uint32(id), Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: read records: %w", err)
	}
	return records, nil
}

// Close closes the connection pool
func (l *SQLLoader) Close() error {
	return l.db.Close()
}
