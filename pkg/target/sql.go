package target

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/protocol"
)

// SQL stores the latest snapshot of every live fiber in a table.
// It works with any database/sql driver (PostgreSQL, MySQL, SQLite).
// The table is created on Open unless disabled:
//
//	CREATE TABLE reconciler_fibers (
//	    fiber BIGINT PRIMARY KEY,
//	    parent BIGINT NOT NULL,
//	    seq BIGINT NOT NULL,
//	    component VARCHAR(255) NOT NULL,
//	    fiber_key VARCHAR(255) NOT NULL,
//	    snapshot BLOB NOT NULL,
//	    committed_at TIMESTAMP NOT NULL
//	);
type SQL struct {
	db          *sql.DB
	tableName   string
	dialect     SQLDialect
	createTable bool
	now         func() time.Time
}

// SQLDialect represents the SQL dialect for query generation.
type SQLDialect int

const (
	// DialectSQLite uses SQLite syntax (? placeholders).
	DialectSQLite SQLDialect = iota
	// DialectPostgreSQL uses PostgreSQL syntax ($1, $2 placeholders).
	DialectPostgreSQL
	// DialectMySQL uses MySQL syntax (? placeholders).
	DialectMySQL
)

// ParseDialect maps a driver or dialect name to a SQLDialect.
func ParseDialect(name string) (SQLDialect, error) {
	switch name {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgreSQL, nil
	case "mysql":
		return DialectMySQL, nil
	}
	return 0, fmt.Errorf("target: unknown SQL dialect %q", name)
}

// SQLOption configures the SQL target.
type SQLOption func(*SQL)

// WithSQLTableName sets the table name. Default: "reconciler_fibers".
func WithSQLTableName(name string) SQLOption {
	return func(s *SQL) {
		s.tableName = name
	}
}

// WithSQLDialect sets the SQL dialect. Default: DialectSQLite.
func WithSQLDialect(d SQLDialect) SQLOption {
	return func(s *SQL) {
		s.dialect = d
	}
}

// WithoutSQLCreateTable disables table creation on Open.
func WithoutSQLCreateTable() SQLOption {
	return func(s *SQL) {
		s.createTable = false
	}
}

// NewSQL creates a SQL target on db.
func NewSQL(db *sql.DB, opts ...SQLOption) *SQL {
	s := &SQL{
		db:          db,
		tableName:   "reconciler_fibers",
		dialect:     DialectSQLite,
		createTable: true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// placeholder returns the n-th placeholder for the dialect.
func (s *SQL) placeholder(n int) string {
	if s.dialect == DialectPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Open implements fiber.Target. It verifies the connection and creates
// the table.
func (s *SQL) Open(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("target: sql ping: %w", err)
	}
	if !s.createTable {
		return nil
	}

	blob := "BLOB"
	if s.dialect == DialectPostgreSQL {
		blob = "BYTEA"
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			fiber BIGINT PRIMARY KEY,
			parent BIGINT NOT NULL,
			seq BIGINT NOT NULL,
			component VARCHAR(255) NOT NULL,
			fiber_key VARCHAR(255) NOT NULL,
			snapshot %s NOT NULL,
			committed_at TIMESTAMP NOT NULL
		)`, s.tableName, blob)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("target: create table: %w", err)
	}
	return nil
}

// Commit implements fiber.Target by upserting the fiber's row.
func (s *SQL) Commit(ctx context.Context, c fiber.Commit) error {
	var query string
	switch s.dialect {
	case DialectPostgreSQL:
		query = fmt.Sprintf(`
			INSERT INTO %s (fiber, parent, seq, component, fiber_key, snapshot, committed_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (fiber) DO UPDATE SET
				parent = EXCLUDED.parent,
				seq = EXCLUDED.seq,
				component = EXCLUDED.component,
				fiber_key = EXCLUDED.fiber_key,
				snapshot = EXCLUDED.snapshot,
				committed_at = EXCLUDED.committed_at
		`, s.tableName)
	case DialectMySQL:
		query = fmt.Sprintf(`
			INSERT INTO %s (fiber, parent, seq, component, fiber_key, snapshot, committed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				parent = VALUES(parent),
				seq = VALUES(seq),
				component = VALUES(component),
				fiber_key = VALUES(fiber_key),
				snapshot = VALUES(snapshot),
				committed_at = VALUES(committed_at)
		`, s.tableName)
	default:
		query = fmt.Sprintf(`
			INSERT OR REPLACE INTO %s (fiber, parent, seq, component, fiber_key, snapshot, committed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.tableName)
	}

	_, err := s.db.ExecContext(ctx, query,
		int64(c.Fiber), int64(c.Parent), int64(c.Seq),
		c.Component, c.Key, Encode(c), s.now().UTC())
	if err != nil {
		return fmt.Errorf("target: sql commit %s: %w", c.Fiber, err)
	}
	return nil
}

// Unmount implements fiber.Unmounter by deleting the fiber's row.
func (s *SQL) Unmount(ctx context.Context, id fiber.ID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE fiber = %s`, s.tableName, s.placeholder(1))
	if _, err := s.db.ExecContext(ctx, query, int64(id)); err != nil {
		return fmt.Errorf("target: sql unmount %s: %w", id, err)
	}
	return nil
}

// Latest loads the latest snapshot of a fiber. It returns (nil, nil) when
// the fiber has no row.
func (s *SQL) Latest(ctx context.Context, id fiber.ID) (*protocol.CommitRecord, error) {
	query := fmt.Sprintf(`SELECT snapshot FROM %s WHERE fiber = %s`, s.tableName, s.placeholder(1))

	var data []byte
	err := s.db.QueryRowContext(ctx, query, int64(id)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("target: sql latest %s: %w", id, err)
	}
	return Decode(data)
}

// Count returns the number of stored fibers.
func (s *SQL) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.tableName)
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("target: sql count: %w", err)
	}
	return n, nil
}
