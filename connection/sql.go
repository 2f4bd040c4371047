/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQL is a database/sql backed Connection. Works with both the sqlite and
// postgres drivers. Table and column identifiers are taken from entity
// maps, never from user input.
type SQL struct {
	name   string
	driver string
	db     *sql.DB
}

// NewSQL wraps an existing database handle. The caller keeps ownership of
// pool configuration; Close closes the handle.
func NewSQL(name, driver string, db *sql.DB) *SQL {
	return &SQL{name: name, driver: driver, db: db}
}

// openSQLite opens a SQLite database connection.
// Uses modernc.org/sqlite for pure Go implementation (no CGO required).
func openSQLite(name string, s Settings) (*SQL, error) {
	dsn := s.DSN
	if dsn == "" {
		path := s.Path
		if path == "" {
			path = "./analogue.db"
		}

		// Ensure directory exists
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}

		// Build connection string with pragmas for performance
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	configurePool(db, s)
	return NewSQL(name, "sqlite", db), nil
}

// openPostgres opens a PostgreSQL database connection.
func openPostgres(name string, s Settings) (*SQL, error) {
	dsn := s.DSN
	if dsn == "" {
		host := s.Host
		if host == "" {
			host = "localhost"
		}
		port := s.Port
		if port == 0 {
			port = 5432
		}
		dbname := s.Database
		if dbname == "" {
			dbname = "analogue"
		}
		sslmode := s.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}

		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			host, port, s.User, s.Password, dbname, sslmode,
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	configurePool(db, s)
	return NewSQL(name, "postgres", db), nil
}

func configurePool(db *sql.DB, s Settings) {
	if s.MaxOpenConns > 0 {
		db.SetMaxOpenConns(s.MaxOpenConns)
	}
	if s.MaxIdleConns > 0 {
		db.SetMaxIdleConns(s.MaxIdleConns)
	}
}

// Name returns the connection name.
func (c *SQL) Name() string { return c.name }

// Driver returns "sqlite" or "postgres".
func (c *SQL) Driver() string { return c.driver }

// DB exposes the underlying handle for schema setup and raw access.
func (c *SQL) DB() *sql.DB { return c.db }

// Find fetches one row by key value.
func (c *SQL) Find(ctx context.Context, table, key string, id any) (map[string]any, bool, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ? LIMIT 1", table, key)
	rows, err := c.db.QueryContext(ctx, c.rebind(query), id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	row, err := scanRow(rows)
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// Insert writes a new row.
func (c *SQL) Insert(ctx context.Context, table, key string, row map[string]any) error {
	cols := sortedColumns(row)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = "?"
		args[i] = row[col]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := c.db.ExecContext(ctx, c.rebind(query), args...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// Update rewrites the row whose key column equals id.
func (c *SQL) Update(ctx context.Context, table, key string, id any, row map[string]any) error {
	cols := sortedColumns(row)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		if col == key {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = ?", col))
		args = append(args, row[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		table, strings.Join(sets, ", "), key)
	if _, err := c.db.ExecContext(ctx, c.rebind(query), args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	return nil
}

// Delete removes the row whose key column equals id.
func (c *SQL) Delete(ctx context.Context, table, key string, id any) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, key)
	if _, err := c.db.ExecContext(ctx, c.rebind(query), id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// Select returns the rows matching q.
func (c *SQL) Select(ctx context.Context, table string, q Query) ([]map[string]any, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", table)

	var args []any
	if len(q.Criteria) > 0 {
		conds := make([]string, 0, len(q.Criteria))
		for _, col := range sortedColumns(q.Criteria) {
			conds = append(conds, fmt.Sprintf("%s = ?", col))
			args = append(args, q.Criteria[col])
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	if q.OrderBy != "" {
		fmt.Fprintf(&sb, " ORDER BY %s", q.OrderBy)
		if q.Descending {
			sb.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := c.db.QueryContext(ctx, c.rebind(sb.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Ping verifies the database is reachable.
func (c *SQL) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database handle.
func (c *SQL) Close() error {
	return c.db.Close()
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL.
func (c *SQL) rebind(query string) string {
	if c.driver != "postgres" {
		return query
	}

	var result []byte
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, fmt.Sprintf("%d", n)...)
			n++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}

func sortedColumns(row map[string]any) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// scanRow reads the current result row into a column map. []byte values
// become strings, which keeps text columns usable across drivers.
func scanRow(rows *sql.Rows) (map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(cols))
	for i, col := range cols {
		v := vals[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row[col] = v
	}
	return row, nil
}
