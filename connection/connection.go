/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import "context"

// Query describes a criteria-scoped row selection. Criteria are ANDed
// equality predicates; OrderBy and Limit apply after filtering.
type Query struct {
	Criteria   map[string]any
	OrderBy    string
	Descending bool
	Limit      int
}

// Connection is the row-level contract mappers persist through. Rows are
// plain column/value maps; anything richer (query building, relations,
// attribute parsing) lives above this interface.
type Connection interface {
	// Name returns the connection name it was configured under.
	Name() string

	// Driver returns the backing driver identifier: "memory", "sqlite",
	// "postgres", or "dynamodb".
	Driver() string

	// Find fetches the row whose key column equals id. The second return
	// reports whether the row exists.
	Find(ctx context.Context, table, key string, id any) (map[string]any, bool, error)

	// Insert writes a new row. The key column names the row's identity for
	// drivers that index rows themselves.
	Insert(ctx context.Context, table, key string, row map[string]any) error

	// Update rewrites the row whose key column equals id.
	Update(ctx context.Context, table, key string, id any, row map[string]any) error

	// Delete removes the row whose key column equals id.
	Delete(ctx context.Context, table, key string, id any) error

	// Select returns the rows matching q.
	Select(ctx context.Context, table string, q Query) ([]map[string]any, error)

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// Close releases the underlying handle.
	Close() error
}

// Provider hands out connection handles by name. Handles are safe to hold
// for the process lifetime once acquired.
type Provider interface {
	DefaultConnection() (Connection, error)
	Connection(name string) (Connection, error)
}
