/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Memory is a map-backed Connection for tests and zero-config use. Rows are
// copied on the way in and out, so callers never alias stored state.
type Memory struct {
	mu     sync.RWMutex
	name   string
	tables map[string]map[string]map[string]any

	findError   error
	insertError error
	updateError error
	deleteError error
	selectError error
}

// NewMemory creates an empty in-memory connection.
func NewMemory(name string) *Memory {
	return &Memory{
		name:   name,
		tables: make(map[string]map[string]map[string]any),
	}
}

// WithFindError makes Find operations return an error
func (m *Memory) WithFindError(err error) *Memory {
	m.findError = err
	return m
}

// WithInsertError makes Insert operations return an error
func (m *Memory) WithInsertError(err error) *Memory {
	m.insertError = err
	return m
}

// WithUpdateError makes Update operations return an error
func (m *Memory) WithUpdateError(err error) *Memory {
	m.updateError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *Memory) WithDeleteError(err error) *Memory {
	m.deleteError = err
	return m
}

// WithSelectError makes Select operations return an error
func (m *Memory) WithSelectError(err error) *Memory {
	m.selectError = err
	return m
}

// Name returns the connection name.
func (m *Memory) Name() string { return m.name }

// Driver returns "memory".
func (m *Memory) Driver() string { return "memory" }

// Find fetches one row by key value.
func (m *Memory) Find(ctx context.Context, table, key string, id any) (map[string]any, bool, error) {
	if m.findError != nil {
		return nil, false, m.findError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, false, nil
	}
	row, ok := rows[keyString(id)]
	if !ok {
		return nil, false, nil
	}
	return copyRow(row), true, nil
}

// Insert stores a new row indexed by its key column value.
func (m *Memory) Insert(ctx context.Context, table, key string, row map[string]any) error {
	if m.insertError != nil {
		return m.insertError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		rows = make(map[string]map[string]any)
		m.tables[table] = rows
	}
	rows[keyString(row[key])] = copyRow(row)
	return nil
}

// Update rewrites the row whose key column equals id.
func (m *Memory) Update(ctx context.Context, table, key string, id any, row map[string]any) error {
	if m.updateError != nil {
		return m.updateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("memory: no row %v in table %q", id, table)
	}
	k := keyString(id)
	if _, ok := rows[k]; !ok {
		return fmt.Errorf("memory: no row %v in table %q", id, table)
	}
	rows[k] = copyRow(row)
	return nil
}

// Delete removes the row whose key column equals id. Deleting an absent row
// is a no-op.
func (m *Memory) Delete(ctx context.Context, table, key string, id any) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if rows, ok := m.tables[table]; ok {
		delete(rows, keyString(id))
	}
	return nil
}

// Select returns rows matching the query's criteria, ordered and limited.
func (m *Memory) Select(ctx context.Context, table string, q Query) ([]map[string]any, error) {
	if m.selectError != nil {
		return nil, m.selectError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []map[string]any
	for _, row := range m.tables[table] {
		if matchesCriteria(row, q.Criteria) {
			out = append(out, copyRow(row))
		}
	}

	if q.OrderBy != "" {
		sort.Slice(out, func(i, j int) bool {
			less := compareValues(out[i][q.OrderBy], out[j][q.OrderBy]) < 0
			if q.Descending {
				return !less
			}
			return less
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len returns the number of rows stored in a table.
func (m *Memory) Len(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

func keyString(id any) string {
	return fmt.Sprintf("%v", id)
}

func copyRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func matchesCriteria(row, criteria map[string]any) bool {
	for col, want := range criteria {
		got, ok := row[col]
		if !ok {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// compareValues orders two column values, numerically when both parse as
// numbers and lexically otherwise.
func compareValues(a, b any) int {
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	af, aerr := strconv.ParseFloat(as, 64)
	bf, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
