/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

import (
	"context"

	"github.com/suparena/analogue/connection"
)

// Query accumulates criteria against one mapper's table and hydrates the
// matching rows into entities. Build one with Mapper.Query (scoped) or
// Mapper.GlobalQuery (unscoped); the builder methods mutate and return
// the same Query, so a Query is meant to be chained and executed once.
type Query struct {
	mapper     *Mapper
	criteria   map[string]any
	orderBy    string
	descending bool
	limit      int
}

// Where adds an equality criterion on a column.
func (q *Query) Where(column string, value any) *Query {
	q.criteria[column] = value
	return q
}

// OrderBy sorts results by a column, ascending unless Desc is called.
func (q *Query) OrderBy(column string) *Query {
	q.orderBy = column
	return q
}

// Desc flips the sort order to descending.
func (q *Query) Desc() *Query {
	q.descending = true
	return q
}

// Limit caps the number of rows returned. Zero means no cap.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Get executes the query and returns one hydrated entity per row, in the
// requested order.
func (q *Query) Get(ctx context.Context) ([]any, error) {
	rows, err := q.mapper.conn.Select(ctx, q.mapper.mapping.TableName(), connection.Query{
		Criteria:   q.criteria,
		OrderBy:    q.orderBy,
		Descending: q.descending,
		Limit:      q.limit,
	})
	if err != nil {
		return nil, err
	}
	entities := make([]any, 0, len(rows))
	for _, row := range rows {
		entity, err := q.mapper.materialize(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// First executes the query with a limit of one and returns the single
// match, or nil without error when nothing matches.
func (q *Query) First(ctx context.Context) (any, error) {
	entities, err := q.Limit(1).Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return entities[0], nil
}
