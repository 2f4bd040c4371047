/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

import (
	"context"
	"fmt"

	"github.com/suparena/analogue/mapping"
)

// RegisterEntity registers an entity map for type T.
func RegisterEntity[T any](m *Manager, em mapping.Mapping) error {
	var zero T
	return m.Register(&zero, em)
}

// MapperFor returns the cached mapper for type T.
func MapperFor[T any](m *Manager) (*Mapper, error) {
	var zero T
	return m.Mapper(&zero)
}

// RepositoryFor returns the cached repository for type T.
func RepositoryFor[T any](m *Manager) (*Repository, error) {
	var zero T
	return m.Repository(&zero)
}

// FindAs loads the entity with the given id as a *T. It returns nil
// without error when no row matches.
func FindAs[T any](ctx context.Context, m *Manager, id any) (*T, error) {
	var zero T
	entity, err := m.Find(ctx, &zero, id)
	if err != nil || entity == nil {
		return nil, err
	}
	typed, ok := entity.(*T)
	if !ok {
		return nil, fmt.Errorf("entity %T is not %T", entity, (*T)(nil))
	}
	return typed, nil
}

// GetAs executes a query and returns the results as a typed slice.
func GetAs[T any](ctx context.Context, q *Query) ([]*T, error) {
	entities, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	typed := make([]*T, 0, len(entities))
	for _, entity := range entities {
		e, ok := entity.(*T)
		if !ok {
			return nil, fmt.Errorf("entity %T is not %T", entity, (*T)(nil))
		}
		typed = append(typed, e)
	}
	return typed, nil
}

// FirstAs executes a query and returns the first match as a *T, or nil
// without error when nothing matches.
func FirstAs[T any](ctx context.Context, q *Query) (*T, error) {
	entity, err := q.First(ctx)
	if err != nil || entity == nil {
		return nil, err
	}
	typed, ok := entity.(*T)
	if !ok {
		return nil, fmt.Errorf("entity %T is not %T", entity, (*T)(nil))
	}
	return typed, nil
}
