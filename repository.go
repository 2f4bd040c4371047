/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

import "context"

// Repository is the entity-facing facade over one Mapper. Repositories
// are cached per entity type by the Manager and always wrap the type's
// cached Mapper, so the two views never disagree about identity.
type Repository struct {
	mapper *Mapper
}

// Store persists an entity.
func (r *Repository) Store(ctx context.Context, entity any) error {
	return r.mapper.Store(ctx, entity)
}

// Delete removes an entity.
func (r *Repository) Delete(ctx context.Context, entity any) error {
	return r.mapper.Delete(ctx, entity)
}

// Find loads the entity with the given id, or nil when no row matches.
func (r *Repository) Find(ctx context.Context, id any) (any, error) {
	return r.mapper.Find(ctx, id)
}

// All returns every live entity of the repository's type.
func (r *Repository) All(ctx context.Context) ([]any, error) {
	return r.mapper.Query().Get(ctx)
}

// Query starts a scoped query for the repository's type.
func (r *Repository) Query() *Query {
	return r.mapper.Query()
}

// Mapper returns the mapper the repository wraps.
func (r *Repository) Mapper() *Mapper {
	return r.mapper
}
