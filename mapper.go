/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/suparena/analogue/connection"
	"github.com/suparena/analogue/errors"
	"github.com/suparena/analogue/event"
	"github.com/suparena/analogue/hydrate"
	"github.com/suparena/analogue/mapping"
)

// softDeleteColumn marks a row as trashed. Live rows carry an empty
// string so equality criteria can filter on it across every driver.
const softDeleteColumn = "deleted_at"

// Mapper persists one entity type through one connection. Mappers are
// built and cached by the Manager; all instances obtained for the same
// entity type are the same instance.
type Mapper struct {
	mapping    mapping.Mapping
	conn       connection.Connection
	dispatcher event.Dispatcher
	types      *hydrate.Materializer
	logger     *slog.Logger
}

func newMapper(em mapping.Mapping, conn connection.Connection, d event.Dispatcher,
	types *hydrate.Materializer, logger *slog.Logger) *Mapper {
	return &Mapper{
		mapping:    em,
		conn:       conn,
		dispatcher: d,
		types:      types,
		logger:     logger,
	}
}

// EntityType returns the entity type this mapper serves.
func (mp *Mapper) EntityType() string { return mp.mapping.EntityType() }

// Map returns the entity map the mapper was resolved with.
func (mp *Mapper) Map() mapping.Mapping { return mp.mapping }

// Connection returns the connection the mapper persists through.
func (mp *Mapper) Connection() connection.Connection { return mp.conn }

// fire dispatches one lifecycle event for this mapper's entity type.
// A handler error aborts the surrounding operation.
func (mp *Mapper) fire(ctx context.Context, name event.Name, payload any) error {
	entityType := mp.mapping.EntityType()
	e := event.New(name, entityType, payload)
	return mp.dispatcher.Fire(ctx, event.EntityChannel(name, entityType), e)
}

// Store persists an entity, inserting or updating depending on whether a
// row with the entity's key already exists. An empty string key is filled
// with a generated UUID before the insert; non-string keys are stored
// as-is. Store fires store first, then creating/created or
// updating/updated, then stored; any handler error cancels the rest of
// the operation.
func (mp *Mapper) Store(ctx context.Context, entity any) error {
	if err := mp.fire(ctx, event.Store, entity); err != nil {
		return err
	}

	keyName := mp.mapping.KeyName()
	id, ok := hydrate.KeyValue(entity, keyName)
	if !ok {
		return errors.NewMissingKeyError(mp.EntityType(), keyName)
	}

	generated := false
	if s, isString := id.(string); isString && s == "" {
		id = uuid.New().String()
		if err := hydrate.SetKeyValue(entity, keyName, id); err != nil {
			return err
		}
		generated = true
	}

	exists := false
	if !generated {
		_, found, err := mp.conn.Find(ctx, mp.mapping.TableName(), keyName, id)
		if err != nil {
			return err
		}
		exists = found
	}

	row, err := hydrate.Dehydrate(entity)
	if err != nil {
		return err
	}
	if mp.mapping.SoftDeletes() {
		if _, ok := row[softDeleteColumn]; !ok {
			row[softDeleteColumn] = ""
		}
	}

	if exists {
		if err := mp.fire(ctx, event.Updating, entity); err != nil {
			return err
		}
		if err := mp.conn.Update(ctx, mp.mapping.TableName(), keyName, id, row); err != nil {
			return fmt.Errorf("failed to update %s %v: %w", mp.EntityType(), id, err)
		}
		if err := mp.fire(ctx, event.Updated, entity); err != nil {
			return err
		}
	} else {
		if err := mp.fire(ctx, event.Creating, entity); err != nil {
			return err
		}
		if err := mp.conn.Insert(ctx, mp.mapping.TableName(), keyName, row); err != nil {
			return fmt.Errorf("failed to insert %s %v: %w", mp.EntityType(), id, err)
		}
		if err := mp.fire(ctx, event.Created, entity); err != nil {
			return err
		}
	}

	mp.logger.Debug("stored entity",
		"entity", mp.EntityType(), "id", id, "created", !exists)
	return mp.fire(ctx, event.Stored, entity)
}

// Delete removes an entity. Maps with soft deletes rewrite the row with a
// deletion timestamp instead of removing it; scoped queries then skip the
// row while GlobalQuery still sees it. Deleting an entity whose key is
// empty fails with a MissingKeyError. Delete fires deleting before and
// deleted after the row is touched.
func (mp *Mapper) Delete(ctx context.Context, entity any) error {
	keyName := mp.mapping.KeyName()
	id, ok := hydrate.KeyValue(entity, keyName)
	if !ok || isEmptyKey(id) {
		return errors.NewMissingKeyError(mp.EntityType(), keyName)
	}

	if err := mp.fire(ctx, event.Deleting, entity); err != nil {
		return err
	}

	if mp.mapping.SoftDeletes() {
		row, err := hydrate.Dehydrate(entity)
		if err != nil {
			return err
		}
		row[softDeleteColumn] = time.Now().UTC().Format(time.RFC3339)
		if err := mp.conn.Update(ctx, mp.mapping.TableName(), keyName, id, row); err != nil {
			return fmt.Errorf("failed to soft delete %s %v: %w", mp.EntityType(), id, err)
		}
	} else {
		if err := mp.conn.Delete(ctx, mp.mapping.TableName(), keyName, id); err != nil {
			return fmt.Errorf("failed to delete %s %v: %w", mp.EntityType(), id, err)
		}
	}

	mp.logger.Debug("deleted entity",
		"entity", mp.EntityType(), "id", id, "soft", mp.mapping.SoftDeletes())
	return mp.fire(ctx, event.Deleted, entity)
}

// Find loads the entity with the given id. It returns nil without error
// when no row matches or when the row is soft-deleted.
func (mp *Mapper) Find(ctx context.Context, id any) (any, error) {
	row, found, err := mp.conn.Find(ctx, mp.mapping.TableName(), mp.mapping.KeyName(), id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if mp.mapping.SoftDeletes() {
		if s, _ := row[softDeleteColumn].(string); s != "" {
			return nil, nil
		}
	}
	return mp.materialize(row)
}

// materialize builds a fresh entity instance and hydrates it from a row.
func (mp *Mapper) materialize(row map[string]any) (any, error) {
	entity, err := mp.types.Instantiate(mp.EntityType())
	if err != nil {
		return nil, err
	}
	if err := hydrate.Hydrate(entity, row); err != nil {
		return nil, err
	}
	return entity, nil
}

// Query starts a scoped query: default criteria from the entity map
// apply and soft-deleted rows are excluded.
func (mp *Mapper) Query() *Query {
	criteria := make(map[string]any)
	for k, v := range mp.mapping.DefaultCriteria() {
		criteria[k] = v
	}
	if mp.mapping.SoftDeletes() {
		criteria[softDeleteColumn] = ""
	}
	return &Query{mapper: mp, criteria: criteria}
}

// GlobalQuery starts an unscoped query: no default criteria and
// soft-deleted rows included.
func (mp *Mapper) GlobalQuery() *Query {
	return &Query{mapper: mp, criteria: make(map[string]any)}
}

func isEmptyKey(id any) bool {
	if id == nil {
		return true
	}
	if s, ok := id.(string); ok {
		return s == ""
	}
	return false
}
