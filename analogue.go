/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/suparena/analogue/connection"
	"github.com/suparena/analogue/event"
	"github.com/suparena/analogue/hydrate"
	"github.com/suparena/analogue/mapping"
	"github.com/suparena/analogue/registry"
)

// Manager is the central access point of the package. It owns the entity
// and value-object registries, the type materializer, and the caches of
// per-type Mappers and Repositories, and it routes every operation to the
// right connection.
//
// A Manager is safe for concurrent use. Construct one with New and share
// it; creating several Managers gives you several independent identity
// scopes, which is rarely what you want.
type Manager struct {
	provider   connection.Provider
	dispatcher event.Dispatcher
	gateway    *event.Gateway
	logger     *slog.Logger

	entities *registry.EntityRegistry
	values   *registry.ValueRegistry
	types    *hydrate.Materializer

	mu           sync.RWMutex
	mappers      map[string]*Mapper
	repositories map[string]*Repository
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithLogger sets the structured logger the Manager and its Mappers write
// to. Without it the Manager stays silent.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Manager bound to a connection provider and an event
// dispatcher. Both handles are fixed for the Manager's lifetime.
func New(provider connection.Provider, dispatcher event.Dispatcher, opts ...Option) *Manager {
	m := &Manager{
		provider:     provider,
		dispatcher:   dispatcher,
		gateway:      event.NewGateway(dispatcher),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		entities:     registry.NewEntityRegistry(),
		values:       registry.NewValueRegistry(),
		types:        hydrate.NewMaterializer(),
		mappers:      make(map[string]*Mapper),
		repositories: make(map[string]*Repository),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register binds an entity map to an entity type ahead of first use.
// The entity argument may be an instance, a pointer, or the type name
// itself; passing an instance also teaches the Manager how to materialize
// that type during hydration. Registering a type twice fails with a
// DuplicateRegistrationError.
func (m *Manager) Register(entity any, em mapping.Mapping) error {
	entityType, err := m.entityType(entity)
	if err != nil {
		return err
	}
	if err := m.entities.Register(entityType, em); err != nil {
		return err
	}
	m.rememberType(entity)
	m.logger.Debug("registered entity map", "entity", entityType)
	return nil
}

// IsRegistered reports whether an entity map was registered for the
// entity's type. Conventional and default maps do not count until they
// have been resolved.
func (m *Manager) IsRegistered(entity any) bool {
	return m.entities.IsRegistered(mapping.TypeName(entity))
}

// Mapper returns the mapper for the entity's type, constructing and
// caching it on first use. Every later call returns the same instance.
//
// An explicit entity map may be supplied on the first call; it is
// registered before resolution and fails if the type already has one.
// Construction fires the initializing and initialized events; handlers
// for those two events must not resolve mappers on the same Manager.
func (m *Manager) Mapper(entity any, explicit ...mapping.Mapping) (*Mapper, error) {
	entityType, err := m.entityType(entity)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	mp, ok := m.mappers[entityType]
	m.mu.RUnlock()
	if ok {
		return mp, nil
	}

	if len(explicit) > 0 && explicit[0] != nil {
		if err := m.entities.Register(entityType, explicit[0]); err != nil {
			return nil, err
		}
	}
	m.rememberType(entity)

	m.mu.Lock()
	defer m.mu.Unlock()
	if mp, ok := m.mappers[entityType]; ok {
		return mp, nil
	}

	if err := m.fireLifecycle(event.Initializing, entityType); err != nil {
		return nil, err
	}

	em := m.entities.Resolve(entityType)
	conn, err := m.connectionFor(em)
	if err != nil {
		return nil, err
	}
	mp = newMapper(em, conn, m.dispatcher, m.types, m.logger)

	if err := m.fireLifecycle(event.Initialized, entityType); err != nil {
		return nil, err
	}
	m.mappers[entityType] = mp
	m.logger.Debug("initialized mapper",
		"entity", entityType, "connection", conn.Name(), "table", em.TableName())
	return mp, nil
}

// Repository returns the repository for the entity's type, constructing
// and caching it on first use. The repository wraps the cached Mapper, so
// repositories and mappers for the same type always agree.
func (m *Manager) Repository(entity any) (*Repository, error) {
	entityType, err := m.entityType(entity)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	r, ok := m.repositories[entityType]
	m.mu.RUnlock()
	if ok {
		return r, nil
	}

	mp, err := m.Mapper(entity)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.repositories[entityType]; ok {
		return r, nil
	}
	r = &Repository{mapper: mp}
	m.repositories[entityType] = r
	return r, nil
}

// RegisterValueObject binds a value-map factory to a value-object type.
// A nil factory falls back to the conventional "<Type>Map" factory and
// fails with a MissingMappingError when none exists. Re-registering a
// value type replaces the previous factory.
func (m *Manager) RegisterValueObject(value any, factory func() mapping.ValueMapping) error {
	valueType, err := m.entityType(value)
	if err != nil {
		return err
	}
	if err := m.values.Register(valueType, registry.ValueMapFactory(factory)); err != nil {
		return err
	}
	m.rememberType(value)
	m.logger.Debug("registered value object", "value", valueType)
	return nil
}

// ValueMap returns a fresh value map for the value-object's type. Unlike
// entity maps, value maps are never cached; every call yields a new,
// bound instance.
func (m *Manager) ValueMap(value any) (mapping.ValueMapping, error) {
	return m.values.ValueMap(mapping.TypeName(value))
}

// RegisterGlobalEvent subscribes a handler to one lifecycle event across
// all entity types. The name must belong to the lifecycle vocabulary;
// anything else fails with an UnknownEventError before any subscription
// is made.
func (m *Manager) RegisterGlobalEvent(name event.Name, h event.Handler) error {
	if err := m.gateway.Subscribe(name, h); err != nil {
		return err
	}
	m.logger.Debug("registered global event handler", "event", name.String())
	return nil
}

// RegisterEntityEvent subscribes a handler to one lifecycle event fired
// for a single entity type.
func (m *Manager) RegisterEntityEvent(name event.Name, entity any, h event.Handler) error {
	entityType, err := m.entityType(entity)
	if err != nil {
		return err
	}
	if err := m.gateway.SubscribeEntity(name, entityType, h); err != nil {
		return err
	}
	m.logger.Debug("registered entity event handler",
		"event", name.String(), "entity", entityType)
	return nil
}

// RegisterPlugin hands the Manager to a plugin's Register hook. Any
// error from the hook propagates unchanged.
func (m *Manager) RegisterPlugin(p Plugin) error {
	if err := p.Register(m); err != nil {
		return err
	}
	m.logger.Info("registered plugin", "plugin", fmt.Sprintf("%T", p))
	return nil
}

// Store persists an entity through its type's mapper.
func (m *Manager) Store(ctx context.Context, entity any) error {
	mp, err := m.Mapper(entity)
	if err != nil {
		return err
	}
	return mp.Store(ctx, entity)
}

// Delete removes an entity through its type's mapper.
func (m *Manager) Delete(ctx context.Context, entity any) error {
	mp, err := m.Mapper(entity)
	if err != nil {
		return err
	}
	return mp.Delete(ctx, entity)
}

// Find loads the entity with the given id through its type's mapper.
// It returns nil without error when no row matches.
func (m *Manager) Find(ctx context.Context, entity any, id any) (any, error) {
	mp, err := m.Mapper(entity)
	if err != nil {
		return nil, err
	}
	return mp.Find(ctx, id)
}

// Query starts a scoped query for the entity's type. Default criteria
// from the entity map apply, and soft-deleted rows are excluded.
func (m *Manager) Query(entity any) (*Query, error) {
	mp, err := m.Mapper(entity)
	if err != nil {
		return nil, err
	}
	return mp.Query(), nil
}

// GlobalQuery starts an unscoped query for the entity's type: no default
// criteria, soft-deleted rows included.
func (m *Manager) GlobalQuery(entity any) (*Query, error) {
	mp, err := m.Mapper(entity)
	if err != nil {
		return nil, err
	}
	return mp.GlobalQuery(), nil
}

// entityType derives the canonical type name, rejecting values no name
// can be derived from.
func (m *Manager) entityType(entity any) (string, error) {
	entityType := mapping.TypeName(entity)
	if entityType == "" {
		return "", fmt.Errorf("cannot derive an entity type from %T", entity)
	}
	return entityType, nil
}

// rememberType teaches the materializer the entity's concrete type so
// queries can instantiate it later. Type names carry no type information
// and are skipped.
func (m *Manager) rememberType(entity any) {
	if entity == nil {
		return
	}
	if _, ok := entity.(string); ok {
		return
	}
	m.types.RegisterType(entity)
}

func (m *Manager) connectionFor(em mapping.Mapping) (connection.Connection, error) {
	if name := em.Connection(); name != "" {
		return m.provider.Connection(name)
	}
	return m.provider.DefaultConnection()
}

func (m *Manager) fireLifecycle(name event.Name, entityType string) error {
	e := event.New(name, entityType, nil)
	if err := m.dispatcher.Fire(context.Background(), event.EntityChannel(name, entityType), e); err != nil {
		return fmt.Errorf("%s handler rejected %s: %w", name.String(), entityType, err)
	}
	return nil
}
