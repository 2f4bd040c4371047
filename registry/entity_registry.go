/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"

	"github.com/suparena/analogue/errors"
	"github.com/suparena/analogue/mapping"
)

// EntityRegistry resolves entity types to their bound entity maps.
//
// Resolution falls back in three tiers: an explicitly registered map, a
// factory registered under the conventional "<EntityType>Map" name, then a
// synthesized zero-value mapping.EntityMap. Whichever tier produces the map,
// it is bound to the entity type before caching, and every later call
// returns that same bound instance.
type EntityRegistry struct {
	mu   sync.RWMutex
	maps map[string]mapping.Mapping
}

// NewEntityRegistry returns an empty registry.
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{maps: make(map[string]mapping.Mapping)}
}

// Register binds m to the entity type and caches it. Passing a nil map
// registers whatever convention or default resolution would produce.
// Registering an entity type twice fails with a DuplicateRegistrationError.
func (r *EntityRegistry) Register(entityType string, m mapping.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.maps[entityType]; exists {
		return errors.NewDuplicateRegistrationError(entityType)
	}
	if m == nil {
		m = fallbackMap(entityType)
	}
	mapping.Bind(m, entityType)
	r.maps[entityType] = m
	return nil
}

// Resolve returns the bound entity map for the entity type, registering the
// conventional or default map on first sight. Resolve never fails: an
// entity type nobody registered gets a zero-value map bound to it.
func (r *EntityRegistry) Resolve(entityType string) mapping.Mapping {
	r.mu.RLock()
	m, ok := r.maps[entityType]
	r.mu.RUnlock()
	if ok {
		return m
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.maps[entityType]; ok {
		return m
	}
	m = fallbackMap(entityType)
	mapping.Bind(m, entityType)
	r.maps[entityType] = m
	return m
}

// IsRegistered reports whether an entity map is cached for the entity type.
func (r *EntityRegistry) IsRegistered(entityType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.maps[entityType]
	return ok
}

// Registered returns the entity types currently in the registry, in no
// particular order.
func (r *EntityRegistry) Registered() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.maps))
	for t := range r.maps {
		types = append(types, t)
	}
	return types
}

// fallbackMap resolves the non-explicit tiers: the conventional factory if
// one is registered for "<EntityType>Map", else a zero-value EntityMap.
func fallbackMap(entityType string) mapping.Mapping {
	if fn, ok := LookupMapFactory(mapping.ConventionalMapName(entityType)); ok {
		return fn()
	}
	return &mapping.EntityMap{}
}
