/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"

	"github.com/suparena/analogue/errors"
	"github.com/suparena/analogue/mapping"
)

// ValueRegistry resolves value-object types to their value maps.
//
// Value maps are never cached: every ValueMap call instantiates a fresh
// instance from the stored factory and binds it, so callers can mutate one
// without affecting another. The registry stores factories, not instances.
type ValueRegistry struct {
	mu        sync.RWMutex
	factories map[string]ValueMapFactory
}

// NewValueRegistry returns an empty registry.
func NewValueRegistry() *ValueRegistry {
	return &ValueRegistry{factories: make(map[string]ValueMapFactory)}
}

// Register stores the factory for a value type. A nil factory falls back to
// the conventional "<ValueType>Map" factory and fails with a
// MissingMappingError when none is registered. Unlike entity registration,
// re-registering a value type overwrites the prior factory.
func (r *ValueRegistry) Register(valueType string, fn ValueMapFactory) error {
	if fn == nil {
		conventional, err := conventionalValueFactory(valueType)
		if err != nil {
			return err
		}
		fn = conventional
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[valueType] = fn
	return nil
}

// ValueMap returns a fresh value map bound to the value type. An
// unregistered value type is registered implicitly through the conventional
// factory, which fails with a MissingMappingError when absent. Every call
// yields a distinct instance.
func (r *ValueRegistry) ValueMap(valueType string) (mapping.ValueMapping, error) {
	r.mu.RLock()
	fn, ok := r.factories[valueType]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		fn, ok = r.factories[valueType]
		if !ok {
			conventional, err := conventionalValueFactory(valueType)
			if err != nil {
				r.mu.Unlock()
				return nil, err
			}
			fn = conventional
			r.factories[valueType] = fn
		}
		r.mu.Unlock()
	}

	m := fn()
	mapping.BindValue(m, valueType)
	return m, nil
}

// IsRegistered reports whether a factory is stored for the value type.
func (r *ValueRegistry) IsRegistered(valueType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[valueType]
	return ok
}

func conventionalValueFactory(valueType string) (ValueMapFactory, error) {
	name := mapping.ConventionalMapName(valueType)
	fn, ok := LookupValueMapFactory(name)
	if !ok {
		return nil, errors.NewMissingMappingError(valueType, name)
	}
	return fn, nil
}
