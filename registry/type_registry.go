package registry

import (
	"fmt"
	"sync"

	"github.com/suparena/analogue/mapping"
)

// MapFactory produces a fresh, unbound entity map.
type MapFactory func() mapping.Mapping

// ValueMapFactory produces a fresh, unbound value-object map.
type ValueMapFactory func() mapping.ValueMapping

// Package-level factory tables, keyed by map type name ("shop.CustomerMap").
// Populated from init functions or generated code (see the processor
// package); read by the registries during convention lookup.
var (
	factoryMu         sync.RWMutex
	mapFactories      = make(map[string]MapFactory)
	valueMapFactories = make(map[string]ValueMapFactory)
)

// RegisterMapFactory registers an entity map factory under its map type
// name. If a factory is already registered for the name, it panics to
// prevent accidental overrides.
func RegisterMapFactory(name string, fn MapFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := mapFactories[name]; exists {
		panic(fmt.Sprintf("map registry: factory for %q already registered", name))
	}
	mapFactories[name] = fn
}

// LookupMapFactory returns the entity map factory registered under the
// given map type name.
func LookupMapFactory(name string) (MapFactory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	fn, ok := mapFactories[name]
	return fn, ok
}

// RegisterValueMapFactory registers a value map factory under its map type
// name. Duplicate names panic, as with RegisterMapFactory.
func RegisterValueMapFactory(name string, fn ValueMapFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := valueMapFactories[name]; exists {
		panic(fmt.Sprintf("map registry: value factory for %q already registered", name))
	}
	valueMapFactories[name] = fn
}

// LookupValueMapFactory returns the value map factory registered under the
// given map type name.
func LookupValueMapFactory(name string) (ValueMapFactory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	fn, ok := valueMapFactories[name]
	return fn, ok
}

// RegisterEntityMap registers an entity map factory under the conventional
// map name for entity type E, so registering for shop.Customer binds the
// factory to "shop.CustomerMap".
func RegisterEntityMap[E any](fn MapFactory) {
	RegisterMapFactory(mapping.ConventionalMapName(mapping.TypeNameFor[E]()), fn)
}

// RegisterValueObjectMap registers a value map factory under the
// conventional map name for value type V.
func RegisterValueObjectMap[V any](fn ValueMapFactory) {
	RegisterValueMapFactory(mapping.ConventionalMapName(mapping.TypeNameFor[V]()), fn)
}

// ResetFactories clears both factory tables. Intended for tests; production
// code populates the tables once at init and never clears them.
func ResetFactories() {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	mapFactories = make(map[string]MapFactory)
	valueMapFactories = make(map[string]ValueMapFactory)
}
