/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hydrate

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/analogue/errors"
)

// Materializer produces zero-initialized instances of registered types.
//
// Instantiation runs no factory or setup logic: every field holds its zero
// value until hydration fills it from a persisted row. Invariants a
// constructor would establish do not hold on a materialized instance, so
// the mechanism is reserved for the hydration path and is reachable only
// through a Materializer instance.
type Materializer struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewMaterializer returns an empty Materializer.
func NewMaterializer() *Materializer {
	return &Materializer{types: make(map[string]reflect.Type)}
}

// RegisterType records the concrete type behind a type identifier, using a
// prototype value or pointer. Returns the identifier the type was stored
// under. Re-registration of the same name overwrites.
func (m *Materializer) RegisterType(prototype any) string {
	t := reflect.TypeOf(prototype)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.String()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[name] = t
	return name
}

// Resolves reports whether the type identifier is registered.
func (m *Materializer) Resolves(typeName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.types[typeName]
	return ok
}

// Instantiate returns a pointer to a zero-initialized instance of the named
// type. Unregistered names fail with an UnresolvableTypeError.
func (m *Materializer) Instantiate(typeName string) (any, error) {
	m.mu.RLock()
	t, ok := m.types[typeName]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.NewUnresolvableTypeError(typeName)
	}
	return reflect.New(t).Interface(), nil
}

// RegisterTypeFor registers T's concrete type and returns its identifier.
func RegisterTypeFor[T any](m *Materializer) string {
	var zero T
	return m.RegisterType(&zero)
}

// InstantiateAs materializes the named type as a *T. Fails when the name is
// unregistered or registered to a different type.
func InstantiateAs[T any](m *Materializer, typeName string) (*T, error) {
	v, err := m.Instantiate(typeName)
	if err != nil {
		return nil, err
	}
	p, ok := v.(*T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("materializer: type %q is not %s",
			typeName, reflect.TypeOf(&zero).Elem())
	}
	return p, nil
}
