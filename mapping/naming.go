/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"
	"strings"
	"unicode"
)

// Namer lets an entity declare its own type identifier instead of relying on
// reflection. Useful when wire names must stay stable across refactors.
type Namer interface {
	EntityName() string
}

// TypeName normalizes an entity reference to its type identifier. Accepts a
// type name string ("shop.Customer"), a Namer, or any value or pointer; the
// pointer is dereferenced so &Customer{} and Customer{} name the same type.
// Returns "" for nil.
func TypeName(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Namer:
		return x.EntityName()
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}

// TypeNameFor returns the type identifier for T without needing a value.
func TypeNameFor[T any]() string {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}

// ConventionalMapName returns the map type name convention for an entity
// type: "shop.Customer" resolves against "shop.CustomerMap".
func ConventionalMapName(entityType string) string {
	return entityType + "Map"
}

// BareName strips the package qualifier from a type identifier:
// "shop.Customer" becomes "Customer".
func BareName(typeName string) string {
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}

// TableFor derives a table name from an entity type identifier: the bare
// name is snake-cased and pluralized, so "shop.OrderLine" becomes
// "order_lines".
func TableFor(entityType string) string {
	bare := BareName(entityType)
	if bare == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range bare {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	name := b.String()
	if strings.HasSuffix(name, "s") {
		return name
	}
	return name + "s"
}
