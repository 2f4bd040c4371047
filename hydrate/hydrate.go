/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hydrate

import (
	"fmt"
	"reflect"
	"strings"
)

// columnFor returns the row column for a struct field: the db tag when
// present, otherwise the lower-cased field name. Unexported fields and
// fields tagged db:"-" map to "".
func columnFor(f reflect.StructField) string {
	if f.PkgPath != "" {
		return ""
	}
	tag := f.Tag.Get("db")
	if tag == "-" {
		return ""
	}
	if tag != "" {
		if i := strings.Index(tag, ","); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	return strings.ToLower(f.Name)
}

// Dehydrate flattens an entity struct into a row map keyed by column name.
// Anonymous embedded structs without a db tag are flattened into the owning
// row; everything else is stored as-is under its column.
func Dehydrate(entity any) (map[string]any, error) {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("hydrate: cannot dehydrate a nil entity")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("hydrate: expected a struct entity, got %s", v.Kind())
	}

	row := make(map[string]any)
	dehydrateInto(row, v)
	return row, nil
}

func dehydrateInto(row map[string]any, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("db") == "" {
			dehydrateInto(row, v.Field(i))
			continue
		}
		col := columnFor(f)
		if col == "" {
			continue
		}
		row[col] = v.Field(i).Interface()
	}
}

// Hydrate copies row values into the fields of target, which must be a
// non-nil struct pointer. Columns absent from the row leave their fields
// untouched; a present column whose value cannot be assigned or converted
// to its field is an error.
func Hydrate(target any, row map[string]any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("hydrate: target must be a non-nil pointer, got %T", target)
	}
	v = v.Elem()
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("hydrate: target must point to a struct, got %s", v.Kind())
	}
	return hydrateFrom(v, row)
}

func hydrateFrom(v reflect.Value, row map[string]any) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("db") == "" {
			if err := hydrateFrom(v.Field(i), row); err != nil {
				return err
			}
			continue
		}
		col := columnFor(f)
		if col == "" {
			continue
		}
		raw, ok := row[col]
		if !ok || raw == nil {
			continue
		}

		fv := v.Field(i)
		rv := reflect.ValueOf(raw)
		switch {
		case rv.Type().AssignableTo(fv.Type()):
			fv.Set(rv)
		case rv.Type().ConvertibleTo(fv.Type()):
			fv.Set(rv.Convert(fv.Type()))
		default:
			return fmt.Errorf("hydrate: column %q value of type %s is not assignable to field %s (%s)",
				col, rv.Type(), f.Name, fv.Type())
		}
	}
	return nil
}

// fieldFor locates the struct field mapped to the given column, descending
// into anonymous embedded structs.
func fieldFor(v reflect.Value, column string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Tag.Get("db") == "" {
			if fv, ok := fieldFor(v.Field(i), column); ok {
				return fv, true
			}
			continue
		}
		if columnFor(f) == column {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// KeyValue returns the entity's value for the given key column, reporting
// whether a field maps to that column at all.
func KeyValue(entity any, column string) (any, bool) {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	fv, ok := fieldFor(v, column)
	if !ok {
		return nil, false
	}
	return fv.Interface(), true
}

// SetKeyValue writes a value into the entity field mapped to the given key
// column. The entity must be a struct pointer with a field for the column.
func SetKeyValue(entity any, column string, value any) error {
	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("hydrate: entity must be a non-nil pointer, got %T", entity)
	}
	elem := rv.Elem()
	for elem.Kind() == reflect.Ptr {
		if elem.IsNil() {
			return fmt.Errorf("hydrate: entity must not be nil")
		}
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("hydrate: entity must point to a struct, got %s", elem.Kind())
	}

	fv, ok := fieldFor(elem, column)
	if !ok {
		return fmt.Errorf("hydrate: no field maps to column %q on %s", column, elem.Type())
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(fv.Type()):
		fv.Set(v)
	case v.Type().ConvertibleTo(fv.Type()):
		fv.Set(v.Convert(fv.Type()))
	default:
		return fmt.Errorf("hydrate: value of type %s is not assignable to column %q (%s)",
			v.Type(), column, fv.Type())
	}
	return nil
}
