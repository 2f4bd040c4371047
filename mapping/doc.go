/*
Package mapping defines entity and value-object maps for Analogue.

An entity map declares how one entity type persists: its table, primary key
column, connection name, default query criteria, and soft-delete behavior.
Maps are plain structs embedding EntityMap:

	type CustomerMap struct {
	    mapping.EntityMap
	}

	func NewCustomerMap() *CustomerMap {
	    return &CustomerMap{EntityMap: mapping.EntityMap{
	        Table:      "customers",
	        Criteria:   map[string]any{"active": true},
	        SoftDelete: true,
	    }}
	}

A zero-value map is valid: the table name derives from the entity type and
the key defaults to "id". Maps are bound to their entity type by the
resolver exactly once; binding is idempotent.

Value-object maps embed ValueMap and carry only the attribute names the
value occupies inside its owning entity's row; value objects never have a
table or connection of their own.

Type identifiers are package-qualified Go type names ("shop.Customer").
TypeName normalizes strings, Namer implementations, values, and pointers to
that form; ConventionalMapName appends "Map" to produce the conventional map
type name used for registration lookup.
*/
package mapping
