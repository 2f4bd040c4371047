/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

// Mapping describes how one entity type is persisted: which connection and
// table hold it, which column is its primary key, and which criteria scope
// every query against it. Implementations embed EntityMap; the unexported
// bind method keeps outside packages from implementing the interface and
// reserves binding for the resolver.
type Mapping interface {
	// EntityType returns the type identifier the map was bound to,
	// e.g. "shop.Customer". Empty until the resolver binds the map.
	EntityType() string

	// Connection returns the named connection this entity persists on.
	// Empty means the provider's default connection.
	Connection() string

	// TableName returns the table (or collection) holding the entity.
	TableName() string

	// KeyName returns the primary key column. Defaults to "id".
	KeyName() string

	// DefaultCriteria returns column/value pairs applied to every scoped
	// query for the entity. May be nil.
	DefaultCriteria() map[string]any

	// SoftDeletes reports whether deletes mark rows instead of removing them.
	SoftDeletes() bool

	bind(entityType string)
}

// EntityMap is the embeddable base for entity maps. A user map is an empty
// struct embedding EntityMap, optionally overriding fields:
//
//	type CustomerMap struct {
//		mapping.EntityMap
//	}
//
//	func NewCustomerMap() *CustomerMap {
//		return &CustomerMap{EntityMap: mapping.EntityMap{
//			Table:      "customers",
//			Criteria:   map[string]any{"active": true},
//			SoftDelete: true,
//		}}
//	}
//
// The zero value is usable: table defaults to the lower-cased bare type name
// and key to "id" once the map is bound.
type EntityMap struct {
	// Table is the table name. Empty derives it from the bound entity type.
	Table string

	// Key is the primary key column. Empty means "id".
	Key string

	// ConnectionName routes the entity to a named connection. Empty means
	// the default connection.
	ConnectionName string

	// Criteria holds default query criteria applied to scoped queries.
	Criteria map[string]any

	// SoftDelete marks rows deleted instead of removing them.
	SoftDelete bool

	entityType string
}

// EntityType returns the bound entity type identifier.
func (m *EntityMap) EntityType() string { return m.entityType }

// Connection returns the named connection, or "" for the default.
func (m *EntityMap) Connection() string { return m.ConnectionName }

// TableName returns the configured table, or a table name derived from the
// bound entity type ("shop.Customer" becomes "customers").
func (m *EntityMap) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return TableFor(m.entityType)
}

// KeyName returns the configured key column, or "id".
func (m *EntityMap) KeyName() string {
	if m.Key != "" {
		return m.Key
	}
	return "id"
}

// DefaultCriteria returns the default query criteria. May be nil.
func (m *EntityMap) DefaultCriteria() map[string]any { return m.Criteria }

// SoftDeletes reports whether the entity uses soft deletes.
func (m *EntityMap) SoftDeletes() bool { return m.SoftDelete }

// bind records the entity type the map serves. Binding is set-once: a bound
// map ignores later calls, so rebinding a cached map is a no-op.
func (m *EntityMap) bind(entityType string) {
	if m.entityType == "" {
		m.entityType = entityType
	}
}

// Bind binds a map to an entity type. Exposed as a free function so only
// this package's callers (the resolver, the registries) can bind.
func Bind(m Mapping, entityType string) {
	m.bind(entityType)
}

// ValueMapping describes a value object embedded in entities. Value objects
// have no table or connection of their own; the map carries the attribute
// names the value contributes to its owner's row.
type ValueMapping interface {
	// ValueType returns the bound value type identifier, e.g. "shop.Money".
	ValueType() string

	// Attributes returns the column names the value object occupies in the
	// owning entity's row. May be nil when the map declares none.
	Attributes() []string

	bindValue(valueType string)
}

// ValueMap is the embeddable base for value object maps:
//
//	type MoneyMap struct {
//		mapping.ValueMap
//	}
type ValueMap struct {
	// Columns lists the attribute names the value occupies in its owner.
	Columns []string

	valueType string
}

// ValueType returns the bound value type identifier.
func (m *ValueMap) ValueType() string { return m.valueType }

// Attributes returns the declared attribute names.
func (m *ValueMap) Attributes() []string { return m.Columns }

func (m *ValueMap) bindValue(valueType string) {
	if m.valueType == "" {
		m.valueType = valueType
	}
}

// BindValue binds a value map to a value type.
func BindValue(m ValueMapping, valueType string) {
	m.bindValue(valueType)
}
