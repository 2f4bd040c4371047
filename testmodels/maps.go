/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package testmodels

import (
	"github.com/suparena/analogue/mapping"
	"github.com/suparena/analogue/registry"
)

// CustomerMap maps Customer rows to the customers table.
type CustomerMap struct {
	mapping.EntityMap
}

// OrderMap maps Order rows to the orders table with soft deletes.
type OrderMap struct {
	mapping.EntityMap
}

// MoneyMap maps the Money value object.
type MoneyMap struct {
	mapping.ValueMap
}

func init() {
	registry.RegisterEntityMap[Customer](func() mapping.Mapping {
		return &CustomerMap{EntityMap: mapping.EntityMap{Table: "customers"}}
	})
	registry.RegisterEntityMap[Order](func() mapping.Mapping {
		return &OrderMap{EntityMap: mapping.EntityMap{Table: "orders", SoftDelete: true}}
	})
	registry.RegisterValueObjectMap[Money](func() mapping.ValueMapping {
		return &MoneyMap{ValueMap: mapping.ValueMap{Columns: []string{"amount", "currency"}}}
	})
}
