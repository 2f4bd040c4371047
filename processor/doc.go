/*
Package processor provides code generation functionality for Analogue.

The processor reads a YAML manifest describing entity and value-object
maps and generates Go code that registers the conventional map factories
at init time.

Manifest:

	package: shop
	entities:
	  - type: shop.Customer
	    table: customers
	  - type: shop.Order
	    soft_deletes: true
	    connection: reporting
	    criteria:
	      status: open
	values:
	  - type: shop.Money
	    columns: [amount, currency]

Generated Code:
The processor generates registration code:

	func init() {
	    registry.RegisterMapFactory("shop.CustomerMap", func() mapping.Mapping {
	        return &mapping.EntityMap{Table: "customers"}
	    })

	    registry.RegisterValueMapFactory("shop.MoneyMap", func() mapping.ValueMapping {
	        return &mapping.ValueMap{Columns: []string{"amount", "currency"}}
	    })
	}

This automation reduces boilerplate and ensures consistency between the
map manifest and the registrations the resolver discovers by convention.
*/
package processor
