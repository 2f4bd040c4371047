/*
Package hydrate materializes and populates entities from persisted rows.

The Materializer holds a table of registered concrete types and produces
zero-initialized instances by name:

	m := hydrate.NewMaterializer()
	m.RegisterType(Customer{})

	v, err := m.Instantiate("shop.Customer")
	// v is a *Customer with every field at its zero value

No factory or setup code runs during Instantiate. Hydration copies
persisted column values straight into fields, so reconstruction never
needs constructor arguments or side effects. A materialized instance
therefore holds none of the invariants ordinary construction establishes,
and Instantiate must never be used as a general-purpose factory. The
mechanism lives on a Materializer instance owned by the hydration path,
which keeps it out of reach of ordinary code.

Dehydrate and Hydrate convert between entity structs and row maps. Column
names come from the `db` struct tag, falling back to the lower-cased field
name; fields tagged `db:"-"` and unexported fields are skipped, and
anonymous embedded structs flatten into the owning row. Hydrate tolerates
columns the struct lacks and rows the struct exceeds, which keeps old
readers compatible with new columns.

KeyValue and SetKeyValue read and write the single field backing an entity
map's key column, used for existence checks and generated identifiers.
*/
package hydrate
