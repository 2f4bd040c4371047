/*
Package registry manages entity and value-object map resolution for Analogue.

The registry system enables:
  - Explicit registration of entity maps, one per entity type
  - Naming-convention lookup through factories registered at init time
  - Default zero-value maps for entity types nobody configured

Factory tables:
Map type names resolve to factories, registered in init() functions or
through code generated by the processor package:

	func init() {
	    registry.RegisterMapFactory("shop.CustomerMap", func() mapping.Mapping {
	        return shop.NewCustomerMap()
	    })
	}

Entity registry:
An EntityRegistry resolves an entity type to its bound map through three
tiers (explicit registration, the conventional "<EntityType>Map" factory,
then a synthesized default) and caches the bound instance for the process
lifetime. Registering the same entity type twice fails.

Value registry:
A ValueRegistry stores factories only. Every ValueMap call produces a fresh
bound instance, and a value type without an explicit or conventional factory
fails fast with a MissingMappingError.

All registries are thread-safe. The factory tables should be populated
during initialization, typically in init() functions or through generated
code.
*/
package registry
