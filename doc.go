/*
Package analogue provides an entity-mapping and identity-resolution core for
Go applications: entities are plain structs, persistence metadata lives in
separate entity maps, and every entity type is served by exactly one cached
Mapper and one cached Repository.

The library follows a register → resolve → operate workflow:
  - Register: bind entity maps, value objects, and event handlers up front
  - Resolve: the Manager resolves maps explicitly, by convention, or by default
  - Operate: store, delete, find, and query through mappers or repositories

Key Features:
  - Singleton mapper and repository per entity type, safe under concurrency
  - Explicit → conventional → default entity-map resolution
  - Value-object maps that are rebuilt fresh on every lookup
  - Constructor-less materialization when hydrating rows into structs
  - Lifecycle events on "analogue.{event}.{EntityType}" channels with a
    fixed ten-name vocabulary and synchronous, veto-capable handlers
  - Memory, SQLite, PostgreSQL, and DynamoDB connections behind one interface
  - Soft deletes and default criteria scoped into queries

Basic Usage:

	// Create a manager over a connection provider
	provider := connection.NewStaticProvider(connection.NewMemory("main"))
	manager := analogue.New(provider, event.NewMemoryDispatcher())

	// Register an entity map
	_ = analogue.RegisterEntity[Customer](manager, &mapping.EntityMap{Table: "customers"})

	// Store and query
	err := manager.Store(ctx, &Customer{Name: "Ada"})
	repo, _ := analogue.RepositoryFor[Customer](manager)
	customers, _ := repo.Query().Where("plan", "pro").Get(ctx)

For more information, see the documentation at https://github.com/suparena/analogue
*/
package analogue
