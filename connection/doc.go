/*
Package connection provides the row-level persistence contract mappers use.

A Connection moves plain column/value maps in and out of one backing store.
Four drivers ship in-tree:

  - memory: map-backed, mutex-guarded; the default for tests and
    zero-configuration use
  - sqlite: database/sql over modernc.org/sqlite (pure Go, WAL enabled)
  - postgres: database/sql over lib/pq, with placeholder rebinding
  - dynamodb: AWS SDK v2, one DynamoDB table per entity table

Providers hand out connection handles by name. ConfigProvider reads a YAML
config and opens each connection lazily, caching the handle:

	default: main
	connections:
	  main:
	    driver: sqlite
	    path: ./data/app.db
	  reporting:
	    driver: postgres
	    host: $REPORTING_HOST
	    user: $REPORTING_USER
	    password: $REPORTING_PASSWORD
	    database: reporting

Environment references expand before parsing. StaticProvider serves
pre-built connections for programs that wire handles themselves.

Handles are safe to hold for the process lifetime; pooling and transaction
semantics belong to the driver underneath.
*/
package connection
