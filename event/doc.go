/*
Package event defines the lifecycle event vocabulary and dispatchers.

Ten events cover the lifecycle of a persisted entity:

	initializing, initialized   around mapper construction
	store, stored               around every persistence of an entity
	creating, created           around first-time inserts
	updating, updated           around rewrites of existing rows
	deleting, deleted           around removals

The vocabulary is closed. Subscriptions for any other name fail with an
UnknownEventError before reaching the dispatcher.

Events travel on channels of the form "analogue.{event}.{entityType}", with
"analogue.{event}.*" matching the event across every entity type. Channels
are built with EntityChannel and GlobalChannel and decomposed once at
subscription time; no code parses channel strings per fire.

The MemoryDispatcher delivers synchronously in subscription order and stops
at the first handler error, so an in-process listener on "store" or
"deleting" can veto the operation by returning an error. The NATSDispatcher
mirrors the same channels onto NATS subjects for cross-process observation;
remote handlers run asynchronously and cannot veto.
*/
package event
