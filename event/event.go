/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Name identifies one lifecycle event. The vocabulary is closed: these ten
// names are the only events the system fires or accepts subscriptions for.
type Name string

const (
	Initializing Name = "initializing"
	Initialized  Name = "initialized"
	Store        Name = "store"
	Stored       Name = "stored"
	Creating     Name = "creating"
	Created      Name = "created"
	Updating     Name = "updating"
	Updated      Name = "updated"
	Deleting     Name = "deleting"
	Deleted      Name = "deleted"
)

var vocabulary = map[Name]struct{}{
	Initializing: {},
	Initialized:  {},
	Store:        {},
	Stored:       {},
	Creating:     {},
	Created:      {},
	Updating:     {},
	Updated:      {},
	Deleting:     {},
	Deleted:      {},
}

// Valid reports whether n belongs to the lifecycle vocabulary.
func (n Name) Valid() bool {
	_, ok := vocabulary[n]
	return ok
}

func (n Name) String() string { return string(n) }

// Names returns the lifecycle vocabulary in firing order.
func Names() []Name {
	return []Name{
		Initializing, Initialized,
		Store, Stored,
		Creating, Created,
		Updating, Updated,
		Deleting, Deleted,
	}
}

// Prefix is the leading segment of every lifecycle channel.
const Prefix = "analogue"

// EntityChannel builds the channel one entity type's lifecycle events fire
// on: "analogue.{name}.{entityType}".
func EntityChannel(n Name, entityType string) string {
	return Prefix + "." + string(n) + "." + entityType
}

// GlobalChannel builds the wildcard channel matching the event across every
// entity type: "analogue.{name}.*".
func GlobalChannel(n Name) string {
	return Prefix + "." + string(n) + ".*"
}

// Event is the payload delivered to lifecycle handlers.
type Event struct {
	ID      string    `json:"id"`
	Name    Name      `json:"name"`
	Entity  string    `json:"entity"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// New builds an Event with a fresh ID and timestamp.
func New(n Name, entityType string, payload any) Event {
	return Event{
		ID:      uuid.New().String(),
		Name:    n,
		Entity:  entityType,
		Payload: payload,
		At:      time.Now(),
	}
}

// Handler processes one event. When a handler runs synchronously with the
// operation that fired it, returning an error aborts that operation.
type Handler func(ctx context.Context, e Event) error

// Dispatcher routes fired events to listeners. Listen takes a channel built
// by EntityChannel or GlobalChannel; there is no unsubscription.
type Dispatcher interface {
	Listen(channel string, h Handler)
	Fire(ctx context.Context, channel string, e Event) error
}
