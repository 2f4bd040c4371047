/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package event

import (
	"github.com/suparena/analogue/errors"
)

// Gateway validates lifecycle subscriptions before they reach the
// dispatcher. Only names in the closed vocabulary pass; everything else
// fails without touching the dispatcher at all.
type Gateway struct {
	dispatcher Dispatcher
}

// NewGateway wraps a dispatcher.
func NewGateway(d Dispatcher) *Gateway {
	return &Gateway{dispatcher: d}
}

// Subscribe registers a handler for one lifecycle event across every entity
// type, on the wildcard channel "analogue.{name}.*". Names outside the
// vocabulary fail with an UnknownEventError. There is no unsubscription.
func (g *Gateway) Subscribe(name Name, h Handler) error {
	if !name.Valid() {
		return errors.NewUnknownEventError(string(name))
	}
	g.dispatcher.Listen(GlobalChannel(name), h)
	return nil
}

// SubscribeEntity registers a handler for one lifecycle event on a single
// entity type. The same vocabulary check applies.
func (g *Gateway) SubscribeEntity(name Name, entityType string, h Handler) error {
	if !name.Valid() {
		return errors.NewUnknownEventError(string(name))
	}
	g.dispatcher.Listen(EntityChannel(name, entityType), h)
	return nil
}
