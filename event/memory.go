/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package event

import (
	"context"
	"strings"
	"sync"
)

// subject is a channel decomposed into typed parts: the event name plus
// either one entity type or the wildcard.
type subject struct {
	name     Name
	entity   string
	wildcard bool
}

// parseChannel splits "analogue.{event}.{entityType-or-*}" into a subject.
// Entity types may themselves contain dots, so only the first two segments
// are structural.
func parseChannel(channel string) (subject, bool) {
	rest, ok := strings.CutPrefix(channel, Prefix+".")
	if !ok {
		return subject{}, false
	}
	name, entity, ok := strings.Cut(rest, ".")
	if !ok || name == "" || entity == "" {
		return subject{}, false
	}
	return subject{
		name:     Name(name),
		entity:   entity,
		wildcard: entity == "*",
	}, true
}

// matches reports whether a fired subject reaches this subscription.
func (s subject) matches(fired subject) bool {
	if s.name != fired.name {
		return false
	}
	return s.wildcard || s.entity == fired.entity
}

type subscription struct {
	subj subject
	h    Handler
}

// MemoryDispatcher delivers events synchronously and in subscription order.
// The first handler error stops delivery and surfaces to the operation that
// fired the event, which is what lets listeners veto a pending store or
// delete. Channels are decomposed once at subscription time; firing never
// parses strings against each subscription.
type MemoryDispatcher struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewMemoryDispatcher creates an empty dispatcher.
func NewMemoryDispatcher() *MemoryDispatcher {
	return &MemoryDispatcher{}
}

// Listen registers a handler on a channel. Channels that do not follow the
// "analogue.{event}.{entityType}" shape never match anything.
func (d *MemoryDispatcher) Listen(channel string, h Handler) {
	subj, ok := parseChannel(channel)
	if !ok {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, subscription{subj: subj, h: h})
}

// Fire delivers the event to every matching subscription, stopping at the
// first handler error.
func (d *MemoryDispatcher) Fire(ctx context.Context, channel string, e Event) error {
	fired, ok := parseChannel(channel)
	if !ok {
		return nil
	}

	d.mu.RLock()
	subs := make([]subscription, len(d.subs))
	copy(subs, d.subs)
	d.mu.RUnlock()

	for _, sub := range subs {
		if !sub.subj.matches(fired) {
			continue
		}
		if err := sub.h(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of registered subscriptions.
func (d *MemoryDispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}
