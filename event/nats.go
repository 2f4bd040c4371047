/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSDispatcher publishes lifecycle events on NATS subjects, letting other
// processes observe the lifecycle. Delivery is asynchronous: remote handler
// errors are logged, never surfaced, so remote listeners cannot veto a
// store or delete the way in-process MemoryDispatcher listeners can.
type NATSDispatcher struct {
	mu   sync.Mutex
	conn *nats.Conn
	subs []*nats.Subscription
}

// NewNATSDispatcher connects to a NATS server. An empty URL uses the
// default local server.
func NewNATSDispatcher(url string, opts ...nats.Option) (*NATSDispatcher, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	base := []nats.Option{
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.Warn("NATS disconnected", "error", err, "will_reconnect", !nc.IsClosed())
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(url, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSDispatcher{conn: conn}, nil
}

// Listen subscribes a handler to a lifecycle channel. The channel's
// trailing ".*" becomes the NATS ".>" wildcard, since entity types contain
// dots and NATS's "*" matches exactly one token.
func (d *NATSDispatcher) Listen(channel string, h Handler) {
	subject := channel
	if strings.HasSuffix(subject, ".*") {
		subject = strings.TrimSuffix(subject, ".*") + ".>"
	}

	sub, err := d.conn.Subscribe(subject, func(m *nats.Msg) {
		var e Event
		if err := json.Unmarshal(m.Data, &e); err != nil {
			slog.Error("failed to unmarshal lifecycle event", "subject", m.Subject, "error", err)
			return
		}
		if err := h(context.Background(), e); err != nil {
			slog.Error("lifecycle handler error", "subject", m.Subject, "event_id", e.ID, "error", err)
		}
	})
	if err != nil {
		slog.Error("failed to subscribe", "subject", subject, "error", err)
		return
	}

	d.mu.Lock()
	d.subs = append(d.subs, sub)
	d.mu.Unlock()
}

// Fire publishes the event as JSON on the channel. Entities that do not
// marshal to JSON fail here.
func (d *NATSDispatcher) Fire(ctx context.Context, channel string, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle event: %w", err)
	}
	return d.conn.Publish(channel, data)
}

// Ping verifies the NATS connection.
func (d *NATSDispatcher) Ping(ctx context.Context) error {
	if !d.conn.IsConnected() {
		return fmt.Errorf("NATS not connected")
	}
	return d.conn.FlushWithContext(ctx)
}

// Close drains subscriptions and closes the connection.
func (d *NATSDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, sub := range d.subs {
		_ = sub.Unsubscribe()
	}
	d.subs = nil
	d.conn.Close()
	return nil
}
