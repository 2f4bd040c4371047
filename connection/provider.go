/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package connection

import (
	"fmt"
	"sync"

	"github.com/suparena/analogue/errors"
)

// ConfigProvider opens connections from a Config lazily and caches each
// handle, so every caller asking for a name shares one handle for the
// process lifetime.
type ConfigProvider struct {
	cfg  Config
	mu   sync.RWMutex
	open map[string]Connection
}

// NewConfigProvider builds a provider over a validated config.
func NewConfigProvider(cfg Config) *ConfigProvider {
	return &ConfigProvider{cfg: cfg, open: make(map[string]Connection)}
}

// DefaultConnection returns the config's default connection.
func (p *ConfigProvider) DefaultConnection() (Connection, error) {
	return p.Connection(p.cfg.Default)
}

// Connection returns the named connection, opening it on first use. Names
// missing from the config fail with an UnknownConnectionError.
func (p *ConfigProvider) Connection(name string) (Connection, error) {
	p.mu.RLock()
	c, ok := p.open[name]
	p.mu.RUnlock()
	if ok {
		return c, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.open[name]; ok {
		return c, nil
	}
	s, ok := p.cfg.Connections[name]
	if !ok {
		return nil, errors.NewUnknownConnectionError(name)
	}
	c, err := openConnection(name, s)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection %q: %w", name, err)
	}
	p.open[name] = c
	return c, nil
}

// Close closes every connection the provider opened.
func (p *ConfigProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for name, c := range p.open {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close connection %q: %w", name, err)
		}
	}
	p.open = make(map[string]Connection)
	return firstErr
}

func openConnection(name string, s Settings) (Connection, error) {
	switch s.Driver {
	case "memory":
		return NewMemory(name), nil
	case "sqlite":
		return openSQLite(name, s)
	case "postgres":
		return openPostgres(name, s)
	case "dynamodb":
		return openDynamoDB(name, s)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", s.Driver)
	}
}

// StaticProvider serves pre-built connections. The zero value is unusable;
// construct with NewStaticProvider, then attach named connections with
// WithConnection.
type StaticProvider struct {
	mu          sync.RWMutex
	defaultName string
	conns       map[string]Connection
}

// NewStaticProvider builds a provider whose default is the given connection.
func NewStaticProvider(def Connection) *StaticProvider {
	return &StaticProvider{
		defaultName: def.Name(),
		conns:       map[string]Connection{def.Name(): def},
	}
}

// WithConnection attaches another named connection.
func (p *StaticProvider) WithConnection(c Connection) *StaticProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[c.Name()] = c
	return p
}

// DefaultConnection returns the connection the provider was built with.
func (p *StaticProvider) DefaultConnection() (Connection, error) {
	return p.Connection(p.defaultName)
}

// Connection returns the named connection or an UnknownConnectionError.
func (p *StaticProvider) Connection(name string) (Connection, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.conns[name]
	if !ok {
		return nil, errors.NewUnknownConnectionError(name)
	}
	return c, nil
}
