/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package analogue

// Plugin hooks an external integration into a Manager. Register is called
// once by Manager.RegisterPlugin; implementations typically register
// entity maps, value objects, or event handlers on the Manager they are
// handed.
type Plugin interface {
	Register(m *Manager) error
}

// PluginFunc adapts a plain function to the Plugin interface.
type PluginFunc func(m *Manager) error

// Register calls f.
func (f PluginFunc) Register(m *Manager) error { return f(m) }
