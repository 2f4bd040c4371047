/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrDuplicateRegistration is returned when an entity type is registered twice
	ErrDuplicateRegistration = errors.New("entity type already registered")

	// ErrMissingMapping is returned when a value type has no resolvable value map
	ErrMissingMapping = errors.New("no value map for type")

	// ErrUnknownEvent is returned when subscribing to an event outside the lifecycle vocabulary
	ErrUnknownEvent = errors.New("unknown lifecycle event")

	// ErrUnresolvableType is returned when a type cannot be located for materialization
	ErrUnresolvableType = errors.New("type cannot be resolved")

	// ErrUnknownConnection is returned when a named connection is not configured
	ErrUnknownConnection = errors.New("connection not configured")

	// ErrMissingKey is returned when an entity carries no usable primary key value
	ErrMissingKey = errors.New("entity has no primary key value")
)

// DuplicateRegistrationError represents a second registration of the same entity type
type DuplicateRegistrationError struct {
	EntityType string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("entity type %q is already registered", e.EntityType)
}

func (e *DuplicateRegistrationError) Is(target error) bool {
	return target == ErrDuplicateRegistration
}

// MissingMappingError represents a value type whose explicit or conventional
// value map does not exist
type MissingMappingError struct {
	ValueType string
	MapName   string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("no value map %q registered for value type %q", e.MapName, e.ValueType)
}

func (e *MissingMappingError) Is(target error) bool {
	return target == ErrMissingMapping
}

// UnknownEventError represents a subscription attempt outside the fixed
// lifecycle event vocabulary
type UnknownEventError struct {
	Event string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("event %q is not a lifecycle event", e.Event)
}

func (e *UnknownEventError) Is(target error) bool {
	return target == ErrUnknownEvent
}

// UnresolvableTypeError represents a type name the materializer cannot locate
type UnresolvableTypeError struct {
	TypeName string
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("type %q cannot be resolved", e.TypeName)
}

func (e *UnresolvableTypeError) Is(target error) bool {
	return target == ErrUnresolvableType
}

// UnknownConnectionError represents a request for a named connection that is
// absent from the provider configuration
type UnknownConnectionError struct {
	Name string
}

func (e *UnknownConnectionError) Error() string {
	return fmt.Sprintf("connection %q is not configured", e.Name)
}

func (e *UnknownConnectionError) Is(target error) bool {
	return target == ErrUnknownConnection
}

// MissingKeyError represents an entity whose key attribute is unset where a
// concrete key is required (update, delete)
type MissingKeyError struct {
	EntityType string
	Key        string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("entity %q has no value for key %q", e.EntityType, e.Key)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Helper functions for creating errors

// NewDuplicateRegistrationError creates a new DuplicateRegistrationError
func NewDuplicateRegistrationError(entityType string) error {
	return &DuplicateRegistrationError{EntityType: entityType}
}

// NewMissingMappingError creates a new MissingMappingError
func NewMissingMappingError(valueType, mapName string) error {
	return &MissingMappingError{ValueType: valueType, MapName: mapName}
}

// NewUnknownEventError creates a new UnknownEventError
func NewUnknownEventError(event string) error {
	return &UnknownEventError{Event: event}
}

// NewUnresolvableTypeError creates a new UnresolvableTypeError
func NewUnresolvableTypeError(typeName string) error {
	return &UnresolvableTypeError{TypeName: typeName}
}

// NewUnknownConnectionError creates a new UnknownConnectionError
func NewUnknownConnectionError(name string) error {
	return &UnknownConnectionError{Name: name}
}

// NewMissingKeyError creates a new MissingKeyError
func NewMissingKeyError(entityType, key string) error {
	return &MissingKeyError{EntityType: entityType, Key: key}
}

// IsDuplicateRegistration checks if an error is a duplicate registration error
func IsDuplicateRegistration(err error) bool {
	return errors.Is(err, ErrDuplicateRegistration)
}

// IsMissingMapping checks if an error is a missing mapping error
func IsMissingMapping(err error) bool {
	return errors.Is(err, ErrMissingMapping)
}

// IsUnknownEvent checks if an error is an unknown event error
func IsUnknownEvent(err error) bool {
	return errors.Is(err, ErrUnknownEvent)
}

// IsUnresolvableType checks if an error is an unresolvable type error
func IsUnresolvableType(err error) bool {
	return errors.Is(err, ErrUnresolvableType)
}

// IsUnknownConnection checks if an error is an unknown connection error
func IsUnknownConnection(err error) bool {
	return errors.Is(err, ErrUnknownConnection)
}

// IsMissingKey checks if an error is a missing key error
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingKey)
}
