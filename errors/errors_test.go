/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDuplicateRegistrationError(t *testing.T) {
	err := NewDuplicateRegistrationError("shop.Customer")

	// Test error message
	expected := `entity type "shop.Customer" is already registered`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Error("DuplicateRegistrationError should match ErrDuplicateRegistration")
	}

	// Test helper function
	if !IsDuplicateRegistration(err) {
		t.Error("IsDuplicateRegistration should return true for DuplicateRegistrationError")
	}
}

func TestMissingMappingError(t *testing.T) {
	err := NewMissingMappingError("shop.Money", "shop.MoneyMap")

	// Test error message
	expected := `no value map "shop.MoneyMap" registered for value type "shop.Money"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrMissingMapping) {
		t.Error("MissingMappingError should match ErrMissingMapping")
	}

	// Test helper function
	if !IsMissingMapping(err) {
		t.Error("IsMissingMapping should return true for MissingMappingError")
	}
}

func TestUnknownEventError(t *testing.T) {
	err := NewUnknownEventError("bogus")

	expected := `event "bogus" is not a lifecycle event`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrUnknownEvent) {
		t.Error("UnknownEventError should match ErrUnknownEvent")
	}

	if !IsUnknownEvent(err) {
		t.Error("IsUnknownEvent should return true for UnknownEventError")
	}
}

func TestUnresolvableTypeError(t *testing.T) {
	err := NewUnresolvableTypeError("shop.Ghost")

	expected := `type "shop.Ghost" cannot be resolved`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrUnresolvableType) {
		t.Error("UnresolvableTypeError should match ErrUnresolvableType")
	}

	if !IsUnresolvableType(err) {
		t.Error("IsUnresolvableType should return true for UnresolvableTypeError")
	}
}

func TestUnknownConnectionError(t *testing.T) {
	err := NewUnknownConnectionError("reporting")

	expected := `connection "reporting" is not configured`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrUnknownConnection) {
		t.Error("UnknownConnectionError should match ErrUnknownConnection")
	}

	if !IsUnknownConnection(err) {
		t.Error("IsUnknownConnection should return true for UnknownConnectionError")
	}
}

func TestMissingKeyError(t *testing.T) {
	tests := []struct {
		name       string
		entityType string
		key        string
		expected   string
	}{
		{
			name:       "default key",
			entityType: "shop.Order",
			key:        "id",
			expected:   `entity "shop.Order" has no value for key "id"`,
		},
		{
			name:       "custom key",
			entityType: "shop.Product",
			key:        "sku",
			expected:   `entity "shop.Product" has no value for key "sku"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMissingKeyError(tt.entityType, tt.key)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrMissingKey) {
				t.Error("MissingKeyError should match ErrMissingKey")
			}

			if !IsMissingKey(err) {
				t.Error("IsMissingKey should return true for MissingKeyError")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewDuplicateRegistrationError("shop.Customer")
	wrapped := fmt.Errorf("registration failed: %w", original)

	if !errors.Is(wrapped, ErrDuplicateRegistration) {
		t.Error("Wrapped DuplicateRegistrationError should still match ErrDuplicateRegistration")
	}

	if !IsDuplicateRegistration(wrapped) {
		t.Error("IsDuplicateRegistration should work with wrapped errors")
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrDuplicateRegistration,
		ErrMissingMapping,
		ErrUnknownEvent,
		ErrUnresolvableType,
		ErrUnknownConnection,
		ErrMissingKey,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
