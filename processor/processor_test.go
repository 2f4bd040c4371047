/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `
package: shop
entities:
  - type: shop.Customer
    table: customers
    key: id
  - type: shop.Order
    soft_deletes: true
    connection: reporting
    criteria:
      status: open
values:
  - type: shop.Money
    columns: [amount, currency]
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}

	if m.Package != "shop" {
		t.Fatalf("Expected package shop, got %q", m.Package)
	}
	if len(m.Entities) != 2 {
		t.Fatalf("Expected 2 entities, got %d", len(m.Entities))
	}
	customer := m.Entities[0]
	if customer.Type != "shop.Customer" || customer.Table != "customers" || customer.Key != "id" {
		t.Fatalf("Unexpected customer entry: %+v", customer)
	}
	order := m.Entities[1]
	if !order.SoftDeletes || order.Connection != "reporting" {
		t.Fatalf("Unexpected order entry: %+v", order)
	}
	if order.Criteria["status"] != "open" {
		t.Fatalf("Expected status criterion, got %v", order.Criteria)
	}
	if len(m.Values) != 1 || m.Values[0].Type != "shop.Money" {
		t.Fatalf("Unexpected values: %+v", m.Values)
	}
}

func TestManifestValidation(t *testing.T) {
	cases := []struct {
		name     string
		manifest string
	}{
		{"Empty", "package: shop"},
		{"EntityWithoutType", "entities:\n  - table: things"},
		{"DuplicateEntityType", "entities:\n  - type: a.B\n  - type: a.B"},
		{"ValueWithoutColumns", "values:\n  - type: a.Money"},
		{"ValueCollidesWithEntity", "entities:\n  - type: a.B\nvalues:\n  - type: a.B\n    columns: [x]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tc.manifest)); err == nil {
				t.Fatal("Expected validation to fail")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	m, err := ParseManifest([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("Failed to parse manifest: %v", err)
	}

	t.Run("RegistrationFile", func(t *testing.T) {
		code, err := Generate(m, "")
		if err != nil {
			t.Fatalf("Failed to generate: %v", err)
		}
		got := string(code)

		want := []string{
			"// Code generated by mapgen. DO NOT EDIT.",
			"package shop",
			`registry.RegisterMapFactory("shop.CustomerMap", func() mapping.Mapping {`,
			`&mapping.EntityMap{Table: "customers", Key: "id"}`,
			`&mapping.EntityMap{ConnectionName: "reporting", SoftDelete: true, Criteria: map[string]any{"status": "open"}}`,
			`registry.RegisterValueMapFactory("shop.MoneyMap", func() mapping.ValueMapping {`,
			`&mapping.ValueMap{Columns: []string{"amount", "currency"}}`,
		}
		for _, w := range want {
			if !strings.Contains(got, w) {
				t.Fatalf("Generated code is missing %q:\n%s", w, got)
			}
		}
	})

	t.Run("PackageOverride", func(t *testing.T) {
		code, err := Generate(m, "storemaps")
		if err != nil {
			t.Fatalf("Failed to generate: %v", err)
		}
		if !strings.Contains(string(code), "package storemaps") {
			t.Fatal("Expected the override package name")
		}
	})

	t.Run("MissingPackage", func(t *testing.T) {
		anonymous := *m
		anonymous.Package = ""
		if _, err := Generate(&anonymous, ""); err == nil {
			t.Fatal("Expected generation without a package name to fail")
		}
	})
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "analogue.yaml")
	out := filepath.Join(dir, "maps_gen.go")

	if err := os.WriteFile(in, []byte(sampleManifest), 0o644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	if err := GenerateFile(in, out, ""); err != nil {
		t.Fatalf("Failed to generate file: %v", err)
	}

	code, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read generated file: %v", err)
	}
	if !strings.Contains(string(code), "package shop") {
		t.Fatal("Expected the generated registration file")
	}

	if err := GenerateFile(filepath.Join(dir, "missing.yaml"), out, ""); err == nil {
		t.Fatal("Expected a missing manifest to fail")
	}
}
