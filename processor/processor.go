/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/suparena/analogue/mapping"
)

// Manifest describes the entity and value maps a package registers at
// init time.
type Manifest struct {
	Package  string        `yaml:"package"`
	Entities []EntityEntry `yaml:"entities"`
	Values   []ValueEntry  `yaml:"values"`
}

// EntityEntry declares one entity map. Only Type is required; everything
// else falls back to the library conventions.
type EntityEntry struct {
	Type        string            `yaml:"type"`
	Table       string            `yaml:"table"`
	Key         string            `yaml:"key"`
	Connection  string            `yaml:"connection"`
	SoftDeletes bool              `yaml:"soft_deletes"`
	Criteria    map[string]string `yaml:"criteria"`
}

// ValueEntry declares one value-object map.
type ValueEntry struct {
	Type    string   `yaml:"type"`
	Columns []string `yaml:"columns"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates manifest bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for entries the generator cannot render.
func (m *Manifest) Validate() error {
	if len(m.Entities) == 0 && len(m.Values) == 0 {
		return fmt.Errorf("manifest declares no entities and no values")
	}
	seen := make(map[string]bool)
	for i, e := range m.Entities {
		if e.Type == "" {
			return fmt.Errorf("entity %d has no type", i)
		}
		if seen[e.Type] {
			return fmt.Errorf("entity type %q declared twice", e.Type)
		}
		seen[e.Type] = true
	}
	for i, v := range m.Values {
		if v.Type == "" {
			return fmt.Errorf("value %d has no type", i)
		}
		if len(v.Columns) == 0 {
			return fmt.Errorf("value type %q has no columns", v.Type)
		}
		if seen[v.Type] {
			return fmt.Errorf("value type %q declared twice", v.Type)
		}
		seen[v.Type] = true
	}
	return nil
}

type entityData struct {
	FactoryName string
	Literal     string
}

type valueData struct {
	FactoryName string
	Literal     string
}

type fileData struct {
	Package  string
	Entities []entityData
	Values   []valueData
}

var registrationTemplate = template.Must(
	template.New("registration").
		Parse(`// Code generated by mapgen. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/suparena/analogue/mapping"
	"github.com/suparena/analogue/registry"
)

func init() {
{{range .Entities}}	registry.RegisterMapFactory("{{.FactoryName}}", func() mapping.Mapping {
		return {{.Literal}}
	})
{{end}}{{range .Values}}	registry.RegisterValueMapFactory("{{.FactoryName}}", func() mapping.ValueMapping {
		return {{.Literal}}
	})
{{end}}}
`))

// Generate renders the registration file for a manifest. The pkg argument
// overrides the manifest's package name when non-empty.
func Generate(m *Manifest, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = m.Package
	}
	if pkg == "" {
		return nil, fmt.Errorf("no package name in manifest or flags")
	}

	data := fileData{Package: pkg}
	for _, e := range m.Entities {
		data.Entities = append(data.Entities, entityData{
			FactoryName: mapping.ConventionalMapName(e.Type),
			Literal:     entityLiteral(e),
		})
	}
	for _, v := range m.Values {
		data.Values = append(data.Values, valueData{
			FactoryName: mapping.ConventionalMapName(v.Type),
			Literal:     valueLiteral(v),
		})
	}

	var buf bytes.Buffer
	if err := registrationTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return formatted, nil
}

// GenerateFile loads a manifest and writes the registration file.
func GenerateFile(in, out, pkg string) error {
	m, err := LoadManifest(in)
	if err != nil {
		return err
	}
	code, err := Generate(m, pkg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}

func entityLiteral(e EntityEntry) string {
	var parts []string
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("Table: %q", e.Table))
	}
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("Key: %q", e.Key))
	}
	if e.Connection != "" {
		parts = append(parts, fmt.Sprintf("ConnectionName: %q", e.Connection))
	}
	if e.SoftDeletes {
		parts = append(parts, "SoftDelete: true")
	}
	if len(e.Criteria) > 0 {
		keys := make([]string, 0, len(e.Criteria))
		for k := range e.Criteria {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		crit := make([]string, 0, len(keys))
		for _, k := range keys {
			crit = append(crit, fmt.Sprintf("%q: %q", k, e.Criteria[k]))
		}
		parts = append(parts, fmt.Sprintf("Criteria: map[string]any{%s}", strings.Join(crit, ", ")))
	}
	return fmt.Sprintf("&mapping.EntityMap{%s}", strings.Join(parts, ", "))
}

func valueLiteral(v ValueEntry) string {
	cols := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		cols = append(cols, fmt.Sprintf("%q", c))
	}
	return fmt.Sprintf("&mapping.ValueMap{Columns: []string{%s}}", strings.Join(cols, ", "))
}

// Command-line flags, registered at package scope so they exist before
// any main package parses the command line.
var (
	inFlag  = flag.String("in", "analogue.yaml", "path to the map manifest")
	outFlag = flag.String("out", "maps_gen.go", "path of the generated file")
	pkgFlag = flag.String("package", "", "package name override for the generated file")
)

// Main is the entry point used by cmd/mapgen.
func Main() {
	flag.Parse()

	if err := GenerateFile(*inFlag, *outFlag, *pkgFlag); err != nil {
		fmt.Fprintf(os.Stderr, "mapgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s from %s\n", *outFlag, *inFlag)
}
