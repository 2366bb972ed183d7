// internal/form/definition.go
//
// Pizza – Forms subsystem: YAML definition loader.
//
// Context
//   The order form is declared in YAML: its identifier, title, the size
//   options, and the topping catalog.  The default definition is embedded in
//   the binary (order.yaml) and parsed once.  Operators may point
//   `form.definition` at a replacement file, which is loaded through
//   LoadDefinition and checked by the same structural rules.
//
// Workflow
//   •  Structs mirror the YAML schema: Definition → Choice.
//   •  ParseDefinition decodes raw YAML and validates structural rules.
//   •  LoadDefinition reads one file and hands it to ParseDefinition.
//   •  DefaultDefinition returns the embedded definition.
//
// Style
//   Full sentences, two spaces after periods, Oxford commas.
//
//------------------------------------------------------------------------------

package form

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed order.yaml
var embeddedDefinition []byte

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// Definition represents the order form loaded from YAML.
type Definition struct {
	ID       string   `yaml:"id"`       // Form identifier, e.g. “pizza/order”.
	Title    string   `yaml:"title"`    // Display heading.
	Sizes    []Choice `yaml:"sizes"`    // Size choices in display order.
	Toppings []Choice `yaml:"toppings"` // Topping catalog in display order.
}

// Choice is one selectable value with its human-readable label.
type Choice struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

var (
	defaultOnce sync.Once
	defaultDef  *Definition
)

// DefaultDefinition returns the embedded form definition.  The embedded file
// ships with the binary, so a parse failure is a build defect and panics.
func DefaultDefinition() *Definition {
	defaultOnce.Do(func() {
		fd, err := ParseDefinition(embeddedDefinition, "embedded order.yaml")
		if err != nil {
			panic(err)
		}
		defaultDef = fd
	})
	return defaultDef
}

// LoadDefinition parses one YAML file and validates its structure.
func LoadDefinition(path string) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}
	return ParseDefinition(raw, path)
}

// ParseDefinition decodes raw YAML.  src names the origin in error messages.
func ParseDefinition(raw []byte, src string) (*Definition, error) {
	var fd Definition
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", src, err)
	}
	if err := validateDefinition(&fd, src); err != nil {
		return nil, err
	}
	return &fd, nil
}

// Catalog builds the topping catalog declared by the definition.
func (fd *Definition) Catalog() *Catalog {
	ts := make([]Topping, 0, len(fd.Toppings))
	for _, o := range fd.Toppings {
		ts = append(ts, Topping{ID: o.Value, Label: o.Label})
	}
	return NewCatalog(ts)
}

// SizeLabel returns the label for s, or the raw value when s is not declared.
func (fd *Definition) SizeLabel(s Size) string {
	for _, o := range fd.Sizes {
		if o.Value == string(s) {
			return o.Label
		}
	}
	return string(s)
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

// validateDefinition enforces structural rules that cannot be expressed via
// YAML tags alone.
func validateDefinition(fd *Definition, src string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", src)
	}
	if len(fd.Sizes) == 0 {
		return fmt.Errorf("form definition %s: must declare 'sizes'", src)
	}

	seen := make(map[string]struct{})
	for _, o := range fd.Sizes {
		if !Size(o.Value).Valid() {
			return fmt.Errorf("form definition %s: size %q must be S, M, or L", src, o.Value)
		}
		if o.Label == "" {
			return fmt.Errorf("form definition %s: size %q missing 'label'", src, o.Value)
		}
		if _, dup := seen[o.Value]; dup {
			return fmt.Errorf("form definition %s: duplicate size %q", src, o.Value)
		}
		seen[o.Value] = struct{}{}
	}

	seen = make(map[string]struct{})
	for _, o := range fd.Toppings {
		if o.Value == "" {
			return fmt.Errorf("form definition %s: topping missing 'value'", src)
		}
		if o.Label == "" {
			return fmt.Errorf("form definition %s: topping %q missing 'label'", src, o.Value)
		}
		if _, dup := seen[o.Value]; dup {
			return fmt.Errorf("form definition %s: duplicate topping %q", src, o.Value)
		}
		seen[o.Value] = struct{}{}
	}
	return nil
}
