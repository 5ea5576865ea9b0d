// Package catalog provides the authoritative in-code template catalog that
// sync replicates into the record store.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Provider supplies template definitions synchronously, without I/O.
type Provider interface {
	Definitions() []types.TemplateDefinition
}

// Static is a fixed list of definitions.
type Static []types.TemplateDefinition

// Definitions returns a copy of the list so callers cannot mutate it.
func (s Static) Definitions() []types.TemplateDefinition {
	out := make([]types.TemplateDefinition, len(s))
	copy(out, s)
	return out
}

// Default returns the built-in catalog.
func Default() Static {
	return Static(builtIn)
}

// Merge concatenates providers in order.
func Merge(providers ...Provider) Static {
	var out Static
	for _, p := range providers {
		if p == nil {
			continue
		}
		out = append(out, p.Definitions()...)
	}
	return out
}

// fileFormat is the top-level shape of a catalog extension file.
type fileFormat struct {
	Templates []types.TemplateDefinition `yaml:"templates"`
}

// LoadFile reads additional definitions from a YAML file of the form
//
//	templates:
//	  - label: Snapchat Ads
//	    category: traffic-sources-paid
//
// Definitions without a label are rejected.
func LoadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	for i, d := range f.Templates {
		if d.Label == "" {
			return nil, &types.ValidationError{
				Field: fmt.Sprintf("templates[%d].label", i),
				Err:   types.ErrInvalidName,
			}
		}
	}
	return Static(f.Templates), nil
}
