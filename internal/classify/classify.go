// Package classify assigns a taxonomy label to template definitions and
// persisted records. Classification is a pure keyword heuristic: rule groups
// are tried in a fixed order (source, action, page) and the first match wins.
// Unmatched input falls through two narrow defaults and finally to page.
package classify

import (
	"strings"
	"unicode"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Fallback is returned when no rule or default matched.
const Fallback = types.TaxonomyPage

// input is the normalized view of a Classifiable.
type input struct {
	category string
	kind     string
	label    string

	categoryTokens map[string]bool
	kindTokens     map[string]bool
	labelTokens    map[string]bool
}

func newInput(s types.Signals) input {
	in := input{
		category: normalize(s.Category),
		kind:     normalize(s.Type),
		label:    normalize(s.Label),
	}
	in.categoryTokens = tokenSet(in.category)
	in.kindTokens = tokenSet(in.kind)
	in.labelTokens = tokenSet(in.label)
	return in
}

// Classify returns the taxonomy of c. It never fails: nil or sparse input
// yields Fallback.
func Classify(c types.Classifiable) types.Taxonomy {
	if c == nil {
		return Fallback
	}
	return ClassifySignals(c.Signals())
}

// ClassifySignals classifies raw signals.
func ClassifySignals(s types.Signals) types.Taxonomy {
	in := newInput(s)
	for _, g := range ruleGroups {
		if g.match(in) {
			return g.taxonomy
		}
	}
	for _, d := range defaults {
		if d.match(in) {
			return d.taxonomy
		}
	}
	return Fallback
}

// Partition classifies every definition and groups them by taxonomy,
// preserving catalog order within each group.
func Partition(defs []types.TemplateDefinition) map[types.Taxonomy][]types.TemplateDefinition {
	out := make(map[types.Taxonomy][]types.TemplateDefinition, len(types.Taxonomies))
	for _, d := range defs {
		t := Classify(d)
		out[t] = append(out[t], d)
	}
	return out
}

// Filter returns the definitions that classify as t.
func Filter(defs []types.TemplateDefinition, t types.Taxonomy) []types.TemplateDefinition {
	var out []types.TemplateDefinition
	for _, d := range defs {
		if Classify(d) == t {
			out = append(out, d)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tokenSet splits s on anything that is not a letter or digit.
func tokenSet(s string) map[string]bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
