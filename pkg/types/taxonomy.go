package types

import "strings"

// Taxonomy is the top-level kind every template belongs to.
type Taxonomy string

// Taxonomy labels.
const (
	TaxonomySource Taxonomy = "source"
	TaxonomyPage   Taxonomy = "page"
	TaxonomyAction Taxonomy = "action"
)

// Taxonomies lists every taxonomy in sync order.
var Taxonomies = []Taxonomy{
	TaxonomySource,
	TaxonomyPage,
	TaxonomyAction,
}

// Valid reports whether t is one of the known taxonomy labels.
func (t Taxonomy) Valid() bool {
	switch t {
	case TaxonomySource, TaxonomyPage, TaxonomyAction:
		return true
	}
	return false
}

func (t Taxonomy) String() string {
	return string(t)
}

// ParseTaxonomy converts s (case-insensitive, surrounding space ignored) to a
// Taxonomy. Returns a ValidationError wrapping ErrInvalidTaxonomy otherwise.
func ParseTaxonomy(s string) (Taxonomy, error) {
	t := Taxonomy(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: "taxonomy", Value: s, Err: ErrInvalidTaxonomy}
	}
	return t, nil
}
