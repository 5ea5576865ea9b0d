package types

import "time"

// Template statuses.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

var validStatuses = map[string]bool{
	StatusActive:   true,
	StatusDraft:    true,
	StatusArchived: true,
}

// IsValidStatus reports whether s is a recognized template status.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// Signals are the raw fields the classifier reads. Empty strings stand for
// missing values.
type Signals struct {
	Category string
	Type     string
	Label    string
}

// Signals returns s itself so that bare signals can be classified directly.
func (s Signals) Signals() Signals {
	return s
}

// Classifiable is anything that can expose classification signals.
type Classifiable interface {
	Signals() Signals
}

// TemplateDefinition is an entry of the in-code catalog. Definitions are
// read-only and never persisted directly; sync converts them to Templates.
type TemplateDefinition struct {
	Label                string         `json:"label" yaml:"label"`
	Category             string         `json:"category,omitempty" yaml:"category,omitempty"`
	Type                 string         `json:"type,omitempty" yaml:"type,omitempty"`
	Tags                 []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Icon                 string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color                string         `json:"color,omitempty" yaml:"color,omitempty"`
	Description          string         `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultConfiguration map[string]any `json:"default_configuration,omitempty" yaml:"default_configuration,omitempty"`
}

// Signals implements Classifiable.
func (d TemplateDefinition) Signals() Signals {
	return Signals{Category: d.Category, Type: d.Type, Label: d.Label}
}

// Template is a persisted template record.
type Template struct {
	TemplateID    string         `json:"template_id"`
	Taxonomy      Taxonomy       `json:"taxonomy"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Category      string         `json:"category"`    // Legacy free-text label.
	CategoryID    string         `json:"category_id"` // Normalized assignment; empty when uncategorized.
	OwnerID       *string        `json:"owner_id"`    // nil for system-owned records.
	Status        string         `json:"status"`
	Tags          []string       `json:"tags"`
	Icon          string         `json:"icon"`
	Color         string         `json:"color"`
	Configuration map[string]any `json:"configuration"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Signals implements Classifiable. Persisted records carry no type field.
func (t *Template) Signals() Signals {
	if t == nil {
		return Signals{}
	}
	return Signals{Category: t.Category, Label: t.Name}
}

// IsSystemOwned reports whether the record originated from the catalog.
func (t *Template) IsSystemOwned() bool {
	return t.OwnerID == nil
}

// Owner returns the owner ID or "" for system-owned records.
func (t *Template) Owner() string {
	if t.OwnerID == nil {
		return ""
	}
	return *t.OwnerID
}

// Validate checks the fields every persisted template needs.
func (t *Template) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Err: ErrInvalidName}
	}
	if !t.Taxonomy.Valid() {
		return &ValidationError{Field: "taxonomy", Value: string(t.Taxonomy), Err: ErrInvalidTaxonomy}
	}
	if t.Status != "" && !IsValidStatus(t.Status) {
		return &ValidationError{Field: "status", Value: t.Status, Err: ErrInvalidData}
	}
	if t.OwnerID != nil && *t.OwnerID == "" {
		return &ValidationError{Field: "owner_id", Err: ErrInvalidID}
	}
	return nil
}

// TemplatePatch lists the fields UpdateOne may change. Nil fields are left
// untouched.
type TemplatePatch struct {
	Name        *string
	Description *string
	Category    *string
	CategoryID  *string
	Status      *string
}

// Empty reports whether the patch changes nothing.
func (p TemplatePatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.CategoryID == nil && p.Status == nil
}

// StringPtr returns a pointer to s. Convenient for patches and owner IDs.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
