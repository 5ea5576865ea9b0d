package types

// Filter is an equality conjunction: every key must match. Values are
// strings, Taxonomy, bool, or Null.
type Filter map[string]any

// nullValue is the type of Null.
type nullValue struct{}

// Null as a filter value matches columns that are NULL (for example
// system-owned templates via owner_id).
var Null = nullValue{}

// Filter keys for templates.
const (
	FilterTemplateID = "template_id"
	FilterTaxonomy   = "taxonomy"
	FilterOwnerID    = "owner_id"
	FilterCategory   = "category"
	FilterCategoryID = "category_id"
	FilterName       = "name"
	FilterStatus     = "status"
)

// Additional filter keys for categories. FilterTaxonomy, FilterName and
// FilterCategoryID apply to categories too.
const (
	FilterSlug            = "slug"
	FilterIsActive        = "is_active"
	FilterIsSystemDefined = "is_system_defined"
)

// SystemOwned returns the filter selecting system-owned templates of taxonomy t.
func SystemOwned(t Taxonomy) Filter {
	return Filter{FilterTaxonomy: t, FilterOwnerID: Null}
}
