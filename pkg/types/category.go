package types

import "time"

// Category is a normalized category within one taxonomy. Slugs are unique
// among active categories. System-defined categories are never deleted,
// only deactivated.
type Category struct {
	CategoryID      string    `json:"category_id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Taxonomy        Taxonomy  `json:"taxonomy"`
	Description     string    `json:"description"`
	Color           string    `json:"color"`
	Icon            string    `json:"icon"`
	IsSystemDefined bool      `json:"is_system_defined"`
	IsActive        bool      `json:"is_active"`
	Ordinal         int       `json:"ordinal"` // Sort order; lower ordinals sort first.
	CreatedAt       time.Time `json:"created_at"`
}

// OtherCategorySlug returns the slug of the fallback category of taxonomy t.
// Every taxonomy has exactly one.
func OtherCategorySlug(t Taxonomy) string {
	return string(t) + "-other"
}

// IsOther reports whether c is its taxonomy's fallback category.
func (c *Category) IsOther() bool {
	return c.Slug == OtherCategorySlug(c.Taxonomy)
}

// CategoryPatch lists the fields UpdateOne may change on a category. Slug and
// taxonomy are immutable once created.
type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	IsActive    *bool
}
