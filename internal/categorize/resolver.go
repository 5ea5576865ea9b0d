// Package categorize maps legacy free-text category labels onto normalized
// categories and guards category creation against near-duplicates.
package categorize

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Resolver assigns categories to templates and manages the category set.
type Resolver struct {
	templates  types.TemplateStore
	categories types.CategoryStore
}

// New returns a Resolver over the given stores.
func New(templates types.TemplateStore, categories types.CategoryStore) *Resolver {
	return &Resolver{templates: templates, categories: categories}
}

// Result reports what AutoCategorize changed.
type Result struct {
	CategorizedCount int `json:"categorized_count"`
	// FallbackCount is how many of those landed in an "other" category.
	FallbackCount int `json:"fallback_count"`
}

// index is a snapshot of the active categories.
type index struct {
	byID   map[string]*types.Category
	bySlug map[types.Taxonomy]map[string]*types.Category
}

func (r *Resolver) activeIndex(ctx context.Context) (index, error) {
	cats, err := r.categories.SelectWhere(ctx, types.Filter{types.FilterIsActive: true})
	if err != nil {
		return index{}, err
	}
	idx := index{
		byID:   make(map[string]*types.Category, len(cats)),
		bySlug: make(map[types.Taxonomy]map[string]*types.Category, len(types.Taxonomies)),
	}
	for _, c := range cats {
		idx.byID[c.CategoryID] = c
		if idx.bySlug[c.Taxonomy] == nil {
			idx.bySlug[c.Taxonomy] = make(map[string]*types.Category)
		}
		idx.bySlug[c.Taxonomy][c.Slug] = c
	}
	return idx, nil
}

// mapped reports whether rec points at an active category of its own taxonomy.
func (idx index) mapped(rec *types.Template) bool {
	if rec.CategoryID == "" {
		return false
	}
	c, ok := idx.byID[rec.CategoryID]
	return ok && c.Taxonomy == rec.Taxonomy
}

// resolve picks the category for rec. The legacy table wins, then a category
// whose slug equals the slugified label, then the taxonomy's "other" category.
func (idx index) resolve(rec *types.Template) (c *types.Category, fallback bool, err error) {
	slugs := idx.bySlug[rec.Taxonomy]
	if slug, ok := LegacySlug(rec.Category); ok {
		if c := slugs[slug]; c != nil {
			return c, false, nil
		}
	}
	if label := Slugify(rec.Category); label != "" {
		if c := slugs[label]; c != nil && !c.IsOther() {
			return c, false, nil
		}
	}
	if c := slugs[types.OtherCategorySlug(rec.Taxonomy)]; c != nil {
		return c, true, nil
	}
	return nil, false, fmt.Errorf("%w: %s", types.ErrNoOtherCategory, rec.Taxonomy)
}

// AutoCategorize assigns a category to every template whose category_id is
// empty or points at a missing, inactive or foreign-taxonomy category.
// Templates already correctly mapped are left alone. Store errors are
// returned unmodified; updates made before the failure stay.
func (r *Resolver) AutoCategorize(ctx context.Context) (Result, error) {
	var res Result
	idx, err := r.activeIndex(ctx)
	if err != nil {
		return res, err
	}
	records, err := r.templates.SelectWhere(ctx, nil)
	if err != nil {
		return res, err
	}

	for _, rec := range records {
		if idx.mapped(rec) {
			continue
		}
		c, fallback, err := idx.resolve(rec)
		if err != nil {
			return res, err
		}
		if _, err := r.templates.UpdateOne(ctx, rec.TemplateID, types.TemplatePatch{
			CategoryID: types.StringPtr(c.CategoryID),
		}); err != nil {
			return res, err
		}
		res.CategorizedCount++
		if fallback {
			res.FallbackCount++
		}
	}
	return res, nil
}

// Unmapped returns the templates AutoCategorize would touch.
func (r *Resolver) Unmapped(ctx context.Context) ([]*types.Template, error) {
	idx, err := r.activeIndex(ctx)
	if err != nil {
		return nil, err
	}
	records, err := r.templates.SelectWhere(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := []*types.Template{}
	for _, rec := range records {
		if !idx.mapped(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// List returns categories of taxonomy t, or of every taxonomy when t is
// empty. Inactive categories are included only when asked.
func (r *Resolver) List(ctx context.Context, t types.Taxonomy, includeInactive bool) ([]*types.Category, error) {
	filter := types.Filter{}
	if t != "" {
		filter[types.FilterTaxonomy] = t
	}
	if !includeInactive {
		filter[types.FilterIsActive] = true
	}
	return r.categories.SelectWhere(ctx, filter)
}

// DeactivateCategory marks a category inactive. Templates pointing at it
// become unmapped. The "other" category of a taxonomy cannot be deactivated.
func (r *Resolver) DeactivateCategory(ctx context.Context, id string) (*types.Category, error) {
	c, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsOther() && c.IsSystemDefined {
		return nil, &types.ValidationError{Field: "category_id", Value: id, Err: types.ErrSystemCategory}
	}
	return r.categories.UpdateOne(ctx, id, types.CategoryPatch{IsActive: types.BoolPtr(false)})
}

// DeleteCategory removes a user-defined category. System-defined categories
// are refused with ErrSystemCategory; deactivate them instead.
func (r *Resolver) DeleteCategory(ctx context.Context, id string) error {
	c, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if c.IsSystemDefined {
		return &types.ValidationError{Field: "category_id", Value: id, Err: types.ErrSystemCategory}
	}
	_, err = r.categories.DeleteWhere(ctx, types.Filter{types.FilterCategoryID: id})
	return err
}

func (r *Resolver) get(ctx context.Context, id string) (*types.Category, error) {
	if strings.TrimSpace(id) == "" {
		return nil, types.ErrInvalidID
	}
	found, err := r.categories.SelectWhere(ctx, types.Filter{types.FilterCategoryID: id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, types.ErrNotFound
	}
	return found[0], nil
}
