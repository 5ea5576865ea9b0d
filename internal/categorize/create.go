package categorize

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Candidate is a category the caller wants to create.
type Candidate struct {
	Name        string
	Slug        string // Derived from Name when empty.
	Taxonomy    types.Taxonomy
	Description string
	Color       string
	Icon        string
	// Confirmed creates the category even when similar ones exist.
	Confirmed bool
}

// CreateStatus is the outcome kind of CreateCategory.
type CreateStatus string

const (
	// Created means a new category was stored.
	Created CreateStatus = "created"
	// Duplicate means an active category with the same name exists; it is
	// returned instead and nothing is stored.
	Duplicate CreateStatus = "duplicate"
	// NeedsConfirmation means similar categories exist; retry with
	// Confirmed set to create anyway.
	NeedsConfirmation CreateStatus = "needs_confirmation"
)

// CreateOutcome is the result of CreateCategory.
type CreateOutcome struct {
	Status   CreateStatus      `json:"status"`
	Category *types.Category   `json:"category,omitempty"`
	Similar  []*types.Category `json:"similar,omitempty"`
}

// CreateCategory creates a user-defined category after checking for exact
// and near duplicates among the active categories of the same taxonomy.
// A slug already used by an active category is a validation error.
func (r *Resolver) CreateCategory(ctx context.Context, cand Candidate) (CreateOutcome, error) {
	name := strings.TrimSpace(cand.Name)
	if name == "" {
		return CreateOutcome{}, &types.ValidationError{Field: "name", Err: types.ErrInvalidName}
	}
	if !cand.Taxonomy.Valid() {
		return CreateOutcome{}, &types.ValidationError{
			Field: "taxonomy", Value: string(cand.Taxonomy), Err: types.ErrInvalidTaxonomy,
		}
	}
	slug := Slugify(cand.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return CreateOutcome{}, &types.ValidationError{Field: "slug", Value: cand.Slug, Err: types.ErrInvalidData}
	}

	existing, err := r.categories.SelectWhere(ctx, types.Filter{
		types.FilterTaxonomy: cand.Taxonomy,
		types.FilterIsActive: true,
	})
	if err != nil {
		return CreateOutcome{}, err
	}

	for _, c := range existing {
		if normalizeName(c.Name) == normalizeName(name) {
			return CreateOutcome{Status: Duplicate, Category: c}, nil
		}
	}
	if similar := FindSimilar(name, existing); len(similar) > 0 && !cand.Confirmed {
		return CreateOutcome{Status: NeedsConfirmation, Similar: similar}, nil
	}

	taken, err := r.categories.SelectWhere(ctx, types.Filter{
		types.FilterSlug:     slug,
		types.FilterIsActive: true,
	})
	if err != nil {
		return CreateOutcome{}, err
	}
	if len(taken) > 0 {
		return CreateOutcome{}, &types.ValidationError{Field: "slug", Value: slug, Err: types.ErrDuplicateSlug}
	}

	ordinal := 0
	for _, c := range existing {
		if c.Ordinal >= ordinal {
			ordinal = c.Ordinal + 1
		}
	}

	created, err := r.categories.InsertMany(ctx, []*types.Category{{
		Name:        name,
		Slug:        slug,
		Taxonomy:    cand.Taxonomy,
		Description: cand.Description,
		Color:       cand.Color,
		Icon:        cand.Icon,
		IsActive:    true,
		Ordinal:     ordinal,
	}})
	if err != nil {
		return CreateOutcome{}, err
	}
	return CreateOutcome{Status: Created, Category: created[0]}, nil
}
