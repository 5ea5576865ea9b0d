package types

import (
	"context"
	"errors"
)

// TemplateStore is the record store for persisted templates. Filters are
// equality conjunctions over the template filter keys.
type TemplateStore interface {
	// InsertMany persists records in one batch. Records with an empty
	// TemplateID get a new UUID v7. Returns the stored copies.
	InsertMany(ctx context.Context, records []*Template) ([]*Template, error)

	// DeleteWhere removes every record matching filter and returns the count.
	// An empty filter is refused with ErrInvalidFilter.
	DeleteWhere(ctx context.Context, filter Filter) (int, error)

	// SelectWhere returns the records matching filter. An empty filter
	// returns every record. Never returns a nil slice on success.
	SelectWhere(ctx context.Context, filter Filter) ([]*Template, error)

	// UpdateOne applies patch to the record with the given ID.
	// Returns ErrNotFound if no such record exists.
	UpdateOne(ctx context.Context, id string, patch TemplatePatch) (*Template, error)
}

// CategoryStore is the record store for categories. The store enforces slug
// uniqueness among active categories and reports violations as
// ErrDuplicateSlug.
type CategoryStore interface {
	InsertMany(ctx context.Context, categories []*Category) ([]*Category, error)
	DeleteWhere(ctx context.Context, filter Filter) (int, error)
	SelectWhere(ctx context.Context, filter Filter) ([]*Category, error)
	UpdateOne(ctx context.Context, id string, patch CategoryPatch) (*Category, error)
}

// Store operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Validation errors. These surface wrapped in a ValidationError.
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrDuplicateSlug   = errors.New("duplicate slug")
	ErrSystemCategory  = errors.New("system-defined category cannot be deleted")
	ErrNoOtherCategory = errors.New("taxonomy has no active other category")
)
