// This file implements the category store for the SQLite backend.
package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

var _ types.CategoryStore = (*categoriesTable)(nil)

var categoryColumnList = []string{
	"category_id", "name", "slug", "taxonomy", "description", "color", "icon",
	"is_system_defined", "is_active", "ordinal", "created_at",
}

var categoryColumns = strings.Join(categoryColumnList, ", ")

type categoriesTable struct {
	backend *Backend
}

// InsertMany inserts categories in one transaction. A slug that collides with
// an active category fails the whole batch with ErrDuplicateSlug.
func (ct *categoriesTable) InsertMany(ctx context.Context, categories []*types.Category) ([]*types.Category, error) {
	for _, c := range categories {
		if err := validateCategory(c); err != nil {
			return nil, err
		}
	}

	b := ct.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if len(categories) == 0 {
		return []*types.Category{}, nil
	}

	now := b.now()
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range categories {
		if c.CategoryID == "" {
			c.CategoryID = generateUUID()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		_, err := tx.ExecContext(ctx, fmt.Sprintf(
			"INSERT INTO categories (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", categoryColumns),
			c.CategoryID, c.Name, c.Slug, string(c.Taxonomy), c.Description, c.Color, c.Icon,
			boolToInt(c.IsSystemDefined), boolToInt(c.IsActive), c.Ordinal, formatTime(c.CreatedAt))
		if err != nil {
			if isSlugConflict(err) {
				return nil, &types.ValidationError{Field: "slug", Value: c.Slug, Err: types.ErrDuplicateSlug}
			}
			return nil, fmt.Errorf("inserting category %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing categories: %w", err)
	}
	if err := ct.persistJSONL(ctx); err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteWhere removes categories matching filter. The store does not guard
// system-defined categories; the resolver does.
func (ct *categoriesTable) DeleteWhere(ctx context.Context, filter types.Filter) (int, error) {
	if len(filter) == 0 {
		return 0, types.ErrInvalidFilter
	}
	where, args, err := buildWhere(filter, categoryFilterColumns)
	if err != nil {
		return 0, err
	}

	b := ct.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	res, err := b.db.ExecContext(ctx, "DELETE FROM categories WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting categories: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted categories: %w", err)
	}
	if n > 0 {
		if err := ct.persistJSONL(ctx); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}

// SelectWhere returns categories matching filter ordered by taxonomy,
// ordinal, name.
func (ct *categoriesTable) SelectWhere(ctx context.Context, filter types.Filter) ([]*types.Category, error) {
	where, args, err := buildWhere(filter, categoryFilterColumns)
	if err != nil {
		return nil, err
	}

	b := ct.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return queryCategories(ctx, b.db, where, args)
}

// UpdateOne applies patch to one category. Reactivating a category whose slug
// is taken by another active category fails with ErrDuplicateSlug.
func (ct *categoriesTable) UpdateOne(ctx context.Context, id string, patch types.CategoryPatch) (*types.Category, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, &types.ValidationError{Field: "name", Err: types.ErrInvalidName}
	}

	b := ct.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	found, err := queryCategories(ctx, b.db, "category_id = ?", []any{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, types.ErrNotFound
	}
	c := found[0]

	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if patch.Icon != nil {
		c.Icon = *patch.Icon
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}

	_, err = b.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, color = ?, icon = ?, is_active = ?
		WHERE category_id = ?`,
		c.Name, c.Description, c.Color, c.Icon, boolToInt(c.IsActive), id)
	if err != nil {
		if isSlugConflict(err) {
			return nil, &types.ValidationError{Field: "slug", Value: c.Slug, Err: types.ErrDuplicateSlug}
		}
		return nil, fmt.Errorf("updating category %s: %w", id, err)
	}

	if err := ct.persistJSONL(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func validateCategory(c *types.Category) error {
	if c == nil {
		return types.ErrInvalidData
	}
	if strings.TrimSpace(c.Name) == "" {
		return &types.ValidationError{Field: "name", Err: types.ErrInvalidName}
	}
	if c.Slug == "" {
		return &types.ValidationError{Field: "slug", Err: types.ErrInvalidData}
	}
	if !c.Taxonomy.Valid() {
		return &types.ValidationError{Field: "taxonomy", Value: string(c.Taxonomy), Err: types.ErrInvalidTaxonomy}
	}
	return nil
}

// isSlugConflict reports whether err is a violation of the active-slug index.
func isSlugConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "slug")
}

// queryCategories runs a SELECT with an optional WHERE clause.
// The caller must hold the backend lock.
func queryCategories(ctx context.Context, q queryer, where string, args []any) ([]*types.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY taxonomy ASC, ordinal ASC, name ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	defer rows.Close()

	results := []*types.Category{}
	for rows.Next() {
		c, err := hydrateCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return results, nil
}

// hydrateCategory converts one SQLite row into a *types.Category.
func hydrateCategory(row rowScanner) (*types.Category, error) {
	var (
		c                  types.Category
		taxonomy           string
		isSystem, isActive int64
		createdAt          string
	)
	if err := row.Scan(&c.CategoryID, &c.Name, &c.Slug, &taxonomy, &c.Description,
		&c.Color, &c.Icon, &isSystem, &isActive, &c.Ordinal, &createdAt); err != nil {
		return nil, err
	}
	c.Taxonomy = types.Taxonomy(taxonomy)
	c.IsSystemDefined = isSystem != 0
	c.IsActive = isActive != 0
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}

// categoryJSONLRecord is the on-disk format of one category.
type categoryJSONLRecord struct {
	CategoryID      string `json:"category_id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Taxonomy        string `json:"taxonomy"`
	Description     string `json:"description"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	IsSystemDefined bool   `json:"is_system_defined"`
	IsActive        bool   `json:"is_active"`
	Ordinal         int    `json:"ordinal"`
	CreatedAt       string `json:"created_at"`
}

// persistJSONL rewrites categories.jsonl. The caller must hold the backend
// write lock.
func (ct *categoriesTable) persistJSONL(ctx context.Context) error {
	return persistCategoriesJSONL(ctx, ct.backend.db, ct.backend.config.DataDir)
}

func persistCategoriesJSONL(ctx context.Context, q queryer, dataDir string) error {
	all, err := queryCategories(ctx, q, "", nil)
	if err != nil {
		return fmt.Errorf("querying categories for JSONL: %w", err)
	}
	out := make([]categoryJSONLRecord, 0, len(all))
	for _, c := range all {
		out = append(out, categoryJSONLRecord{
			CategoryID:      c.CategoryID,
			Name:            c.Name,
			Slug:            c.Slug,
			Taxonomy:        string(c.Taxonomy),
			Description:     c.Description,
			Color:           c.Color,
			Icon:            c.Icon,
			IsSystemDefined: c.IsSystemDefined,
			IsActive:        c.IsActive,
			Ordinal:         c.Ordinal,
			CreatedAt:       formatTime(c.CreatedAt),
		})
	}
	records, err := marshalRecords(out)
	if err != nil {
		return fmt.Errorf("marshaling categories for JSONL: %w", err)
	}
	if err := writeJSONL(filepath.Join(dataDir, categoriesJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", categoriesJSONL, err)
	}
	return nil
}
