// This file implements the templates record store for the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

var _ types.TemplateStore = (*templatesTable)(nil)

var templateColumnList = []string{
	"template_id", "taxonomy", "name", "description", "category", "category_id",
	"owner_id", "status", "tags", "icon", "color", "configuration",
	"created_at", "updated_at",
}

var templateColumns = strings.Join(templateColumnList, ", ")

// templatesTable hydrates/dehydrates between SQLite rows and *types.Template
// and rewrites templates.jsonl after every mutation.
type templatesTable struct {
	backend *Backend
}

// InsertMany validates and inserts all records in one transaction. Empty IDs
// get a UUID v7; timestamps and the default status are filled in. The input
// records are updated in place and returned.
func (tt *templatesTable) InsertMany(ctx context.Context, records []*types.Template) ([]*types.Template, error) {
	for _, rec := range records {
		if rec == nil {
			return nil, types.ErrInvalidData
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
	}

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if len(records) == 0 {
		return []*types.Template{}, nil
	}

	now := b.now()
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO templates (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", templateColumns))
	if err != nil {
		return nil, fmt.Errorf("preparing template insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if rec.TemplateID == "" {
			rec.TemplateID = generateUUID()
		}
		if rec.Status == "" {
			rec.Status = types.StatusActive
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now

		args, err := templateArgs(rec)
		if err != nil {
			return nil, err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return nil, fmt.Errorf("inserting template %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing templates: %w", err)
	}

	if err := tt.persistJSONL(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteWhere removes all templates matching filter.
func (tt *templatesTable) DeleteWhere(ctx context.Context, filter types.Filter) (int, error) {
	if len(filter) == 0 {
		return 0, types.ErrInvalidFilter
	}
	where, args, err := buildWhere(filter, templateFilterColumns)
	if err != nil {
		return 0, err
	}

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return 0, types.ErrStoreDetached
	}

	res, err := b.db.ExecContext(ctx, "DELETE FROM templates WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting templates: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted templates: %w", err)
	}
	if n > 0 {
		if err := tt.persistJSONL(ctx); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}

// SelectWhere returns templates matching filter ordered by created_at, name.
func (tt *templatesTable) SelectWhere(ctx context.Context, filter types.Filter) ([]*types.Template, error) {
	where, args, err := buildWhere(filter, templateFilterColumns)
	if err != nil {
		return nil, err
	}

	b := tt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	return queryTemplates(ctx, b.db, where, args)
}

// UpdateOne applies patch to a single template.
func (tt *templatesTable) UpdateOne(ctx context.Context, id string, patch types.TemplatePatch) (*types.Template, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if patch.Status != nil && !types.IsValidStatus(*patch.Status) {
		return nil, &types.ValidationError{Field: "status", Value: *patch.Status, Err: types.ErrInvalidData}
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, &types.ValidationError{Field: "name", Err: types.ErrInvalidName}
	}

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	found, err := queryTemplates(ctx, b.db, "template_id = ?", []any{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, types.ErrNotFound
	}
	rec := found[0]
	if patch.Empty() {
		return rec, nil
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Category != nil {
		rec.Category = *patch.Category
	}
	if patch.CategoryID != nil {
		rec.CategoryID = *patch.CategoryID
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	rec.UpdatedAt = b.now()

	_, err = b.db.ExecContext(ctx,
		`UPDATE templates SET name = ?, description = ?, category = ?, category_id = ?,
		status = ?, updated_at = ? WHERE template_id = ?`,
		rec.Name, rec.Description, rec.Category, nullString(rec.CategoryID),
		rec.Status, formatTime(rec.UpdatedAt), id)
	if err != nil {
		return nil, fmt.Errorf("updating template %s: %w", id, err)
	}

	if err := tt.persistJSONL(ctx); err != nil {
		return nil, err
	}
	return rec, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryTemplates runs a SELECT with an optional WHERE clause.
// The caller must hold the backend lock.
func queryTemplates(ctx context.Context, q queryer, where string, args []any) ([]*types.Template, error) {
	query := "SELECT " + templateColumns + " FROM templates"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at ASC, name ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching templates: %w", err)
	}
	defer rows.Close()

	results := []*types.Template{}
	for rows.Next() {
		rec, err := hydrateTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating template: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return results, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateTemplate converts one SQLite row into a *types.Template.
func hydrateTemplate(row rowScanner) (*types.Template, error) {
	var (
		t                    types.Template
		taxonomy             string
		categoryID, ownerID  sql.NullString
		tags, config         string
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.TemplateID, &taxonomy, &t.Name, &t.Description, &t.Category,
		&categoryID, &ownerID, &t.Status, &tags, &t.Icon, &t.Color, &config,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Taxonomy = types.Taxonomy(taxonomy)
	t.CategoryID = categoryID.String
	if ownerID.Valid {
		owner := ownerID.String
		t.OwnerID = &owner
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if err := json.Unmarshal([]byte(config), &t.Configuration); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if t.Configuration == nil {
		t.Configuration = map[string]any{}
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}

// encodeTemplateJSON returns the tags and configuration columns of rec.
func encodeTemplateJSON(rec *types.Template) (tagsJSON, configJSON []byte, err error) {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	if tagsJSON, err = json.Marshal(tags); err != nil {
		return nil, nil, fmt.Errorf("marshaling tags: %w", err)
	}
	config := rec.Configuration
	if config == nil {
		config = map[string]any{}
	}
	if configJSON, err = json.Marshal(config); err != nil {
		return nil, nil, fmt.Errorf("marshaling configuration: %w", err)
	}
	return tagsJSON, configJSON, nil
}

// templateArgs returns the INSERT arguments for rec in templateColumnList order.
func templateArgs(rec *types.Template) ([]any, error) {
	tagsJSON, configJSON, err := encodeTemplateJSON(rec)
	if err != nil {
		return nil, err
	}
	var owner any
	if rec.OwnerID != nil {
		owner = *rec.OwnerID
	}
	return []any{
		rec.TemplateID, string(rec.Taxonomy), rec.Name, rec.Description, rec.Category,
		nullString(rec.CategoryID), owner, rec.Status, string(tagsJSON), rec.Icon,
		rec.Color, string(configJSON), formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
	}, nil
}

// nullString maps "" to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// templateJSONLRecord is the on-disk format of one template.
type templateJSONLRecord struct {
	TemplateID    string          `json:"template_id"`
	Taxonomy      string          `json:"taxonomy"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	CategoryID    *string         `json:"category_id"`
	OwnerID       *string         `json:"owner_id"`
	Status        string          `json:"status"`
	Tags          json.RawMessage `json:"tags"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	Configuration json.RawMessage `json:"configuration"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// persistJSONL rewrites templates.jsonl from the current table contents.
// The caller must hold the backend write lock.
func (tt *templatesTable) persistJSONL(ctx context.Context) error {
	all, err := queryTemplates(ctx, tt.backend.db, "", nil)
	if err != nil {
		return fmt.Errorf("querying templates for JSONL: %w", err)
	}
	out := make([]templateJSONLRecord, 0, len(all))
	for _, t := range all {
		tagsJSON, configJSON, err := encodeTemplateJSON(t)
		if err != nil {
			return err
		}
		rec := templateJSONLRecord{
			TemplateID:    t.TemplateID,
			Taxonomy:      string(t.Taxonomy),
			Name:          t.Name,
			Description:   t.Description,
			Category:      t.Category,
			OwnerID:       t.OwnerID,
			Status:        t.Status,
			Tags:          tagsJSON,
			Icon:          t.Icon,
			Color:         t.Color,
			Configuration: configJSON,
			CreatedAt:     formatTime(t.CreatedAt),
			UpdatedAt:     formatTime(t.UpdatedAt),
		}
		if t.CategoryID != "" {
			id := t.CategoryID
			rec.CategoryID = &id
		}
		out = append(out, rec)
	}
	records, err := marshalRecords(out)
	if err != nil {
		return fmt.Errorf("marshaling templates for JSONL: %w", err)
	}
	if err := writeJSONL(filepath.Join(tt.backend.config.DataDir, templatesJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", templatesJSONL, err)
	}
	return nil
}
