package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables.
const (
	createTemplates = `CREATE TABLE templates (
    template_id TEXT PRIMARY KEY,
    taxonomy TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    category_id TEXT,
    owner_id TEXT,
    status TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    icon TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    configuration TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL,
    taxonomy TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    is_system_defined INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 1,
    ordinal INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxTemplatesTaxonomyOwner = `CREATE INDEX idx_templates_taxonomy_owner ON templates(taxonomy, owner_id);`
	idxTemplatesCategoryID    = `CREATE INDEX idx_templates_category_id ON templates(category_id);`
	idxTemplatesOwnerName     = `CREATE INDEX idx_templates_owner_name ON templates(owner_id, name);`
	idxCategoriesTaxonomy     = `CREATE INDEX idx_categories_taxonomy ON categories(taxonomy, slug);`
	// Slugs are unique among active categories only.
	idxCategoriesActiveSlug = `CREATE UNIQUE INDEX idx_categories_active_slug ON categories(slug) WHERE is_active = 1;`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createTemplates,
	createCategories,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTemplatesTaxonomyOwner,
	idxTemplatesCategoryID,
	idxTemplatesOwnerName,
	idxCategoriesTaxonomy,
	idxCategoriesActiveSlug,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
