// This file implements system category seeding on backend attach.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// systemCategory describes a category seeded on first startup.
type systemCategory struct {
	taxonomy    types.Taxonomy
	slug        string
	name        string
	description string
	color       string
	icon        string
}

// systemCategories are seeded in order; ordinals are assigned per taxonomy.
// Each taxonomy ends with its fallback "other" category.
var systemCategories = []systemCategory{
	{types.TaxonomySource, "paid-traffic", "Paid Traffic", "Paid ad platforms", "#2563eb", "megaphone"},
	{types.TaxonomySource, "organic-traffic", "Organic Traffic", "Search and unpaid social", "#16a34a", "leaf"},
	{types.TaxonomySource, "crm-traffic", "CRM Traffic", "Owned lists and referrals", "#9333ea", "users"},
	{types.TaxonomySource, "offline-traffic", "Offline Traffic", "Events and offline channels", "#ca8a04", "map-pin"},
	{types.TaxonomySource, types.OtherCategorySlug(types.TaxonomySource), "Other Sources", "Uncategorized traffic sources", "#6b7280", "circle"},

	{types.TaxonomyPage, "landing-pages", "Landing Pages", "Lead capture and opt-in pages", "#0891b2", "layout"},
	{types.TaxonomyPage, "sales-pages", "Sales Pages", "Sales, checkout and upsell pages", "#dc2626", "shopping-cart"},
	{types.TaxonomyPage, "content-pages", "Content Pages", "Blog and social content", "#ea580c", "file-text"},
	{types.TaxonomyPage, "member-pages", "Member Pages", "Member areas and utility pages", "#4f46e5", "lock"},
	{types.TaxonomyPage, types.OtherCategorySlug(types.TaxonomyPage), "Other Pages", "Uncategorized pages", "#6b7280", "circle"},

	{types.TaxonomyAction, "lead-nurturing", "Lead Nurturing", "Email and SMS follow-up", "#059669", "mail"},
	{types.TaxonomyAction, "digital-launch", "Digital Launch", "Launch sequences and workflows", "#d946ef", "rocket"},
	{types.TaxonomyAction, "social-automation", "Social Automation", "Scheduled social posting", "#f59e0b", "share"},
	{types.TaxonomyAction, "workflow-automation", "Workflow Automation", "Tagging and internal workflows", "#64748b", "zap"},
	{types.TaxonomyAction, types.OtherCategorySlug(types.TaxonomyAction), "Other Actions", "Uncategorized actions", "#6b7280", "circle"},
}

// SystemCategorySlugs returns the slugs seeded for taxonomy t in ordinal order.
func SystemCategorySlugs(t types.Taxonomy) []string {
	var slugs []string
	for _, sc := range systemCategories {
		if sc.taxonomy == t {
			slugs = append(slugs, sc.slug)
		}
	}
	return slugs
}

// seedSystemCategories creates the system categories if the categories table
// is empty (first run) and writes them to categories.jsonl. Returns the
// number of categories seeded.
func seedSystemCategories(db *sql.DB, dataDir string, now time.Time) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	ordinals := make(map[types.Taxonomy]int, len(types.Taxonomies))
	for _, sc := range systemCategories {
		ordinal := ordinals[sc.taxonomy]
		ordinals[sc.taxonomy]++
		_, err := tx.Exec(
			"INSERT INTO categories ("+categoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, 1, 1, ?, ?)",
			generateUUID(), sc.name, sc.slug, string(sc.taxonomy), sc.description,
			sc.color, sc.icon, ordinal, formatTime(now),
		)
		if err != nil {
			return 0, fmt.Errorf("seeding category %s: %w", sc.slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}

	if err := persistCategoriesJSONL(context.Background(), db, dataDir); err != nil {
		return 0, fmt.Errorf("persisting seeded categories: %w", err)
	}
	return len(systemCategories), nil
}
