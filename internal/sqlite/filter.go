package sqlite

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// filterColumns maps filter keys to column names for one table.
type filterColumns map[string]string

var templateFilterColumns = filterColumns{
	types.FilterTemplateID: "template_id",
	types.FilterTaxonomy:   "taxonomy",
	types.FilterOwnerID:    "owner_id",
	types.FilterCategory:   "category",
	types.FilterCategoryID: "category_id",
	types.FilterName:       "name",
	types.FilterStatus:     "status",
}

var categoryFilterColumns = filterColumns{
	types.FilterCategoryID:      "category_id",
	types.FilterTaxonomy:        "taxonomy",
	types.FilterSlug:            "slug",
	types.FilterName:            "name",
	types.FilterIsActive:        "is_active",
	types.FilterIsSystemDefined: "is_system_defined",
}

// buildWhere renders filter as a WHERE clause (without the keyword) and its
// arguments. Keys are emitted in sorted order so the SQL is deterministic.
// Returns ErrInvalidFilter for unknown keys or unsupported value types.
func buildWhere(filter types.Filter, cols filterColumns) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	var args []any
	for _, k := range keys {
		col, ok := cols[k]
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		switch v := filter[k].(type) {
		case string:
			conditions = append(conditions, col+" = ?")
			args = append(args, v)
		case types.Taxonomy:
			conditions = append(conditions, col+" = ?")
			args = append(args, string(v))
		case bool:
			conditions = append(conditions, col+" = ?")
			args = append(args, boolToInt(v))
		default:
			if filter[k] == types.Null {
				conditions = append(conditions, col+" IS NULL")
				continue
			}
			return "", nil, types.ErrInvalidFilter
		}
	}
	return strings.Join(conditions, " AND "), args, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
