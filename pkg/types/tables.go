package types

// Table names used by the storage backends and the JSONL files.
const (
	TableTemplates  = "templates"
	TableCategories = "categories"
)

// StandardTableNames lists all table names for enumeration.
var StandardTableNames = []string{
	TableTemplates,
	TableCategories,
}
