// This file implements JSONL loading on attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column lists.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{templatesJSONL, types.TableTemplates, templateColumnList},
	{categoriesJSONL, types.TableCategories, categoryColumnList},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts the records into
// the corresponding SQLite table. Loading is transactional: all succeed or the
// database stays empty. Malformed lines and unknown fields are ignored.
// Returns the number of rows loaded per table.
func loadAllJSONL(db *sql.DB, dataDir string) (map[string]int, error) {
	loaded := make(map[string]int, len(jsonlTableMapping))

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return nil, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		loaded[mapping.table] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only columns
// listed in the mapping are extracted; columns absent from a record take the
// table default. Records that fail to decode or violate a constraint are
// skipped. Returns the number of rows inserted.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		present := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			val, ok := obj[col]
			if !ok {
				continue
			}
			present = append(present, col)
			args = append(args, columnValue(val))
		}
		if len(present) == 0 {
			continue
		}

		insertSQL := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			table,
			strings.Join(present, ", "),
			strings.TrimSuffix(strings.Repeat("?, ", len(present)), ", "),
		)
		if _, err := tx.Exec(insertSQL, args...); err != nil {
			continue
		}
		inserted++
	}
	return inserted, nil
}

// columnValue converts a decoded JSON value into a value SQLite can bind.
// Nested JSON (tags, configuration) is stored re-serialized as text.
func columnValue(val any) any {
	switch v := val.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	case float64:
		if v == math.Trunc(v) {
			return int64(v)
		}
		return v
	default:
		return v
	}
}
