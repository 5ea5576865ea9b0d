package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

// printJSON writes v as indented JSON.
func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// printTable writes rows as aligned columns under header.
func (a *app) printTable(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// emit prints v as JSON in --json mode and calls text otherwise.
func (a *app) emit(v any, text func() error) error {
	if a.jsonMode {
		return a.printJSON(v)
	}
	return text()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
