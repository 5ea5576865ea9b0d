package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// env is an isolated config and data directory pair.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	t.Setenv("FUNNELKIT_LOG_LEVEL", "error")
	dir := t.TempDir()
	return env{configDir: filepath.Join(dir, "config"), dataDir: filepath.Join(dir, "data")}
}

// run executes the root command with args and returns stdout.
func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

// runJSON executes args with --json and decodes the output into v.
func (e env) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := e.run(t, append([]string{"--json"}, args...)...)
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

type syncRow struct {
	Taxonomy      string `json:"taxonomy"`
	DeletedCount  int    `json:"deleted_count"`
	InsertedCount int    `json:"inserted_count"`
}

func TestInit(t *testing.T) {
	e := newEnv(t)

	var res map[string]any
	e.runJSON(t, &res, "init")
	assert.Equal(t, float64(15), res["categories"])
	assert.Equal(t, e.dataDir, res["data_dir"])

	_, err := os.Stat(filepath.Join(e.configDir, "config.yaml"))
	assert.NoError(t, err, "config.yaml written on first run")

	// Second init does not seed again.
	e.runJSON(t, &res, "init")
	assert.Equal(t, float64(15), res["categories"])
}

func TestSync(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, e env, rows []syncRow)
	}{
		{
			name: "all taxonomies sequentially",
			args: []string{"sync"},
			check: func(t *testing.T, e env, rows []syncRow) {
				require.Len(t, rows, 3)
				total := 0
				for _, r := range rows {
					assert.Zero(t, r.DeletedCount)
					total += r.InsertedCount
				}
				assert.Equal(t, 29, total)
			},
		},
		{
			name: "concurrent matches sequential",
			args: []string{"sync", "all", "--concurrent"},
			check: func(t *testing.T, e env, rows []syncRow) {
				got := map[string]int{}
				for _, r := range rows {
					got[r.Taxonomy] = r.InsertedCount
				}
				assert.Equal(t, map[string]int{"source": 10, "page": 12, "action": 7}, got)
			},
		},
		{
			name: "resync replaces system records",
			args: []string{"sync", "page"},
			check: func(t *testing.T, e env, rows []syncRow) {
				var again []syncRow
				e.runJSON(t, &again, "sync", "page")
				require.Len(t, again, 1)
				assert.Equal(t, rows[0].InsertedCount, again[0].DeletedCount)
				assert.Equal(t, rows[0].InsertedCount, again[0].InsertedCount)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			var rows []syncRow
			e.runJSON(t, &rows, tt.args...)
			tt.check(t, e, rows)
		})
	}
}

func TestSyncPreservesUserTemplates(t *testing.T) {
	e := newEnv(t)

	var created map[string]any
	e.runJSON(t, &created, "template", "create", "My Webinar Page", "--owner", "user-1", "--taxonomy", "page")

	var rows []syncRow
	e.runJSON(t, &rows, "sync", "page")

	var mine []map[string]any
	e.runJSON(t, &mine, "template", "list", "--owner", "user-1")
	require.Len(t, mine, 1)
	assert.Equal(t, created["template_id"], mine[0]["template_id"])
}

func TestTemplateCommands(t *testing.T) {
	e := newEnv(t)

	var a, b map[string]any
	e.runJSON(t, &a, "template", "create", "Facebook Ads", "--owner", "u1", "--category", "traffic-sources-paid")
	assert.Equal(t, "source", a["taxonomy"], "taxonomy classified when omitted")
	e.runJSON(t, &b, "template", "create", "Thank You Page", "--owner", "u1", "--taxonomy", "page")

	_, err := e.run(t, "template", "create", "Facebook Ads", "--owner", "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDuplicateName)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = e.run(t, "template", "create", "No Owner")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))

	var del map[string]int
	e.runJSON(t, &del, "template", "delete", a["template_id"].(string), b["template_id"].(string))
	assert.Equal(t, 2, del["deleted_count"])

	_, err = e.run(t, "template", "delete", "missing-id")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = e.run(t, "template", "list", "--system", "--owner", "u1")
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestCategoryCommands(t *testing.T) {
	e := newEnv(t)

	var out map[string]any
	e.runJSON(t, &out, "category", "create", "Webinar Registration", "--taxonomy", "page")
	assert.Equal(t, "created", out["status"])
	cat := out["category"].(map[string]any)
	assert.Equal(t, "webinar-registration", cat["slug"])

	out = nil
	e.runJSON(t, &out, "category", "create", "webinar registration", "--taxonomy", "page")
	assert.Equal(t, "duplicate", out["status"])

	out = nil
	e.runJSON(t, &out, "category", "create", "Sales Funnel", "--taxonomy", "page")
	assert.Equal(t, "needs_confirmation", out["status"])
	assert.NotEmpty(t, out["similar"])

	out = nil
	e.runJSON(t, &out, "category", "create", "Sales Funnel", "--taxonomy", "page", "--yes")
	assert.Equal(t, "created", out["status"])

	var page []map[string]any
	e.runJSON(t, &page, "category", "list", "--taxonomy", "page")
	assert.Len(t, page, 7)

	// System categories cannot be deleted.
	var system string
	for _, c := range page {
		if c["slug"] == "landing-pages" {
			system = c["category_id"].(string)
		}
	}
	require.NotEmpty(t, system)
	_, err := e.run(t, "category", "delete", system)
	assert.ErrorIs(t, err, types.ErrSystemCategory)
	assert.Equal(t, exitUserError, exitCode(err))

	var deactivated map[string]any
	e.runJSON(t, &deactivated, "category", "deactivate", system)
	assert.Equal(t, false, deactivated["is_active"])

	e.runJSON(t, &page, "category", "list", "--taxonomy", "page")
	assert.Len(t, page, 6)
	e.runJSON(t, &page, "category", "list", "--taxonomy", "page", "--all")
	assert.Len(t, page, 7)

	var del map[string]string
	e.runJSON(t, &del, "category", "delete", cat["category_id"].(string))
	assert.Equal(t, cat["category_id"], del["deleted"])
}

func TestCategorizeAndStats(t *testing.T) {
	e := newEnv(t)

	var rows []syncRow
	e.runJSON(t, &rows, "sync")

	var dry map[string]int
	e.runJSON(t, &dry, "categorize", "--dry-run")
	assert.Equal(t, 29, dry["unmapped_count"])

	var res map[string]int
	e.runJSON(t, &res, "categorize")
	assert.Equal(t, 29, res["categorized_count"])

	e.runJSON(t, &dry, "categorize", "--dry-run")
	assert.Zero(t, dry["unmapped_count"])

	var breakdown types.StatsBreakdown
	e.runJSON(t, &breakdown, "stats")
	assert.Equal(t, 29, breakdown.Total)
	assert.True(t, breakdown.Reconciled())
	for _, tax := range types.Taxonomies {
		assert.Equal(t, breakdown.PerTaxonomyTotal[tax], breakdown.BucketSum(tax), tax)
	}

	out, err := e.run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "total: 29")
}

func TestClassifyCommand(t *testing.T) {
	e := newEnv(t)

	var res []classifyResult
	e.runJSON(t, &res, "classify", "Facebook Ads", "--category", "traffic-sources-paid")
	require.Len(t, res, 1)
	assert.Equal(t, types.TaxonomySource, res[0].Taxonomy)

	e.runJSON(t, &res, "classify", "--catalog")
	assert.Len(t, res, 29)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"sync", "--nope"}},
		{name: "too many args", args: []string{"sync", "page", "action"}},
		{name: "invalid taxonomy", args: []string{"sync", "pages"}},
		{name: "missing template id", args: []string{"template", "delete"}},
		{name: "category without taxonomy", args: []string{"category", "create", "Foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEnv(t).run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitSuccess},
		{usageError{errors.New("bad flag")}, exitUserError},
		{&types.ValidationError{Field: "name", Err: types.ErrInvalidName}, exitUserError},
		{fmt.Errorf("get: %w", types.ErrNotFound), exitUserError},
		{types.ErrInvalidID, exitUserError},
		{types.ErrInvalidFilter, exitUserError},
		{errors.New("disk full"), exitSysError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exitCode(tt.err), "%v", tt.err)
	}
}

func TestVersion(t *testing.T) {
	out, err := newEnv(t).run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
