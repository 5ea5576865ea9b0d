// Tests for the SQLite backend lifecycle.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

var fixedNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testConfig(dataDir string) types.Config {
	return types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
}

// setupBackend attaches a fresh backend to a temp dir with a fixed clock.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, b.Attach(testConfig(t.TempDir())))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, dataDir string)
	}{
		{
			name: "attach creates database and JSONL files",
			check: func(t *testing.T, dataDir string) {
				b := NewBackend()
				require.NoError(t, b.Attach(testConfig(dataDir)))
				defer b.Detach()

				for _, name := range append([]string{dbFileName}, jsonlFiles...) {
					_, err := os.Stat(filepath.Join(dataDir, name))
					assert.NoError(t, err, name)
				}
			},
		},
		{
			name: "attach creates missing data dir",
			check: func(t *testing.T, dataDir string) {
				nested := filepath.Join(dataDir, "a", "b")
				b := NewBackend()
				require.NoError(t, b.Attach(testConfig(nested)))
				defer b.Detach()

				_, err := os.Stat(nested)
				assert.NoError(t, err)
			},
		},
		{
			name: "double attach returns ErrAlreadyAttached",
			check: func(t *testing.T, dataDir string) {
				b := NewBackend()
				require.NoError(t, b.Attach(testConfig(dataDir)))
				defer b.Detach()

				assert.ErrorIs(t, b.Attach(testConfig(dataDir)), types.ErrAlreadyAttached)
			},
		},
		{
			name: "attach rejects invalid config",
			check: func(t *testing.T, dataDir string) {
				b := NewBackend()
				assert.ErrorIs(t, b.Attach(types.Config{DataDir: dataDir}), types.ErrBackendEmpty)
				assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres", DataDir: dataDir}), types.ErrBackendUnknown)
			},
		},
		{
			name: "detach is idempotent and closes stores",
			check: func(t *testing.T, dataDir string) {
				b := NewBackend()
				require.NoError(t, b.Attach(testConfig(dataDir)))
				tmpls, err := b.Templates()
				require.NoError(t, err)

				require.NoError(t, b.Detach())
				require.NoError(t, b.Detach())

				_, err = b.Templates()
				assert.ErrorIs(t, err, types.ErrStoreDetached)
				_, err = b.Categories()
				assert.ErrorIs(t, err, types.ErrStoreDetached)
				_, err = tmpls.SelectWhere(context.Background(), nil)
				assert.ErrorIs(t, err, types.ErrStoreDetached)
			},
		},
		{
			name: "reattach after detach rebuilds from JSONL",
			check: func(t *testing.T, dataDir string) {
				ctx := context.Background()
				b := NewBackend()
				require.NoError(t, b.Attach(testConfig(dataDir)))
				tmpls, err := b.Templates()
				require.NoError(t, err)
				_, err = tmpls.InsertMany(ctx, []*types.Template{
					{Taxonomy: types.TaxonomyPage, Name: "Landing Page"},
				})
				require.NoError(t, err)
				require.NoError(t, b.Detach())

				b2 := NewBackend()
				require.NoError(t, b2.Attach(testConfig(dataDir)))
				defer b2.Detach()
				tmpls2, err := b2.Templates()
				require.NoError(t, err)
				got, err := tmpls2.SelectWhere(ctx, nil)
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "Landing Page", got[0].Name)

				cats, err := b2.Categories()
				require.NoError(t, err)
				all, err := cats.SelectWhere(ctx, nil)
				require.NoError(t, err)
				assert.Len(t, all, len(systemCategories), "seeding must not repeat")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, t.TempDir())
		})
	}
}

func TestBackendLogsAttach(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := NewBackend(WithLogger(zap.New(core)))
	require.NoError(t, b.Attach(testConfig(t.TempDir())))
	require.NoError(t, b.Detach())

	entries := logs.FilterMessage("store attached").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(len(systemCategories)), entries[0].ContextMap()["seeded_categories"])
	assert.Equal(t, 1, logs.FilterMessage("store detached").Len())
}
