package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/funnelkit/internal/classify"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func TestDefaultCatalogClassification(t *testing.T) {
	parts := classify.Partition(Default().Definitions())
	assert.Len(t, parts[types.TaxonomySource], 10)
	assert.Len(t, parts[types.TaxonomyPage], 12)
	assert.Len(t, parts[types.TaxonomyAction], 7)
}

func TestDefaultCatalogLabelsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range Default().Definitions() {
		require.NotEmpty(t, d.Label)
		assert.False(t, seen[d.Label], "duplicate label %q", d.Label)
		seen[d.Label] = true
	}
}

func TestStaticDefinitionsReturnsCopy(t *testing.T) {
	s := Static{{Label: "A"}, {Label: "B"}}
	defs := s.Definitions()
	defs[0].Label = "changed"
	assert.Equal(t, "A", s[0].Label)
}

func TestMerge(t *testing.T) {
	merged := Merge(Static{{Label: "A"}}, nil, Static{{Label: "B"}, {Label: "C"}})
	require.Len(t, merged, 3)
	assert.Equal(t, "C", merged[2].Label)
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, s Static, err error)
	}{
		{
			name: "valid file",
			body: `templates:
  - label: Snapchat Ads
    category: traffic-sources-paid
    tags: [paid, social]
    default_configuration:
      budget: 50
  - label: Survey Page
    type: page
`,
			check: func(t *testing.T, s Static, err error) {
				require.NoError(t, err)
				require.Len(t, s, 2)
				assert.Equal(t, "Snapchat Ads", s[0].Label)
				assert.Equal(t, []string{"paid", "social"}, s[0].Tags)
				assert.Equal(t, 50, s[0].DefaultConfiguration["budget"])
				assert.Equal(t, types.TaxonomySource, classify.Classify(s[0]))
				assert.Equal(t, "page", s[1].Type)
			},
		},
		{
			name: "missing label is a validation error",
			body: "templates:\n  - category: nurturing\n",
			check: func(t *testing.T, s Static, err error) {
				require.Error(t, err)
				assert.True(t, types.IsValidation(err))
				assert.ErrorIs(t, err, types.ErrInvalidName)
			},
		},
		{
			name: "malformed yaml",
			body: "templates: [: bad",
			check: func(t *testing.T, s Static, err error) {
				require.Error(t, err)
				assert.False(t, types.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			s, err := LoadFile(path)
			tt.check(t, s, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
