// Unit tests for the templates store.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func templatesOf(t *testing.T, b *Backend) types.TemplateStore {
	t.Helper()
	s, err := b.Templates()
	require.NoError(t, err)
	return s
}

func TestTemplatesInsertMany(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "fills ID status and timestamps",
			check: func(t *testing.T, b *Backend) {
				got, err := templatesOf(t, b).InsertMany(ctx, []*types.Template{
					{Taxonomy: types.TaxonomySource, Name: "Facebook Ads", Tags: []string{"paid"}},
				})
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.NotEmpty(t, got[0].TemplateID)
				assert.Equal(t, types.StatusActive, got[0].Status)
				assert.Equal(t, fixedNow, got[0].CreatedAt)
				assert.Equal(t, fixedNow, got[0].UpdatedAt)
			},
		},
		{
			name: "round trips tags configuration and owner",
			check: func(t *testing.T, b *Backend) {
				s := templatesOf(t, b)
				_, err := s.InsertMany(ctx, []*types.Template{{
					Taxonomy:      types.TaxonomyAction,
					Name:          "Email Nurture",
					OwnerID:       types.StringPtr("user-1"),
					Tags:          []string{"email", "nurture"},
					Configuration: map[string]any{"delay_days": float64(2)},
				}})
				require.NoError(t, err)

				got, err := s.SelectWhere(ctx, types.Filter{types.FilterOwnerID: "user-1"})
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, []string{"email", "nurture"}, got[0].Tags)
				assert.Equal(t, float64(2), got[0].Configuration["delay_days"])
				assert.Equal(t, "user-1", got[0].Owner())
				assert.False(t, got[0].IsSystemOwned())
			},
		},
		{
			name: "invalid record fails the whole batch",
			check: func(t *testing.T, b *Backend) {
				s := templatesOf(t, b)
				_, err := s.InsertMany(ctx, []*types.Template{
					{Taxonomy: types.TaxonomyPage, Name: "Fine"},
					{Taxonomy: types.TaxonomyPage, Name: ""},
				})
				assert.ErrorIs(t, err, types.ErrInvalidName)

				all, err := s.SelectWhere(ctx, nil)
				require.NoError(t, err)
				assert.Empty(t, all)
			},
		},
		{
			name: "nil record returns ErrInvalidData",
			check: func(t *testing.T, b *Backend) {
				_, err := templatesOf(t, b).InsertMany(ctx, []*types.Template{nil})
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
		{
			name: "empty batch is a no-op",
			check: func(t *testing.T, b *Backend) {
				got, err := templatesOf(t, b).InsertMany(ctx, nil)
				require.NoError(t, err)
				assert.Empty(t, got)
			},
		},
		{
			name: "persists to templates.jsonl",
			check: func(t *testing.T, b *Backend) {
				_, err := templatesOf(t, b).InsertMany(ctx, []*types.Template{
					{Taxonomy: types.TaxonomyPage, Name: "Sales Page"},
					{Taxonomy: types.TaxonomyPage, Name: "Checkout Page"},
				})
				require.NoError(t, err)

				data, err := os.ReadFile(filepath.Join(b.config.DataDir, templatesJSONL))
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				assert.Len(t, lines, 2)
				assert.Contains(t, string(data), `"owner_id":null`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupBackend(t))
		})
	}
}

func TestTemplatesDeleteAndSelect(t *testing.T) {
	ctx := context.Background()
	seed := func(t *testing.T, s types.TemplateStore) {
		t.Helper()
		_, err := s.InsertMany(ctx, []*types.Template{
			{Taxonomy: types.TaxonomySource, Name: "Google Ads"},
			{Taxonomy: types.TaxonomySource, Name: "My Source", OwnerID: types.StringPtr("u1")},
			{Taxonomy: types.TaxonomyPage, Name: "Landing Page"},
		})
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		check func(t *testing.T, s types.TemplateStore)
	}{
		{
			name: "system owned filter deletes only system templates of one taxonomy",
			check: func(t *testing.T, s types.TemplateStore) {
				n, err := s.DeleteWhere(ctx, types.SystemOwned(types.TaxonomySource))
				require.NoError(t, err)
				assert.Equal(t, 1, n)

				rest, err := s.SelectWhere(ctx, nil)
				require.NoError(t, err)
				names := []string{}
				for _, r := range rest {
					names = append(names, r.Name)
				}
				assert.ElementsMatch(t, []string{"My Source", "Landing Page"}, names)
			},
		},
		{
			name: "empty filter is refused",
			check: func(t *testing.T, s types.TemplateStore) {
				_, err := s.DeleteWhere(ctx, types.Filter{})
				assert.ErrorIs(t, err, types.ErrInvalidFilter)
			},
		},
		{
			name: "unknown filter key is refused",
			check: func(t *testing.T, s types.TemplateStore) {
				_, err := s.SelectWhere(ctx, types.Filter{"color": "red"})
				assert.ErrorIs(t, err, types.ErrInvalidFilter)
			},
		},
		{
			name: "delete with no matches returns zero",
			check: func(t *testing.T, s types.TemplateStore) {
				n, err := s.DeleteWhere(ctx, types.Filter{types.FilterName: "nope"})
				require.NoError(t, err)
				assert.Zero(t, n)
			},
		},
		{
			name: "select by taxonomy",
			check: func(t *testing.T, s types.TemplateStore) {
				got, err := s.SelectWhere(ctx, types.Filter{types.FilterTaxonomy: types.TaxonomySource})
				require.NoError(t, err)
				assert.Len(t, got, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := templatesOf(t, setupBackend(t))
			seed(t, s)
			tt.check(t, s)
		})
	}
}

func TestTemplatesUpdateOne(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		check func(t *testing.T, s types.TemplateStore, id string)
	}{
		{
			name: "sets and clears category_id",
			check: func(t *testing.T, s types.TemplateStore, id string) {
				got, err := s.UpdateOne(ctx, id, types.TemplatePatch{CategoryID: types.StringPtr("cat-1")})
				require.NoError(t, err)
				assert.Equal(t, "cat-1", got.CategoryID)

				got, err = s.UpdateOne(ctx, id, types.TemplatePatch{CategoryID: types.StringPtr("")})
				require.NoError(t, err)
				assert.Empty(t, got.CategoryID)

				rows, err := s.SelectWhere(ctx, types.Filter{types.FilterCategoryID: types.Null})
				require.NoError(t, err)
				assert.Len(t, rows, 1)
			},
		},
		{
			name: "rejects invalid status",
			check: func(t *testing.T, s types.TemplateStore, id string) {
				_, err := s.UpdateOne(ctx, id, types.TemplatePatch{Status: types.StringPtr("bogus")})
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
		{
			name: "rejects empty name",
			check: func(t *testing.T, s types.TemplateStore, id string) {
				_, err := s.UpdateOne(ctx, id, types.TemplatePatch{Name: types.StringPtr("")})
				assert.ErrorIs(t, err, types.ErrInvalidName)
			},
		},
		{
			name: "missing id returns ErrNotFound",
			check: func(t *testing.T, s types.TemplateStore, _ string) {
				_, err := s.UpdateOne(ctx, "missing", types.TemplatePatch{Name: types.StringPtr("x")})
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "empty id returns ErrInvalidID",
			check: func(t *testing.T, s types.TemplateStore, _ string) {
				_, err := s.UpdateOne(ctx, "", types.TemplatePatch{})
				assert.ErrorIs(t, err, types.ErrInvalidID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := templatesOf(t, setupBackend(t))
			got, err := s.InsertMany(ctx, []*types.Template{{Taxonomy: types.TaxonomyPage, Name: "Blog Article"}})
			require.NoError(t, err)
			tt.check(t, s, got[0].TemplateID)
		})
	}
}
