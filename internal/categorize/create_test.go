package categorize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		check func(t *testing.T, f fixture)
	}{
		{
			name: "creates with derived slug and next ordinal",
			check: func(t *testing.T, f fixture) {
				out, err := f.resolver.CreateCategory(ctx, Candidate{Name: "  Quiz Funnels ", Taxonomy: types.TaxonomyPage})
				require.NoError(t, err)
				require.Equal(t, Created, out.Status)
				assert.Equal(t, "Quiz Funnels", out.Category.Name)
				assert.Equal(t, "quiz-funnels", out.Category.Slug)
				assert.False(t, out.Category.IsSystemDefined)
				assert.True(t, out.Category.IsActive)
				assert.Equal(t, 5, out.Category.Ordinal)
			},
		},
		{
			name: "exact name match returns the existing category",
			check: func(t *testing.T, f fixture) {
				out, err := f.resolver.CreateCategory(ctx, Candidate{Name: "landing PAGES", Taxonomy: types.TaxonomyPage, Confirmed: true})
				require.NoError(t, err)
				assert.Equal(t, Duplicate, out.Status)
				assert.Equal(t, "landing-pages", out.Category.Slug)

				all, err := f.categories.SelectWhere(ctx, types.Filter{types.FilterTaxonomy: types.TaxonomyPage})
				require.NoError(t, err)
				assert.Len(t, all, 5)
			},
		},
		{
			name: "similar names need confirmation",
			check: func(t *testing.T, f fixture) {
				out, err := f.resolver.CreateCategory(ctx, Candidate{Name: "Paid Ads", Taxonomy: types.TaxonomySource})
				require.NoError(t, err)
				assert.Equal(t, NeedsConfirmation, out.Status)
				assert.Nil(t, out.Category)
				require.Len(t, out.Similar, 1)
				assert.Equal(t, "paid-traffic", out.Similar[0].Slug)
			},
		},
		{
			name: "confirmed similar name is created",
			check: func(t *testing.T, f fixture) {
				out, err := f.resolver.CreateCategory(ctx, Candidate{Name: "Paid Ads", Taxonomy: types.TaxonomySource, Confirmed: true})
				require.NoError(t, err)
				assert.Equal(t, Created, out.Status)
			},
		},
		{
			name: "similarity is scoped to the taxonomy",
			check: func(t *testing.T, f fixture) {
				out, err := f.resolver.CreateCategory(ctx, Candidate{Name: "Paid Pages", Taxonomy: types.TaxonomyAction})
				require.NoError(t, err)
				assert.Equal(t, Created, out.Status)
			},
		},
		{
			name: "slug collision is a validation error",
			check: func(t *testing.T, f fixture) {
				_, err := f.resolver.CreateCategory(ctx, Candidate{
					Name: "Brand New", Slug: "paid-traffic", Taxonomy: types.TaxonomyAction,
				})
				assert.ErrorIs(t, err, types.ErrDuplicateSlug)
				assert.True(t, types.IsValidation(err))
			},
		},
		{
			name: "invalid input",
			check: func(t *testing.T, f fixture) {
				_, err := f.resolver.CreateCategory(ctx, Candidate{Name: " ", Taxonomy: types.TaxonomyPage})
				assert.ErrorIs(t, err, types.ErrInvalidName)
				_, err = f.resolver.CreateCategory(ctx, Candidate{Name: "X", Taxonomy: "funnel"})
				assert.ErrorIs(t, err, types.ErrInvalidTaxonomy)
				_, err = f.resolver.CreateCategory(ctx, Candidate{Name: "!!!", Taxonomy: types.TaxonomyPage})
				assert.ErrorIs(t, err, types.ErrInvalidData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setup(t))
		})
	}
}
