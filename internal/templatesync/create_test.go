package templatesync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func TestCreateTemplate(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		check func(t *testing.T, s *Synchronizer)
	}{
		{
			name: "classifies missing taxonomy",
			check: func(t *testing.T, s *Synchronizer) {
				got, err := s.CreateTemplate(ctx, &types.Template{
					Name: "My Webinar Launch Workflow", OwnerID: types.StringPtr("u1"),
				})
				require.NoError(t, err)
				assert.Equal(t, types.TaxonomyAction, got.Taxonomy)
				assert.NotEmpty(t, got.TemplateID)
			},
		},
		{
			name: "rejects duplicate name for the same owner",
			check: func(t *testing.T, s *Synchronizer) {
				_, err := s.CreateTemplate(ctx, &types.Template{
					Taxonomy: types.TaxonomyPage, Name: "Promo", OwnerID: types.StringPtr("u1"),
				})
				require.NoError(t, err)
				_, err = s.CreateTemplate(ctx, &types.Template{
					Taxonomy: types.TaxonomyPage, Name: " Promo ", OwnerID: types.StringPtr("u1"),
				})
				assert.ErrorIs(t, err, types.ErrDuplicateName)
				assert.True(t, types.IsValidation(err))
			},
		},
		{
			name: "same name for another owner is allowed",
			check: func(t *testing.T, s *Synchronizer) {
				_, err := s.CreateTemplate(ctx, &types.Template{
					Taxonomy: types.TaxonomyPage, Name: "Promo", OwnerID: types.StringPtr("u1"),
				})
				require.NoError(t, err)
				_, err = s.CreateTemplate(ctx, &types.Template{
					Taxonomy: types.TaxonomyPage, Name: "Promo", OwnerID: types.StringPtr("u2"),
				})
				assert.NoError(t, err)
			},
		},
		{
			name: "owner is required",
			check: func(t *testing.T, s *Synchronizer) {
				_, err := s.CreateTemplate(ctx, &types.Template{Taxonomy: types.TaxonomyPage, Name: "X"})
				assert.ErrorIs(t, err, types.ErrInvalidID)
			},
		},
		{
			name: "blank name is rejected",
			check: func(t *testing.T, s *Synchronizer) {
				_, err := s.CreateTemplate(ctx, &types.Template{Name: "  ", OwnerID: types.StringPtr("u1")})
				assert.ErrorIs(t, err, types.ErrInvalidName)
			},
		},
		{
			name: "user records survive a sync",
			check: func(t *testing.T, s *Synchronizer) {
				mine, err := s.CreateTemplate(ctx, &types.Template{
					Taxonomy: types.TaxonomySource, Name: "My Ads", OwnerID: types.StringPtr("u1"),
				})
				require.NoError(t, err)
				_, err = s.SyncByType(ctx, types.TaxonomySource)
				require.NoError(t, err)

				got, err := s.store.SelectWhere(ctx, types.Filter{types.FilterTemplateID: mine.TemplateID})
				require.NoError(t, err)
				assert.Len(t, got, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, New(scenarioCatalog, setupStore(t)))
		})
	}
}
