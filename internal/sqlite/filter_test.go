package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func TestBuildWhere(t *testing.T) {
	tests := []struct {
		name     string
		filter   types.Filter
		wantSQL  string
		wantArgs []any
		wantErr  error
	}{
		{name: "nil filter", filter: nil},
		{
			name:     "system owned",
			filter:   types.SystemOwned(types.TaxonomyAction),
			wantSQL:  "owner_id IS NULL AND taxonomy = ?",
			wantArgs: []any{"action"},
		},
		{
			name:     "bool value",
			filter:   types.Filter{types.FilterIsActive: true, types.FilterSlug: "x"},
			wantSQL:  "is_active = ? AND slug = ?",
			wantArgs: []any{int64(1), "x"},
		},
		{name: "unknown key", filter: types.Filter{"nope": "x"}, wantErr: types.ErrInvalidFilter},
		{name: "unsupported value", filter: types.Filter{types.FilterName: 3}, wantErr: types.ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := templateFilterColumns
			if _, ok := tt.filter[types.FilterIsActive]; ok {
				cols = categoryFilterColumns
			}
			sql, args, err := buildWhere(tt.filter, cols)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
