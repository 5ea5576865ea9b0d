package templatesync

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/funnelkit/internal/classify"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// CreateTemplate inserts a single user-owned record. The record must carry an
// owner; an empty taxonomy is filled in by the classifier. Creation is
// rejected with ErrDuplicateName when the owner already has a record with the
// exact same name.
func (s *Synchronizer) CreateTemplate(ctx context.Context, rec *types.Template) (*types.Template, error) {
	if rec == nil {
		return nil, types.ErrInvalidData
	}
	if rec.OwnerID == nil || *rec.OwnerID == "" {
		return nil, &types.ValidationError{Field: "owner_id", Err: types.ErrInvalidID}
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return nil, &types.ValidationError{Field: "name", Err: types.ErrInvalidName}
	}
	if rec.Taxonomy == "" {
		rec.Taxonomy = classify.Classify(rec)
	}

	existing, err := s.store.SelectWhere(ctx, types.Filter{
		types.FilterOwnerID: *rec.OwnerID,
		types.FilterName:    rec.Name,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, &types.ValidationError{Field: "name", Value: rec.Name, Err: types.ErrDuplicateName}
	}

	inserted, err := s.store.InsertMany(ctx, []*types.Template{rec})
	if err != nil {
		return nil, err
	}
	return inserted[0], nil
}
