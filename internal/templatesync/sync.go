// Package templatesync replicates the in-code template catalog into the
// record store, one taxonomy at a time.
//
// A sync deletes every system-owned record of the taxonomy and re-inserts the
// catalog entries that classify into it. User-owned records are excluded by
// the delete filter itself and are never touched. The two steps are not
// atomic: if the insert fails, the taxonomy has no system-owned records until
// SyncByType is run again. Re-running is safe because the delete step matches
// nothing the second time round.
package templatesync

import (
	"context"

	"github.com/mesh-intelligence/funnelkit/internal/catalog"
	"github.com/mesh-intelligence/funnelkit/internal/classify"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// Result reports what one sync changed.
type Result struct {
	Taxonomy      types.Taxonomy `json:"taxonomy,omitempty"`
	DeletedCount  int            `json:"deleted_count"`
	InsertedCount int            `json:"inserted_count"`
}

// Synchronizer reconciles the record store against a catalog provider.
type Synchronizer struct {
	catalog catalog.Provider
	store   types.TemplateStore
}

// New returns a Synchronizer reading from provider and writing to store.
func New(provider catalog.Provider, store types.TemplateStore) *Synchronizer {
	return &Synchronizer{catalog: provider, store: store}
}

// SyncByType replaces the system-owned records of taxonomy t with the
// catalog entries that classify as t. Store errors are returned unmodified.
func (s *Synchronizer) SyncByType(ctx context.Context, t types.Taxonomy) (Result, error) {
	res := Result{Taxonomy: t}
	if !t.Valid() {
		return res, &types.ValidationError{Field: "taxonomy", Value: string(t), Err: types.ErrInvalidTaxonomy}
	}

	deleted, err := s.store.DeleteWhere(ctx, types.SystemOwned(t))
	if err != nil {
		return res, err
	}
	res.DeletedCount = deleted

	defs := classify.Filter(s.catalog.Definitions(), t)
	if len(defs) == 0 {
		return res, nil
	}
	records := make([]*types.Template, 0, len(defs))
	for _, d := range defs {
		records = append(records, FromDefinition(d, t))
	}

	inserted, err := s.store.InsertMany(ctx, records)
	if err != nil {
		return res, err
	}
	res.InsertedCount = len(inserted)
	return res, nil
}

// SyncAll syncs every taxonomy in order and returns the summed result. It
// stops at the first failure; taxonomies already synced stay synced.
func (s *Synchronizer) SyncAll(ctx context.Context) (Result, error) {
	var total Result
	for _, t := range types.Taxonomies {
		res, err := s.SyncByType(ctx, t)
		total.DeletedCount += res.DeletedCount
		total.InsertedCount += res.InsertedCount
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// FromDefinition converts a catalog entry into a system-owned record of
// taxonomy t.
func FromDefinition(d types.TemplateDefinition, t types.Taxonomy) *types.Template {
	tags := append([]string{}, d.Tags...)
	config := make(map[string]any, len(d.DefaultConfiguration))
	for k, v := range d.DefaultConfiguration {
		config[k] = v
	}
	return &types.Template{
		Taxonomy:      t,
		Name:          d.Label,
		Description:   d.Description,
		Category:      d.Category,
		Status:        types.StatusActive,
		Tags:          tags,
		Icon:          d.Icon,
		Color:         d.Color,
		Configuration: config,
	}
}
