package templatesync

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// SyncConcurrently runs SyncByType for each taxonomy in parallel (all of them
// when none are given). It waits for every sync to settle and returns the
// first error. Completed syncs are not rolled back. Results are returned in
// argument order; a failed taxonomy reports whatever it managed to do.
func (s *Synchronizer) SyncConcurrently(ctx context.Context, taxonomies ...types.Taxonomy) ([]Result, error) {
	if len(taxonomies) == 0 {
		taxonomies = types.Taxonomies
	}
	results := make([]Result, len(taxonomies))

	// No derived context: a failing sync must not cancel its siblings.
	var g errgroup.Group
	for i, t := range taxonomies {
		g.Go(func() error {
			res, err := s.SyncByType(ctx, t)
			results[i] = res
			return err
		})
	}
	return results, g.Wait()
}

// DeleteTemplates deletes each record by ID in parallel. It waits for every
// delete to settle and returns the number deleted along with the first error.
func (s *Synchronizer) DeleteTemplates(ctx context.Context, ids []string) (int, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		deleted int
	)
	for _, id := range ids {
		g.Go(func() error {
			if id == "" {
				return types.ErrInvalidID
			}
			n, err := s.store.DeleteWhere(ctx, types.Filter{types.FilterTemplateID: id})
			if err != nil {
				return err
			}
			if n == 0 {
				return types.ErrNotFound
			}
			mu.Lock()
			deleted += n
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return deleted, err
}
