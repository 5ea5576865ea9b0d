package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/templatesync"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func newSyncCmd(a *app) *cobra.Command {
	var concurrent bool
	cmd := &cobra.Command{
		Use:   "sync [source|page|action|all]",
		Short: "Replace system-owned templates with the catalog",
		Long: "Delete the system-owned templates of a taxonomy and re-insert the catalog\n" +
			"entries that classify into it. User-owned templates are never touched.\n" +
			"If a sync fails midway, run it again.",
		Args: argsRange(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taxonomies := types.Taxonomies
			if len(args) == 1 && args[0] != "all" {
				t, err := types.ParseTaxonomy(args[0])
				if err != nil {
					return err
				}
				taxonomies = []types.Taxonomy{t}
			}

			p, err := a.provider()
			if err != nil {
				return err
			}

			return a.withStore(func(s *session) error {
				syncer := templatesync.New(p, s.templates)
				results, err := runSync(cmd, syncer, taxonomies, concurrent)
				for _, r := range results {
					a.logger.Info("synced",
						zap.String("taxonomy", string(r.Taxonomy)),
						zap.Int("deleted", r.DeletedCount),
						zap.Int("inserted", r.InsertedCount))
				}
				if err != nil {
					return fmt.Errorf("sync: %w", err)
				}
				return a.emit(results, func() error {
					rows := make([][]string, 0, len(results))
					for _, r := range results {
						rows = append(rows, []string{
							string(r.Taxonomy), strconv.Itoa(r.DeletedCount), strconv.Itoa(r.InsertedCount),
						})
					}
					return a.printTable([]string{"TAXONOMY", "DELETED", "INSERTED"}, rows)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "sync taxonomies in parallel")
	return cmd
}

func runSync(cmd *cobra.Command, s *templatesync.Synchronizer, taxonomies []types.Taxonomy, concurrent bool) ([]templatesync.Result, error) {
	if concurrent {
		return s.SyncConcurrently(cmd.Context(), taxonomies...)
	}
	var results []templatesync.Result
	for _, t := range taxonomies {
		r, err := s.SyncByType(cmd.Context(), t)
		results = append(results, r)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
