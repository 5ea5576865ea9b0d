package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/categorize"
)

func newCategorizeCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Assign normalized categories to uncategorized templates",
		Long: "Map each template without a valid category through the legacy label table,\n" +
			"falling back to its taxonomy's \"other\" category.",
		Args: argsExactly(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *session) error {
				r := categorize.New(s.templates, s.categories)
				if dryRun {
					unmapped, err := r.Unmapped(cmd.Context())
					if err != nil {
						return err
					}
					return a.emit(map[string]int{"unmapped_count": len(unmapped)}, func() error {
						_, err := fmt.Fprintf(a.out, "%d templates need a category\n", len(unmapped))
						return err
					})
				}

				res, err := r.AutoCategorize(cmd.Context())
				a.logger.Info("categorized",
					zap.Int("categorized", res.CategorizedCount),
					zap.Int("fallback", res.FallbackCount))
				if err != nil {
					return fmt.Errorf("categorize: %w", err)
				}
				return a.emit(res, func() error {
					_, err := fmt.Fprintf(a.out, "categorized %d templates (%d as other)\n",
						res.CategorizedCount, res.FallbackCount)
					return err
				})
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only count templates that need a category")
	return cmd
}
