package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize funnelkit storage",
		Long: "Create the configuration and data directories, build the store and seed\n" +
			"the system categories. Running init again is harmless.",
		Args: argsExactly(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *session) error {
				cats, err := s.categories.SelectWhere(cmd.Context(), nil)
				if err != nil {
					return err
				}
				a.logger.Info("initialized",
					zap.String("data_dir", s.dataDir), zap.Int("categories", len(cats)))
				return a.emit(map[string]any{
					"config_dir": a.configDir,
					"data_dir":   s.dataDir,
					"categories": len(cats),
				}, func() error {
					_, err := fmt.Fprintf(a.out, "funnelkit initialized in %s (%d categories)\n", s.dataDir, len(cats))
					return err
				})
			})
		},
	}
}
