package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/stats"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-taxonomy totals and bucket counts",
		Args:  argsExactly(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *session) error {
				recs, err := s.templates.SelectWhere(cmd.Context(), types.Filter{})
				if err != nil {
					return err
				}
				b := stats.Compute(recs)
				for _, d := range b.Discrepancies {
					a.logger.Warn("bucket sum mismatch",
						zap.String("taxonomy", string(d.Taxonomy)),
						zap.Int("total", d.Total),
						zap.Int("bucket_sum", d.BucketSum))
				}
				return a.emit(b, func() error { return a.printStats(b) })
			})
		},
	}
}

func (a *app) printStats(b types.StatsBreakdown) error {
	var rows [][]string
	for _, t := range types.Taxonomies {
		rows = append(rows, []string{string(t), "total", strconv.Itoa(b.PerTaxonomyTotal[t])})
		for _, bc := range b.PerTaxonomyBuckets[t] {
			rows = append(rows, []string{"", bc.Name, strconv.Itoa(bc.Count)})
		}
	}
	if err := a.printTable([]string{"TAXONOMY", "BUCKET", "COUNT"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "total: %d\n", b.Total)
	return err
}
