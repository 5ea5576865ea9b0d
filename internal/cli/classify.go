package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/funnelkit/internal/classify"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

type classifyResult struct {
	Label    string         `json:"label"`
	Category string         `json:"category,omitempty"`
	Type     string         `json:"type,omitempty"`
	Taxonomy types.Taxonomy `json:"taxonomy"`
}

func newClassifyCmd(a *app) *cobra.Command {
	var (
		category, kind string
		wholeCatalog   bool
	)
	cmd := &cobra.Command{
		Use:   "classify [label]",
		Short: "Show the taxonomy a template would be classified into",
		Long: "Classify a label (with optional --category and --type), or every entry of\n" +
			"the catalog with --catalog.",
		Example: "  funnelkit classify \"Landing Page Ads\" --category traffic-sources-paid\n" +
			"  funnelkit classify --catalog",
		Args: argsRange(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []classifyResult
			if wholeCatalog {
				p, err := a.provider()
				if err != nil {
					return err
				}
				for _, d := range p.Definitions() {
					results = append(results, classifyResult{
						Label: d.Label, Category: d.Category, Type: d.Type, Taxonomy: classify.Classify(d),
					})
				}
			} else {
				label := strings.Join(args, " ")
				s := types.Signals{Category: category, Type: kind, Label: label}
				results = append(results, classifyResult{
					Label: label, Category: category, Type: kind, Taxonomy: classify.ClassifySignals(s),
				})
			}

			return a.emit(results, func() error {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{orDash(r.Label), orDash(r.Category), orDash(r.Type), string(r.Taxonomy)})
				}
				return a.printTable([]string{"LABEL", "CATEGORY", "TYPE", "TAXONOMY"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "legacy category label")
	cmd.Flags().StringVar(&kind, "type", "", "template type")
	cmd.Flags().BoolVar(&wholeCatalog, "catalog", false, "classify every catalog entry")
	return cmd
}
