package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/funnelkit/internal/templatesync"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage template records",
	}
	cmd.AddCommand(
		newTemplateCreateCmd(a),
		newTemplateListCmd(a),
		newTemplateDeleteCmd(a),
	)
	return cmd
}

func newTemplateCreateCmd(a *app) *cobra.Command {
	var (
		owner, taxonomy, category, description string
		tags                                   []string
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a user-owned template",
		Long: "Create a user-owned template. Without --taxonomy the template is\n" +
			"classified from its category label and name.",
		Args: argsExactly(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &types.Template{
				Name:        args[0],
				Category:    category,
				Description: description,
				OwnerID:     types.StringPtr(owner),
				Tags:        tags,
			}
			if taxonomy != "" {
				t, err := types.ParseTaxonomy(taxonomy)
				if err != nil {
					return err
				}
				rec.Taxonomy = t
			}
			return a.withStore(func(s *session) error {
				created, err := templatesync.New(nil, s.templates).CreateTemplate(cmd.Context(), rec)
				if err != nil {
					return err
				}
				a.logger.Debug("template created",
					zap.String("id", created.TemplateID),
					zap.String("taxonomy", string(created.Taxonomy)))
				return a.emit(created, func() error {
					_, err := fmt.Fprintf(a.out, "created %s (%s) in %s\n",
						created.Name, created.TemplateID, created.Taxonomy)
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner ID")
	cmd.Flags().StringVar(&taxonomy, "taxonomy", "", "taxonomy (classified when empty)")
	cmd.Flags().StringVar(&category, "category", "", "legacy category label")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	return cmd
}

func newTemplateListCmd(a *app) *cobra.Command {
	var (
		taxonomy, owner string
		system          bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  argsExactly(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if system && owner != "" {
				return usageError{fmt.Errorf("--system and --owner are mutually exclusive")}
			}
			filter := types.Filter{}
			if taxonomy != "" {
				t, err := types.ParseTaxonomy(taxonomy)
				if err != nil {
					return err
				}
				filter[types.FilterTaxonomy] = t
			}
			switch {
			case system:
				filter[types.FilterOwnerID] = types.Null
			case owner != "":
				filter[types.FilterOwnerID] = owner
			}
			return a.withStore(func(s *session) error {
				recs, err := s.templates.SelectWhere(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return a.emit(recs, func() error {
					rows := make([][]string, 0, len(recs))
					for _, r := range recs {
						rows = append(rows, []string{
							r.TemplateID, string(r.Taxonomy), r.Name,
							orDash(r.Category), orDash(r.CategoryID), orDash(r.Owner()),
						})
					}
					return a.printTable([]string{"ID", "TAXONOMY", "NAME", "LABEL", "CATEGORY", "OWNER"}, rows)
				})
			})
		},
	}
	cmd.Flags().StringVar(&taxonomy, "taxonomy", "", "only this taxonomy")
	cmd.Flags().StringVar(&owner, "owner", "", "only templates of this owner")
	cmd.Flags().BoolVar(&system, "system", false, "only system-owned templates")
	return cmd
}

func newTemplateDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template-id>...",
		Short: "Delete templates by ID",
		Args:  argsMin(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *session) error {
				n, err := templatesync.New(nil, s.templates).DeleteTemplates(cmd.Context(), args)
				if err != nil {
					return err
				}
				return a.emit(map[string]int{"deleted_count": n}, func() error {
					_, err := fmt.Fprintf(a.out, "deleted %d templates\n", n)
					return err
				})
			})
		},
	}
}
