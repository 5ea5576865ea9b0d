package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/funnelkit/internal/categorize"
	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage normalized categories",
	}
	cmd.AddCommand(
		newCategoryCreateCmd(a),
		newCategoryListCmd(a),
		newCategoryDeactivateCmd(a),
		newCategoryDeleteCmd(a),
	)
	return cmd
}

func newCategoryCreateCmd(a *app) *cobra.Command {
	var (
		cand     categorize.Candidate
		taxonomy string
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Long: "Create a category. An existing category with the same name is returned\n" +
			"instead; similar names are listed and need --yes to proceed.",
		Args: argsExactly(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := types.ParseTaxonomy(taxonomy)
			if err != nil {
				return err
			}
			cand.Name = args[0]
			cand.Taxonomy = t

			return a.withStore(func(s *session) error {
				out, err := categorize.New(s.templates, s.categories).CreateCategory(cmd.Context(), cand)
				if err != nil {
					return err
				}
				return a.emit(out, func() error {
					switch out.Status {
					case categorize.Created:
						_, err = fmt.Fprintf(a.out, "created %s (%s)\n", out.Category.Slug, out.Category.CategoryID)
					case categorize.Duplicate:
						_, err = fmt.Fprintf(a.out, "category %q already exists: %s (%s)\n",
							out.Category.Name, out.Category.Slug, out.Category.CategoryID)
					case categorize.NeedsConfirmation:
						fmt.Fprintln(a.out, "similar categories exist; re-run with --yes to create anyway:")
						err = a.printCategories(out.Similar)
					}
					return err
				})
			})
		},
	}
	cmd.Flags().StringVar(&taxonomy, "taxonomy", "", "taxonomy (source, page or action)")
	cmd.Flags().StringVar(&cand.Slug, "slug", "", "slug (derived from the name when empty)")
	cmd.Flags().StringVar(&cand.Description, "description", "", "description")
	cmd.Flags().StringVar(&cand.Color, "color", "", "display color")
	cmd.Flags().StringVar(&cand.Icon, "icon", "", "display icon")
	cmd.Flags().BoolVarP(&cand.Confirmed, "yes", "y", false, "create even when similar categories exist")
	return cmd
}

func newCategoryListCmd(a *app) *cobra.Command {
	var (
		taxonomy string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  argsExactly(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t types.Taxonomy
			if taxonomy != "" {
				var err error
				if t, err = types.ParseTaxonomy(taxonomy); err != nil {
					return err
				}
			}
			return a.withStore(func(s *session) error {
				cats, err := categorize.New(s.templates, s.categories).List(cmd.Context(), t, all)
				if err != nil {
					return err
				}
				return a.emit(cats, func() error { return a.printCategories(cats) })
			})
		},
	}
	cmd.Flags().StringVar(&taxonomy, "taxonomy", "", "only this taxonomy")
	cmd.Flags().BoolVar(&all, "all", false, "include inactive categories")
	return cmd
}

func newCategoryDeactivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <category-id>",
		Short: "Deactivate a category",
		Args:  argsExactly(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *session) error {
				c, err := categorize.New(s.templates, s.categories).DeactivateCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.emit(c, func() error {
					_, err := fmt.Fprintf(a.out, "deactivated %s\n", c.Slug)
					return err
				})
			})
		},
	}
}

func newCategoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category-id>",
		Short: "Delete a user-defined category",
		Args:  argsExactly(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *session) error {
				if err := categorize.New(s.templates, s.categories).DeleteCategory(cmd.Context(), args[0]); err != nil {
					return err
				}
				return a.emit(map[string]string{"deleted": args[0]}, func() error {
					_, err := fmt.Fprintf(a.out, "deleted %s\n", args[0])
					return err
				})
			})
		},
	}
}

func (a *app) printCategories(cats []*types.Category) error {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.CategoryID, string(c.Taxonomy), c.Slug, c.Name,
			strconv.FormatBool(c.IsSystemDefined), strconv.FormatBool(c.IsActive),
		})
	}
	return a.printTable([]string{"ID", "TAXONOMY", "SLUG", "NAME", "SYSTEM", "ACTIVE"}, rows)
}
