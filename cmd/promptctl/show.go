package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a prompt with its variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}
			preview, err := a.catalog.Preview(p.ID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (#%s)\n", p.Title, p.ID)
			fmt.Fprintf(w, "%s\n\n", p.Description)
			fmt.Fprintf(w, "Category: %s\n", a.catalog.CategoryName(p.Category))
			fmt.Fprintf(w, "Models:   %s\n", strings.Join(p.AIModel, ", "))
			fmt.Fprintf(w, "Tags:     %s\n", strings.Join(p.Tags, ", "))
			fmt.Fprintf(w, "Rating:   %.1f (%d uses) by %s\n\n", p.Rating, p.Usage, p.Author)

			fmt.Fprintln(w, "Template:")
			fmt.Fprintf(w, "%s\n\n", p.Content)

			if len(p.Variables) > 0 {
				fmt.Fprintln(w, "Variables:")
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				for _, v := range p.Variables {
					req := "optional"
					if v.Required {
						req = "required"
					}
					fmt.Fprintf(tw, "  %s\t%s\te.g. %q\n", v.Name, req, v.Placeholder)
				}
				tw.Flush()
				fmt.Fprintln(w)
			}
			if len(preview.Undeclared) > 0 {
				fmt.Fprintf(w, "Undeclared placeholders: %s\n\n", strings.Join(preview.Undeclared, ", "))
			}

			fmt.Fprintln(w, "Example:")
			fmt.Fprintln(w, preview.Content)
			return nil
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List prompt categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPROMPTS\tIN CATALOG\tDESCRIPTION")
			for _, c := range a.catalog.Categories() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
					c.ID, c.Name, c.PromptCount, c.LiveCount, c.Description)
			}
			return tw.Flush()
		},
	}
}
