package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/search"
)

func (a *app) listCmd() *cobra.Command {
	var (
		query   string
		filters model.SearchFilters
		sortBy  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search the prompt catalog",
		Long: `Lists prompts matching every given filter.

The query matches title, description and tags, ignoring case. Tags must
all be present on a prompt. --sort accepts popular, newest, rating or usage;
anything else keeps catalog order.

Examples:
  promptctl list --query seo
  promptctl list --category coding --sort rating
  promptctl list --model Claude --rating 4.8 --tag script`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.SortBy = search.ParseSortBy(sortBy)
			prompts, err := a.catalog.Search(query, filters)
			if err != nil {
				return err
			}
			a.printPrompts(cmd.OutOrStdout(), prompts)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&query, "query", "q", "", "Free-text search over title, description and tags")
	f.StringVarP(&filters.Category, "category", "c", "", "Category id (e.g. writing)")
	f.StringVarP(&filters.AIModel, "model", "m", "", "AI model the prompt must support")
	f.Float64Var(&filters.Rating, "rating", 0, "Minimum rating, 0 to 5")
	f.StringSliceVarP(&filters.Tags, "tag", "t", nil, "Required tag (repeatable)")
	f.StringVarP(&sortBy, "sort", "s", string(model.SortPopular), "Sort order: popular, newest, rating, usage")
	return cmd
}

func (a *app) printPrompts(w io.Writer, prompts []model.Prompt) {
	if len(prompts) == 0 {
		fmt.Fprintln(w, "No prompts found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tRATING\tUSES\tMODELS")
	for _, p := range prompts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%d\t%s\n",
			p.ID, p.Title, a.catalog.CategoryName(p.Category), p.Rating, p.Usage,
			strings.Join(p.AIModel, ", "))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d prompts\n", len(prompts))
}
