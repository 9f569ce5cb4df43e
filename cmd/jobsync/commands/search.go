package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/jobsync/internal/app"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <text>...",
		Short: "Search job listings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sortName, _ := cmd.Flags().GetString("sort")
			page, _ := cmd.Flags().GetInt("page")

			sortBy, err := domain.ParseSortBy(sortName)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid --sort flag"), "sort", sortName)
			}

			return c.app.Search(cmd.Context(), app.SearchOptions{
				Options: c.options(),
				Text:    strings.Join(args, " "),
				SortBy:  sortBy,
				Page:    page,
			})
		},
	}

	cmd.Flags().StringP("sort", "s", string(domain.SortRelevant), "Sort order, 'relevant' or 'recent'")
	cmd.Flags().IntP("page", "p", 1, "Page of results to print")

	return cmd
}
