package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/jobsync/internal/app"
)

func (c *CLI) newBookmarksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "Manage bookmarked job items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ListBookmarks(cmd.Context(), c.options(), false)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List bookmarked job items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			details, _ := cmd.Flags().GetBool("details")
			return c.app.ListBookmarks(cmd.Context(), c.options(), details)
		},
	}
	list.Flags().BoolP("details", "d", false, "Fetch and print every bookmarked job item")

	cmd.AddCommand(
		list,
		c.bookmarkCmd("add <id>", "Bookmark a job item", c.app.AddBookmark),
		c.bookmarkCmd("remove <id>", "Remove a bookmark", c.app.RemoveBookmark),
		c.bookmarkCmd("toggle <id>", "Bookmark a job item, or remove its bookmark", c.app.ToggleBookmark),
	)

	return cmd
}

func (c *CLI) bookmarkCmd(
	use, short string,
	fn func(ctx context.Context, opts app.Options, ref string) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fn(cmd.Context(), c.options(), args[0])
		},
	}
}
