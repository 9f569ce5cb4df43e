package commands

import "github.com/spf13/cobra"

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a job item",
		Long:  "Show the details of a job item. The id may be given as 42, #42 or #/42.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Show(cmd.Context(), c.options(), args[0])
		},
	}
}
