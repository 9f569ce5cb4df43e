// Package commands implements the CLI commands for jobsync.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/jobsync/internal/app"
	"go.trai.ch/jobsync/internal/build"
)

// CLI represents the command line interface for jobsync.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	json       bool
}

// Application represents the application logic interface.
type Application interface {
	Search(ctx context.Context, opts app.SearchOptions) error
	Show(ctx context.Context, opts app.Options, ref string) error
	ListBookmarks(ctx context.Context, opts app.Options, details bool) error
	AddBookmark(ctx context.Context, opts app.Options, ref string) error
	RemoveBookmark(ctx context.Context, opts app.Options, ref string) error
	ToggleBookmark(ctx context.Context, opts app.Options, ref string) error
	Browse(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "jobsync",
		Short:         "Search remote job listings and keep bookmarks in sync",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVar(&c.json, "json", false, "Write logs as JSON")

	rootCmd.AddCommand(c.newSearchCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newBookmarksCmd())
	rootCmd.AddCommand(c.newBrowseCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) options() app.Options {
	return app.Options{ConfigPath: c.configPath, JSON: c.json}
}
