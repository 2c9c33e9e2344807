// Package commands implements the CLI commands for the weld translation tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/weld/internal/adapters/config"
	"go.trai.ch/weld/internal/app"
)

// CLI represents the command line interface for weld.
type CLI struct {
	app        *app.App
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance from the initialized components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "weld",
		Short:         "Incremental source translation with cached artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "weld.yaml", "Path to configuration file")

	cli := &CLI{
		app:        c.App,
		components: c,
		rootCmd:    rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		if fl, ok := c.ConfigLoader.(*config.FileConfigLoader); ok {
			fl.Filename = path
		}
		cfg, err := c.ConfigLoader.Load(".")
		if err != nil {
			return err
		}
		return c.App.Configure(cfg)
	}

	rootCmd.AddCommand(cli.newTranslateCmd())
	rootCmd.AddCommand(cli.newRunCmd())
	rootCmd.AddCommand(cli.newStatusCmd())
	rootCmd.AddCommand(cli.newCleanCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
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
