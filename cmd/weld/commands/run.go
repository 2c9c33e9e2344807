package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/weld/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var entry string

	cmd := &cobra.Command{
		Use:   "run <unit> [args...]",
		Short: "Translate a unit, merge its includes and invoke its entry function",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := domain.DefaultMergeOptions()
			opts.CallArgs = args[1:]
			return c.app.Run(cmd.Context(), args[0], entry, opts)
		},
	}

	cmd.Flags().StringVar(&entry, "entry", "main", "Name of the entry function in the merged scope")

	return cmd
}
