package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether recorded artifacts are still current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.Status(cmd.Context())
			if err != nil {
				return err
			}

			for _, st := range statuses {
				cmd.Printf("%s\t%s\t%s\n", st.Record.Identifier, st.State, st.Record.SourcePath)
			}
			return nil
		},
	}
}
