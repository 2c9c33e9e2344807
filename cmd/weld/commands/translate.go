package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/weld/internal/core/domain"
)

func (c *CLI) newTranslateCmd() *cobra.Command {
	var (
		force    bool
		share    bool
		callFunc string
		callArgs []string
	)

	cmd := &cobra.Command{
		Use:   "translate [units...]",
		Short: "Generate or refresh artifacts for source units",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			opts := domain.TranslateOptions{
				ShareContext: share,
				CallFunc:     callFunc,
				CallArgs:     callArgs,
				Force:        force,
			}

			for _, name := range args {
				tr, err := c.app.Translate(cmd.Context(), name, opts)
				if err != nil {
					return err
				}
				state := "cached"
				if tr.Regenerated {
					state = "generated"
				}
				cmd.Printf("%s\t%s\t%s\n", tr.Identifier, state, tr.ArtifactPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate even when the artifact is current")
	cmd.Flags().BoolVar(&share, "share", true, "Bind the artifact to the shared context")
	cmd.Flags().StringVar(&callFunc, "callfunc", "import", "Literal bound to the artifact's callfunc variable")
	cmd.Flags().StringArrayVar(&callArgs, "callarg", nil, "Value appended to the artifact's callargs list")

	return cmd
}
