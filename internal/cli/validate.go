package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/runcfg/internal/output"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file and report every violation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := a.resolve(cmd)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), output.NewFormatter(false, a.noColor()).FormatValid(path))
			return nil
		},
	}
}
