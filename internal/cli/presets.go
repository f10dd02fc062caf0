package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/runcfg/internal/config"
	"github.com/wesleyorama2/runcfg/internal/output"
	"github.com/wesleyorama2/runcfg/internal/preset"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := preset.Builtin().Names()
			fmt.Fprint(cmd.OutOrStdout(), output.NewFormatter(false, a.noColor()).FormatPresets(names, a.v.GetString("presets")))
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema configuration files are checked against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.DocumentSchema())
			return nil
		},
	}
}
