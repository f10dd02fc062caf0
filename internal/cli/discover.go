package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/runcfg/internal/discovery"
	"github.com/wesleyorama2/runcfg/internal/output"
)

func newDiscoverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List the test files the configuration selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			formatFlag, _ := cmd.Flags().GetString("format")
			verbose, _ := cmd.Flags().GetBool("verbose")

			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			cfg, _, err := a.resolve(cmd)
			if err != nil {
				return err
			}

			files, err := discovery.Discover(cmd.Context(), os.DirFS(root), cfg, discovery.Options{Logger: a.log})
			if err != nil {
				return fmt.Errorf("error discovering test files in %s: %w", root, err)
			}

			formatter := output.GetFormatter(format, verbose || cfg.VerboseOutput(), a.noColor())
			text, err := formatter.FormatTestFiles(files)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().String("root", ".", "directory to search for test files")
	cmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().BoolP("verbose", "v", false, "show the pattern each file matched")

	return cmd
}
