package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/runcfg/internal/output"
	"github.com/wesleyorama2/runcfg/pkg/jsonpath"
)

func newResolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the fully resolved configuration",
		Long: `Resolve merges the configuration over its preset, applies defaults and
validates the result before printing it.

Use --get with a JSONPath expression to print a single field, e.g.
  runcfg resolve --get '$.moduleFileExtensions[0]'
  runcfg resolve --get "$.transform['^.+\.ts$'][0]"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatFlag, _ := cmd.Flags().GetString("format")
			gets, _ := cmd.Flags().GetStringArray("get")
			verbose, _ := cmd.Flags().GetBool("verbose")

			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			cfg, _, err := a.resolve(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(gets) > 0 {
				data, err := json.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("error encoding configuration: %w", err)
				}
				return printFields(cmd, string(data), gets)
			}

			formatter := output.GetFormatter(format, verbose || cfg.VerboseOutput(), a.noColor())
			text, err := formatter.FormatConfiguration(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().StringArray("get", nil, "print only the value at this JSONPath (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "show transformer options in text output")

	return cmd
}

// printFields prints one value per line for a single path, and
// "path = value" lines in flag order for several.
func printFields(cmd *cobra.Command, data string, paths []string) error {
	out := cmd.OutOrStdout()
	if len(paths) == 1 {
		value, err := jsonpath.Extract(data, paths[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	}

	byPath := make(map[string]string, len(paths))
	for _, p := range paths {
		byPath[p] = p
	}
	values, err := jsonpath.ExtractMultiple(data, byPath)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(out, "%s = %s\n", p, values[p])
	}
	return nil
}
