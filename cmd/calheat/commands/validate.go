package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/calheat/pkg/config"
)

// Validation errors.
var (
	ErrNoConfigFile  = errors.New("no config file given (pass a path or --config)")
	ErrInvalidConfig = errors.New("config file does not match the schema")
)

// NewValidateCommand creates the validate subcommand, which checks a config
// file against the embedded JSON Schema.
func NewValidateCommand(global *GlobalOptions) *cobra.Command {
	var colorize, nocolor, printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a config file against the calheat schema",
		Long: `Validate checks a YAML or JSON config file against the embedded schema.

Examples:
  calheat validate .calheat.yaml
  calheat --config ops.yaml validate
  calheat validate --schema > calheat.schema.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nocolor {
				color.NoColor = true //nolint:reassign // intentional override of library global
			} else if colorize {
				color.NoColor = false //nolint:reassign // intentional override of library global
			}

			out := cmd.OutOrStdout()

			if printSchema {
				_, err := out.Write(config.Schema())

				return err
			}

			path := global.ConfigPath
			if len(args) > 0 {
				path = args[0]
			}

			if path == "" {
				return ErrNoConfigFile
			}

			violations, err := config.ValidateFile(path)
			if err != nil {
				return err
			}

			if len(violations) == 0 {
				color.New(color.FgGreen).Fprintf(out, "Config is valid (%s)\n", path)

				return nil
			}

			color.New(color.FgRed).Fprintf(out, "Config validation failed (%s)\n", path)
			fmt.Fprintf(out, "\nErrors:\n")

			for _, v := range violations {
				if v.Value != nil {
					color.New(color.FgRed).Fprintf(out, "  - %s (got %v)\n", v, v.Value)
				} else {
					color.New(color.FgRed).Fprintf(out, "  - %s\n", v)
				}
			}

			return fmt.Errorf("%w: %d errors", ErrInvalidConfig, len(violations))
		},
	}

	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&printSchema, "schema", false, "print the embedded JSON Schema and exit")

	return cmd
}
