package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/labkit-io/rundesc/pkg/rundesc"
	"github.com/labkit-io/rundesc/pkg/rundesc/serialize"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	toVersion int    // target schema version (-1: config default)
	format    string // output format (empty: inferred)
	output    string // output file path (stdout if empty)
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{toVersion: -1}

	cmd := &cobra.Command{
		Use:   "convert <description-file>",
		Short: "Convert a run description to another schema version or format",
		Long: `Convert a run description file to another schema version or exchange format.

The input version is read from the file itself. The target version defaults
to the storage version (or the config file's target_version). The output
format defaults to the output file's extension, then the config file's
format, then the input format.

Downgrades may drop fields the older schema cannot represent.

Examples:
  rundesc convert run.json                        # rewrite at storage version
  rundesc convert run.json -t 1 -o run_v1.yaml    # upgrade and switch format
  rundesc convert old.yaml -f json                # YAML to JSON on stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.toVersion, "to-version", "t", opts.toVersion, "target schema version (default: storage version)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: json or yaml (default: inferred)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, opts convertOpts) error {
	doc, inFormat, err := readDescription(input)
	if err != nil {
		return err
	}

	target := opts.toVersion
	if target < 0 {
		target = c.Config.TargetVersion
	}

	format, err := c.outputFormat(opts, inFormat)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeDescription(w, doc, target, format); err != nil {
		return err
	}
	// Terminate stdout output so the shell prompt stays on its own line.
	if opts.output == "" && format == FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	c.Logger.Info("converted run description",
		"input", input,
		"from", doc.Version(),
		"to", target,
		"format", format)

	if opts.output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), StyleSuccess.Render("✓"), StyleValue.Render(opts.output))
	}
	return nil
}

// outputFormat picks the output format: flag, then output extension, then
// config, then the input format.
func (c *CLI) outputFormat(opts convertOpts, inFormat string) (string, error) {
	if opts.format != "" {
		return opts.format, validateFormat(opts.format)
	}
	if opts.output != "" {
		if format, err := formatFromPath(opts.output); err == nil {
			return format, nil
		}
	}
	if c.Config.Format != "" {
		return c.Config.Format, nil
	}
	return inFormat, nil
}

func writeDescription(w io.Writer, doc rundesc.Describer, version int, format string) error {
	switch format {
	case FormatYAML:
		return serialize.WriteYAMLAsVersion(w, doc, version)
	default:
		return serialize.WriteJSONAsVersion(w, doc, version)
	}
}
