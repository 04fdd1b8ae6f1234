package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <description-file>",
		Short: "Check that a run description parses and converts cleanly",
		Long: `Check that a run description file parses at its native version and can
be converted to the current schema version. Exits non-zero when the file
is malformed, declares an unknown version, or cannot be converted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, args[0])
		},
	}
	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, input string) error {
	doc, format, err := readDescription(input)
	if err != nil {
		return err
	}

	if _, err := versioning.ToCurrent(doc); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		StyleSuccess.Render("✓"),
		StyleValue.Render(input),
		StyleDim.Render(fmt.Sprintf("(version %d, %s)", doc.Version(), format)))
	return nil
}
