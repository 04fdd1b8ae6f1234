package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/labkit-io/rundesc/pkg/rundesc"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <description-file>",
		Short: "Show the contents of a run description file",
		Long: `Show the contents of a run description file at its native version:
the schema version, the registered parameters with their relations, and
any recorded result shapes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0])
		},
	}
	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, input string) error {
	doc, format, err := readDescription(input)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s\n",
		StyleTitle.Render("Run description"),
		StyleDim.Render(fmt.Sprintf("(version %d, %s)", doc.Version(), format)))

	switch d := doc.(type) {
	case *rundesc.DescriberV0:
		printFlat(w, d)
	case *rundesc.DescriberV1:
		printGraph(w, d)
	}
	return nil
}

func printFlat(w io.Writer, d *rundesc.DescriberV0) {
	fmt.Fprintf(w, "%s\n", StyleHighlight.Render(fmt.Sprintf("Parameters (%d):", len(d.InterDeps.ParamSpecs))))
	for _, spec := range d.InterDeps.ParamSpecs {
		fmt.Fprintf(w, "  %s  %s%s\n",
			StyleValue.Render(spec.Name),
			StyleDim.Render(describeBase(spec.Base())),
			relationSuffix(spec.DependsOn, spec.InferredFrom))
	}
}

func printGraph(w io.Writer, d *rundesc.DescriberV1) {
	fmt.Fprintf(w, "%s\n", StyleHighlight.Render(fmt.Sprintf("Parameters (%d):", len(d.InterDeps.Parameters))))
	for _, name := range d.ParamNames() {
		base := d.InterDeps.Parameters[name]
		fmt.Fprintf(w, "  %s  %s%s\n",
			StyleValue.Render(name),
			StyleDim.Render(describeBase(base)),
			relationSuffix(d.InterDeps.Dependencies[name], d.InterDeps.Inferences[name]))
	}
	if len(d.InterDeps.Standalones) > 0 {
		fmt.Fprintf(w, "%s %s\n",
			StyleHighlight.Render("Standalones:"),
			StyleValue.Render(strings.Join(d.InterDeps.Standalones, ", ")))
	}
	if len(d.Shapes) > 0 {
		fmt.Fprintf(w, "%s\n", StyleHighlight.Render("Shapes:"))
		names := make([]string, 0, len(d.Shapes))
		for name := range d.Shapes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s  %s\n",
				StyleValue.Render(name),
				StyleDim.Render(fmt.Sprintf("%v", d.Shapes[name])))
		}
	}
}

func describeBase(b rundesc.ParamSpecBase) string {
	desc := b.Type
	if b.Label != "" {
		desc += fmt.Sprintf(" %q", b.Label)
	}
	if b.Unit != "" {
		desc += fmt.Sprintf(" [%s]", b.Unit)
	}
	return desc
}

func relationSuffix(dependsOn, inferredFrom []string) string {
	var parts []string
	if len(dependsOn) > 0 {
		parts = append(parts, "depends on: "+strings.Join(dependsOn, ", "))
	}
	if len(inferredFrom) > 0 {
		parts = append(parts, "inferred from: "+strings.Join(inferredFrom, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + StyleDim.Render(strings.Join(parts, "; "))
}
