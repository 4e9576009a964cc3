package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/render/diagram"
)

// graphCommand creates the graph command for scene structure diagrams.
// The output format follows the file extension: .dot writes raw DOT,
// anything else renders SVG through Graphviz.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		detailed   bool
		primitives bool
	)

	cmd := &cobra.Command{
		Use:   "graph <plan>",
		Short: "Write a scene-graph structure diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := c.loadPlan(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				output = base + "-scene.svg"
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}

			sc := composeScene(cmd.Context(), plan)
			dot := diagram.ToDOT(sc, diagram.Options{Detailed: detailed, Primitives: primitives})

			data := []byte(dot)
			if !strings.EqualFold(filepath.Ext(output), ".dot") {
				data, err = diagram.RenderSVG(dot)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render diagram")
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}

			printSuccess("Scene graph for %s", filepath.Base(args[0]))
			printSceneStats(len(plan.Zones), sc.Root.Count())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include sizes and poses in node labels")
	cmd.Flags().BoolVar(&primitives, "primitives", false, "include leaf primitives, not just groups")

	return cmd
}
