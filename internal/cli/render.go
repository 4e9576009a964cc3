package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/errors"
	"github.com/mehinger01/garage-layout-planner/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (or base path with --all-views)
	view     string // camera preset: corner, top, front, side
	width    int    // frame width in pixels
	height   int    // frame height in pixels
	allViews bool   // render every preset, suffixing the view name
}

// renderCommand creates the render command for offline PNG snapshots.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		view:   string(camera.ViewCorner),
		width:  defaultWidth,
		height: defaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "render <plan>",
		Short: "Render a layout plan to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: plan name with .png)")
	cmd.Flags().StringVar(&opts.view, "view", opts.view, "camera preset: corner, top, front, side")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().BoolVar(&opts.allViews, "all-views", false, "render every preset view")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, planPath string, opts *renderOpts) error {
	plan, err := c.loadPlan(planPath)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
		output = base + ".png"
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	views := camera.Views
	if !opts.allViews {
		v, err := camera.ParseView(opts.view)
		if err != nil {
			return err
		}
		views = []camera.View{v}
	}

	prog := newProgress(c.Logger)
	sp := newSpinner("Composing scene...")
	sp.Start()

	sc := composeScene(ctx, plan)
	rend, err := render.New(opts.width, opts.height)
	if err != nil {
		sp.Stop()
		return err
	}

	nodeCount := sc.Root.Count()

	var written []string
	for _, v := range views {
		cam := camera.New(plan.Envelope)
		if err := cam.SetView(v); err != nil {
			sp.Stop()
			return err
		}
		cam.SetViewport(opts.width, opts.height)

		data, err := render.EncodePNG(rend.Frame(sc, cam))
		if err != nil {
			sp.Stop()
			return err
		}

		path := output
		if opts.allViews {
			ext := filepath.Ext(output)
			path = strings.TrimSuffix(output, ext) + "-" + string(v) + ext
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			sp.Stop()
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		written = append(written, path)
	}

	sp.Stop()
	printSuccess("Rendered %s", filepath.Base(planPath))
	printSceneStats(len(plan.Zones), nodeCount)
	for _, path := range written {
		printFile(path)
	}
	prog.done(fmt.Sprintf("Rendered %d view(s)", len(written)))
	return nil
}
