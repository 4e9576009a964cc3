package cli

import (
	"github.com/spf13/cobra"

	"github.com/mehinger01/garage-layout-planner/internal/api"
)

// serveCommand creates the serve command running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		planPath   string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve <plan>",
		Short: "Serve the composed scene over HTTP",
		Long: `Serve exposes a layout plan over a JSON API and renders PNG frames
on demand. Frames are cached; Redis and Mongo backends can be enabled
through the config file and degrade gracefully when unreachable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := api.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				planPath = args[0]
			}
			if planPath == "" {
				planPath = cfg.Plan
			}
			if addr != "" {
				cfg.Addr = addr
			}

			plan, err := c.loadPlan(planPath)
			if err != nil {
				return err
			}

			srv, err := api.New(cmd.Context(), cfg, plan, c.Logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			printInfo("Serving %d zones on %s", len(plan.Zones), cfg.Addr)
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
