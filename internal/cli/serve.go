package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sortviz/pkg/buildinfo"
	"github.com/matzehuels/sortviz/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags arrayFlags
		addr  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Drive and observe sorts over HTTP",
		Long: `Expose a controller over a JSON API so that other renderers can poll
GET /api/state and start runs with POST /api/sort/{algorithm}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			logger := loggerFromContext(ctx)
			ctrl, err := newController(cfg, logger)
			if err != nil {
				return err
			}
			defer ctrl.Wait()

			out := cmd.OutOrStdout()
			printInfo(out, "Serving the sort controller")
			printKeyValue(out, "version", buildinfo.Short())
			printKeyValue(out, "addr", cfg.Server.Addr)
			printKeyValue(out, "bars", fmt.Sprintf("%d (max %d)", cfg.Array.Size, cfg.Array.MaxValue))
			printKeyValue(out, "state", "GET /api/state")
			err = server.New(ctx, ctrl, logger).ListenAndServe(ctx, cfg.Server.Addr)
			logger.Info("server stopped", "runs", c.stats.runs.Load(), "requests", c.stats.requests.Load())
			return err
		},
	}
	addArrayFlags(cmd, &flags)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
