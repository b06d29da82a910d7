package cli

import (
	"github.com/spf13/cobra"

	"github.com/JHertz5/role-assignment/pkg/observability"
	"github.com/JHertz5/role-assignment/pkg/server"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		redis   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assignment HTTP API",
		Long: `Serve exposes the assignment pipeline over HTTP:

  POST /v1/assign      solve a JSON problem document
  GET  /v1/runs        list recorded runs
  GET  /v1/runs/{id}   fetch one run
  GET  /healthz        liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.config.Listen
			}
			if c.Logger.GetLevel() <= LogDebug {
				observability.LogHooks{Logger: c.Logger}.Register()
			}
			runner, err := c.newRunner(ctx, backendOpts{
				noCache:   noCache,
				redisAddr: redis,
				history:   true,
				keyer:     server.Keyer(),
			})
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo(c.out, "Listening on %s", StyleHighlight.Render("http://"+addr))
			return server.New(runner, loggerFromContext(ctx)).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solve cache")
	cmd.Flags().StringVar(&redis, "redis", "", "redis address or URL for the solve cache")
	return cmd
}
