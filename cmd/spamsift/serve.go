package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spamsift/internal/api"
	"github.com/Veraticus/spamsift/internal/common"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classifier over HTTP",
		Long: `Start the JSON API:

  POST /api/v1/classify          {"text": "..."}
  POST /api/v1/classify/batch    {"texts": ["...", "..."]}
  GET  /api/v1/groups
  GET  /api/v1/history[?limit=N]
  GET  /api/v1/history/stats
  GET  /api/v1/history/:id
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), appOptions{withModel: true, withHistory: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if viper.GetString("logging.level") != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			server := api.NewServer(a.classifier, a.registry, a.policy, a.store, api.Config{
				Addr:         a.settings.ServerAddr,
				RateLimit:    a.settings.RateLimit,
				Burst:        a.settings.Burst,
				BatchWorkers: a.settings.BatchWorkers,
			})

			common.LogInfo("Starting API server", common.Fields{
				"addr":         a.settings.ServerAddr,
				"model_loaded": a.classifier.HasModel(),
				"history":      a.store != nil,
			})

			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default: server.addr)")
	cmd.Flags().Float64("rate-limit", 0, "requests per second across all clients, 0 disables")
	cmd.Flags().Int("burst", 0, "rate limiter burst size")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.rate_limit", cmd.Flags().Lookup("rate-limit"))
	_ = viper.BindPFlag("server.burst", cmd.Flags().Lookup("burst"))

	return cmd
}
