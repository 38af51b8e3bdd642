package main

import (
	"github.com/spf13/cobra"

	"github.com/fleetsight/fleetsight-api/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		addr := serveAddr
		if addr == "" {
			addr = a.cfg.HTTPAddr
		}

		return server.NewServer(a.pipeline, historyOrNil(a)).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to FLEET_HTTP_ADDR)")
}

// historyOrNil avoids handing the server a typed nil.
func historyOrNil(a *app) server.HistoryProvider {
	if a.history == nil {
		return nil
	}
	return a.history
}
