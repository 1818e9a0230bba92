// ABOUTME: CLI command for serving shared sheets over HTTP.
// ABOUTME: Runs the share server until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/treino/internal/share"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve public sheets at /workout/{shareId}",
	Long: `Start an HTTP server that returns public sheets as JSON.

Links printed by 'treino sheet share' point here when "origin" in the
config matches the address the server is reachable at.

ENDPOINTS:

  GET /workout/{shareId}   The public sheet, or 404
  GET /healthz             Liveness check`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		log := logrus.StandardLogger()
		log.WithField("addr", addr).Info("share server listening")
		return share.New(sheets, log).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to listen_addr in config)")
	rootCmd.AddCommand(serveCmd)
}
