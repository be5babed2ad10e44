// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ir-outreach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the outreach API over HTTP",
	Long: `Serve exposes generate, refine, compare and prompt introspection as a
JSON API for the web frontend:

  POST /api/generate-email
  POST /api/refine-email
  POST /api/compare-email
  GET  /api/prompt-info
  GET  /health

The server keeps no session state; refinement transcripts travel with
each request. It stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, \":3001\")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	serverCfg := cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		serverCfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(svc, serverCfg, log).ListenAndServe(ctx)
}
