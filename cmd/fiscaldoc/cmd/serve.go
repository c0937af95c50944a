package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/fiscaldoc/internal/engine"
	"github.com/rezonia/fiscaldoc/internal/logger"
	"github.com/rezonia/fiscaldoc/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for generating regulatory documents.

The API provides endpoints for:
  - POST /api/v1/fiscalcode/validate   - Validate and decode a fiscal code
  - POST /api/v1/documents/inps        - Generate INPS agibilità XML
  - POST /api/v1/documents/fatturapa   - Generate FatturaPA invoice XML
  - POST /api/v1/documents/easyfatt    - Generate Easyfatt export XML
  - GET  /health                       - Health check

Examples:
  # Start server on default port
  fiscaldoc serve

  # Start on a custom address with debug logging
  fiscaldoc serve --addr :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "addr", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("sender configuration: %w", err)
	}

	eng := engine.New(cfg.Sender())
	srv := server.NewServer(&server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}, eng)

	log := logger.WithComponent("server")
	log.Info().Str("addr", serverAddr).Msg("starting HTTP API")

	return srv.Run()
}
