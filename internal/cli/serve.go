package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ppiankov/crosscheck/internal/api"
)

var servePort int

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the fact-checking HTTP API",
	Long: `Serve exposes the fact-checking pipeline over HTTP:
  POST /api/analyze   {"claim": "..."}  -> verdict
  GET  /api/health    service status and configured integrations
  GET  /api/sources   source catalog (?category=left|center|right|international|factcheck|fringe)

Example:
  crosscheck serve
  crosscheck serve --port 8080
  PORT=9000 crosscheck serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides server.port and PORT)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-memory cache")
	serveCmd.Flags().BoolVar(&withFringe, "fringe", false, "also search fringe sources")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := newLogger(cfg)
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	status := engine.Status()
	logger.Info("engine ready",
		"sources", engine.Catalog().Len(),
		"ai", status.AIEnabled,
		"provider", status.Provider,
		"google_factcheck", status.GoogleFactCheck,
		"claimbuster", status.ClaimBuster,
	)

	handler := api.NewHandler(engine, engine.Catalog(), cfg, logger)
	router := api.NewServer(handler, cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.ListenAndServe(ctx, router, cfg.Server, logger); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
