package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veritaslabs/veritas/internal/api"
	"github.com/veritaslabs/veritas/internal/jobs"
	"github.com/veritaslabs/veritas/internal/pipeline"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve starts the Veritas HTTP API.

Submissions are verified asynchronously: POST returns a job ID, and the
job endpoints expose status, results, and evidence receipts.

Example:
  veritas serve
  veritas serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	registry := jobs.NewRegistry(cfg.Jobs)
	p, err := pipeline.NewPipeline(cfg, registry)
	if err != nil {
		return err
	}
	manager := jobs.NewManager(registry, cfg.Jobs, p.Run)

	zap.S().Infow("starting server",
		"addr", cfg.Server.Addr,
		"workers", cfg.Jobs.Workers,
		"llm_provider", cfg.LLM.Provider)

	return api.NewServer(cfg.Server, manager).Run()
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
