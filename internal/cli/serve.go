package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	cacheDir  string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the FeedGuard HTTP API",
	Long: `Serve exposes the analysis pipeline over HTTP:

  POST   /analyze        Run the full pipeline on one item
  GET    /recommend      Suggest alternatives for a title
  POST   /feedback       Record user feedback on interventions
  GET    /stats          Per-user behavior insights
  DELETE /user/:user_id  Remove all data for a user
  GET    /health         Liveness check
  GET    /metrics        Pipeline counters
  POST   /metrics/reset  Zero the counters

Example:
  feedguard serve
  feedguard serve --addr :9090 --llm-provider ollama`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "enable persistent recommendation cache in this directory")

	// LLM flags
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama); empty = heuristic only")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}
	if err := applyLLMEnv(&cfg); err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	coordinator, selector, err := buildCoordinator(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(coordinator, selector, cfg.Server, logger)
	return srv.Run(ctx)
}
