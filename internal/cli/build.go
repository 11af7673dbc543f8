package cli

import (
	"fmt"
	"os"

	"github.com/feedguard/feedguard/internal/behavior"
	"github.com/feedguard/feedguard/internal/cache"
	"github.com/feedguard/feedguard/internal/classify"
	"github.com/feedguard/feedguard/internal/llm"
	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/pipeline"
	"github.com/feedguard/feedguard/internal/recommend"
	"github.com/feedguard/feedguard/internal/search"
	"github.com/feedguard/feedguard/internal/worker"
	"go.uber.org/zap"
)

// newLogger builds the process logger. Verbose mode uses the development
// config with debug level and console output.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// applyLLMEnv fills provider credentials from the conventional environment
// variables
func applyLLMEnv(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	if cfg.Search.APIKey == "" {
		cfg.Search.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}

	return nil
}

// buildCoordinator assembles the full pipeline from config
func buildCoordinator(cfg model.Config, logger *zap.Logger) (*pipeline.Coordinator, *recommend.Selector, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("create LLM provider: %w", err)
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	searcher := search.NewProviderFromConfig(cfg.Search, limiter)
	store := cache.FromConfig(cfg.Cache)

	classifier := classify.NewClassifier(provider, logger)
	tracker := behavior.NewTracker(behavior.NewMemoryStore())
	selector := recommend.NewSelector(provider, searcher, store, cfg.Search, cfg.Cache.MemoryTTL, logger)

	coordinator := pipeline.NewCoordinator(classifier, tracker, selector, pipeline.NewMetrics(), logger)

	return coordinator, selector, nil
}
