package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/feedguard/feedguard/internal/model"
	"github.com/spf13/cobra"
)

var (
	recommendCategory string
	recommendTimeout  time.Duration
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend <title>",
	Short: "Suggest healthier content alternatives for a title",
	Long: `Recommend suggests healthier content alternatives without running the
full analysis pipeline. With an LLM provider configured the search queries are
tailored to the title; otherwise fixed default queries are used. Without a
YouTube API key results come from the deterministic fallback catalog.

Example:
  feedguard recommend "Fails Compilation 2024"
  feedguard recommend "Fails Compilation 2024" --category addictive
  feedguard recommend "Endless Shorts" --llm-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&recommendCategory, "category", "", "content category hint (educational, productive, neutral, entertainment, addictive, harmful)")
	recommendCmd.Flags().DurationVar(&recommendTimeout, "timeout", 30*time.Second, "overall timeout")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	title := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), recommendTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	if err := applyLLMEnv(&cfg); err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	_, selector, err := buildCoordinator(cfg, logger)
	if err != nil {
		return err
	}

	item := &model.ContentItem{Title: title}
	var classification *model.Classification
	if recommendCategory != "" {
		classification = &model.Classification{Category: model.Category(recommendCategory)}
	}

	alternatives := selector.Recommend(ctx, item, classification)

	data, err := json.MarshalIndent(alternatives, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alternatives: %w", err)
	}
	fmt.Println(string(data))

	return nil
}
