package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/feedguard/feedguard/internal/ingest"
	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	itemURL         string
	itemDuration    int
	itemChannel     string
	itemDescription string
	itemPlatform    string
	userID          string
	sessionMinutes  int
	repeatCount     int
	timeOfDay       string
	userSearched    bool
	outJSON         string
	analyzeTimeout  time.Duration
	llmProvider     string
	llmModel        string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <title>",
	Short: "Analyze a single content item for addiction risk",
	Long: `Analyze runs the full pipeline on one content item:
- Normalize the raw metadata
- Classify category and addictive triggers
- Score addiction risk with behavioral context
- Suggest healthier alternatives when intervention is warranted
- Render the intervention decision

Example:
  feedguard analyze "TOP 10 FUNNIEST Fails Compilation" --duration 45
  feedguard analyze "Python Tutorial" --duration 1800 --user alice
  feedguard analyze "Shocking Viral Video" --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Content flags
	analyzeCmd.Flags().StringVar(&itemURL, "url", "", "content URL")
	analyzeCmd.Flags().IntVar(&itemDuration, "duration", 0, "content duration in seconds")
	analyzeCmd.Flags().StringVar(&itemChannel, "channel", "", "channel or author name")
	analyzeCmd.Flags().StringVar(&itemDescription, "description", "", "content description")
	analyzeCmd.Flags().StringVar(&itemPlatform, "platform", "youtube", "platform (youtube, instagram)")

	// Behavioral context flags
	analyzeCmd.Flags().StringVar(&userID, "user", "", "user ID for behavior tracking (optional)")
	analyzeCmd.Flags().IntVar(&sessionMinutes, "session-minutes", 0, "minutes of continuous usage in the last hour")
	analyzeCmd.Flags().IntVar(&repeatCount, "repeat-count", 0, "times similar content was viewed recently")
	analyzeCmd.Flags().StringVar(&timeOfDay, "time-of-day", "", "local time as HH:MM (for late-night detection)")
	analyzeCmd.Flags().BoolVar(&userSearched, "searched", false, "user explicitly searched for this content")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write result JSON to this path (default: stdout)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 60*time.Second, "overall analysis timeout")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama); empty = heuristic only")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	title := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if err := applyLLMEnv(&cfg); err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	coordinator, _, err := buildCoordinator(cfg, logger)
	if err != nil {
		return err
	}

	req := pipeline.Request{
		Raw: ingest.RawItem{
			Title:       title,
			URL:         itemURL,
			Channel:     itemChannel,
			Description: itemDescription,
			Platform:    itemPlatform,
		},
		UserID: userID,
		Behavioral: model.BehavioralContext{
			SessionMinutes: sessionMinutes,
			RepeatCount:    repeatCount,
			TimeOfDay:      timeOfDay,
			UserSearched:   userSearched,
		},
	}
	if cmd.Flags().Changed("duration") {
		req.Raw.DurationSec = &itemDuration
	}

	result, err := coordinator.Analyze(ctx, req)
	if err != nil {
		var stageErr *model.StageError
		if errors.As(err, &stageErr) {
			return fmt.Errorf("analysis failed at stage %s: %w", stageErr.Stage, stageErr.Err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Category: %s (%.2f confidence, %s)\n",
			result.Classification.Category, result.Classification.Confidence, result.Classification.Source)
		fmt.Fprintf(os.Stderr, "✓ Addiction index: %d/100 (%s)\n", result.Risk.Index, result.Risk.Tier)
		fmt.Fprintf(os.Stderr, "✓ Intervention: %s\n", result.Decision.Action)
		fmt.Fprintln(os.Stderr)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if outJSON != "" {
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Result written to %s\n", outJSON)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
