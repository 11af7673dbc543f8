package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/feedguard/feedguard/internal/llm"
	"github.com/feedguard/feedguard/internal/model"
	"go.uber.org/zap"
)

// Classifier assigns a category and trigger labels to content. When an LLM
// provider is configured it is tried first; any failure, timeout, or
// off-schema response degrades to the deterministic heuristic, so Classify
// is total and never fails the pipeline.
type Classifier struct {
	provider llm.Provider // nil = heuristic only
	logger   *zap.Logger
}

// NewClassifier creates a classifier. provider may be nil.
func NewClassifier(provider llm.Provider, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

// Classify returns a validated, schema-conformant classification
func (c *Classifier) Classify(ctx context.Context, item *model.ContentItem, cctx *model.ContentContext) *model.Classification {
	if c.provider != nil {
		result, err := c.classifyWithProvider(ctx, item, cctx)
		if err == nil {
			return result
		}
		// Provider degradation must be observable but never fatal
		c.logger.Warn("classifier provider unavailable, using heuristic fallback",
			zap.String("provider", c.provider.Name()),
			zap.Error(&model.ProviderError{Provider: c.provider.Name(), Err: err}))
	}

	return c.classifyHeuristic(item, cctx)
}

// classifyWithProvider runs the LLM path and validates the decoded result
func (c *Classifier) classifyWithProvider(ctx context.Context, item *model.ContentItem, cctx *model.ContentContext) (*model.Classification, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(item, cctx),
		Temperature: 0.3, // Low temperature for consistent classification
	})
	if err != nil {
		return nil, err
	}

	raw, ok := llm.ExtractJSONObject(resp.Text)
	if !ok {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var result model.Classification
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("classification failed validation: %w", err)
	}

	result.Source = "llm"
	return &result, nil
}

// classifyHeuristic is the deterministic rule-based fallback. It is a pure
// function of the item and context so it is trivially testable without the
// external dependency.
func (c *Classifier) classifyHeuristic(item *model.ContentItem, cctx *model.ContentContext) *model.Classification {
	indicators := cctx.Title

	var category model.Category
	var confidence float64
	switch {
	case indicators.HasEducationalKeywords:
		category = model.CategoryEducational
		confidence = 0.75
	case indicators.HasAddictiveKeywords:
		category = model.CategoryAddictive
		confidence = 0.80
	case indicators.HasClickbaitKeywords:
		category = model.CategoryEntertainment
		confidence = 0.70
	default:
		category = model.CategoryNeutral
		confidence = 0.60
	}

	triggers := detectTriggers(item, indicators)

	return &model.Classification{
		Category:           category,
		Reason:             heuristicReason(category, triggers),
		Triggers:           triggers,
		ThumbnailSentiment: thumbnailSentiment(category, indicators),
		Confidence:         confidence,
		Source:             "heuristic",
	}
}

// detectTriggers derives trigger labels from duration and title substrings,
// independently of the chosen category.
func detectTriggers(item *model.ContentItem, indicators model.TitleIndicators) []model.Trigger {
	title := strings.ToLower(item.Title)
	triggers := []model.Trigger{}

	if item.DurationSec < 60 {
		triggers = append(triggers, model.TriggerShortDuration)
	}
	if strings.Contains(title, "compilation") || strings.Contains(title, "best of") {
		triggers = append(triggers, model.TriggerCompilation)
	}
	if containsAny(title, "funny", "meme", "laugh") {
		triggers = append(triggers, model.TriggerHumor)
	}
	if containsAny(title, "shocking", "insane", "crazy") {
		triggers = append(triggers, model.TriggerShock)
	}
	if containsAny(title, "viral", "trending", "must see") {
		triggers = append(triggers, model.TriggerFOMO)
	}
	if indicators.HasClickbaitKeywords {
		triggers = append(triggers, model.TriggerClickbait)
	}

	return triggers
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func thumbnailSentiment(category model.Category, indicators model.TitleIndicators) model.ThumbnailSentiment {
	switch {
	case indicators.HasClickbaitKeywords:
		return model.SentimentClickbait
	case category == model.CategoryEducational:
		return model.SentimentPositive
	case category == model.CategoryAddictive:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// heuristicReason composes the human-readable classification reason
func heuristicReason(category model.Category, triggers []model.Trigger) string {
	switch category {
	case model.CategoryAddictive:
		short := hasTrigger(triggers, model.TriggerShortDuration)
		comp := hasTrigger(triggers, model.TriggerCompilation)
		switch {
		case short && comp:
			return "Short compilation triggers dopamine loops"
		case short:
			return "Short-form content encourages binge-watching"
		case comp:
			return "Compilation format promotes extended viewing"
		default:
			return "Content patterns suggest addictive potential"
		}
	case model.CategoryEducational:
		return "Educational content for skill development"
	case model.CategoryProductive:
		return "Productive content aligned with goals"
	case model.CategoryHarmful:
		return "Content may have negative impact"
	default:
		return "General content without strong indicators"
	}
}

func hasTrigger(triggers []model.Trigger, t model.Trigger) bool {
	for _, trigger := range triggers {
		if trigger == t {
			return true
		}
	}
	return false
}
