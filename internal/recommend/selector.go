package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/feedguard/feedguard/internal/cache"
	"github.com/feedguard/feedguard/internal/llm"
	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/search"
	"go.uber.org/zap"
)

// minAlternatives is the hard floor on returned suggestions: every caller
// gets at least this many regardless of configuration or provider health
const minAlternatives = 3

// defaultQueries is used when no LLM provider is configured or query
// generation fails
var defaultQueries = []string{
	"python programming tutorial for beginners",
	"productivity tips for students",
	"5 minute meditation for focus",
}

const queryGenSystemPrompt = `You generate YouTube search queries for healthier content alternatives.
Given a piece of content a user is about to watch, suggest search queries for
productive or educational content the user might enjoy instead.
Respond with ONLY a JSON object: {"queries": ["query 1", "query 2", "query 3"]}`

// Selector produces healthier content alternatives for a given item. It is
// total: provider and cache failures degrade to deterministic fallbacks and
// the result always holds exactly the configured number of entries.
type Selector struct {
	provider llm.Provider // nil = default queries
	searcher search.Provider
	store    cache.Cache
	cacheTTL time.Duration
	maxN     int
	logger   *zap.Logger
}

// NewSelector creates a selector. provider may be nil; searcher and store
// must be non-nil (use the mock provider and NoopCache for degraded modes).
func NewSelector(provider llm.Provider, searcher search.Provider, store cache.Cache, cfg model.SearchConfig, cacheTTL time.Duration, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxN := cfg.MaxResults
	if maxN < minAlternatives {
		maxN = minAlternatives
	}
	return &Selector{
		provider: provider,
		searcher: searcher,
		store:    store,
		cacheTTL: cacheTTL,
		maxN:     maxN,
		logger:   logger,
	}
}

// Recommend returns exactly maxResults alternatives for the item. Results
// are cached by (title, category) so repeated lookups skip the providers.
func (s *Selector) Recommend(ctx context.Context, item *model.ContentItem, classification *model.Classification) []model.Alternative {
	var category model.Category
	if classification != nil {
		category = classification.Category
	}

	key := cache.Key(item.Title, category)
	if data, found := s.store.Get(key); found {
		var cached []model.Alternative
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
			s.logger.Debug("recommendation cache hit", zap.String("key", key))
			return cached
		}
		// Corrupt entries are dropped, never served
		s.store.Delete(key)
	}

	queries := s.generateQueries(ctx, item, classification)
	alternatives := make([]model.Alternative, 0, s.maxN)

	for _, query := range queries {
		if len(alternatives) >= s.maxN {
			break
		}
		alternatives = append(alternatives, s.searchOne(ctx, query))
	}

	// Pad to the exact count with deterministic fallback entries
	for len(alternatives) < s.maxN {
		alternatives = append(alternatives, fallbackAlternative(fmt.Sprintf("productive content %d", len(alternatives)+1)))
	}
	alternatives = alternatives[:s.maxN]

	if data, err := json.Marshal(alternatives); err == nil {
		if err := s.store.Set(key, data, s.cacheTTL); err != nil {
			s.logger.Warn("recommendation cache write failed", zap.Error(err))
		}
	}

	return alternatives
}

// generateQueries asks the LLM for tailored search queries, degrading to
// the static defaults on any failure
func (s *Selector) generateQueries(ctx context.Context, item *model.ContentItem, classification *model.Classification) []string {
	if s.provider == nil {
		return defaultQueries
	}

	category := model.Category("unknown")
	if classification != nil {
		category = classification.Category
	}

	prompt := fmt.Sprintf("Content title: %s\nCategory: %s\nChannel: %s\n\nGenerate %d search queries for healthier alternatives.",
		item.Title, category, item.Channel, s.maxN)

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System:      queryGenSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Warn("query generation unavailable, using defaults",
			zap.Error(&model.ProviderError{Provider: s.provider.Name(), Err: err}))
		return defaultQueries
	}

	raw, ok := llm.ExtractJSONObject(resp.Text)
	if !ok {
		return defaultQueries
	}

	var decoded struct {
		Queries []string `json:"queries"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil || len(decoded.Queries) == 0 {
		return defaultQueries
	}

	return decoded.Queries
}

// searchOne resolves one query to one alternative, degrading to the
// deterministic fallback on provider failure or empty results
func (s *Selector) searchOne(ctx context.Context, query string) model.Alternative {
	results, err := s.searcher.Search(ctx, query, 1)
	if err != nil {
		s.logger.Warn("search provider unavailable, using fallback",
			zap.String("query", query),
			zap.Error(err))
		return fallbackAlternative(query)
	}
	if len(results) == 0 {
		return fallbackAlternative(query)
	}
	return formatResult(results[0], query)
}

// formatResult converts a search hit into an alternative
func formatResult(r search.Result, query string) model.Alternative {
	duration := r.DurationSec
	if duration == 0 {
		duration = 600
	}
	return model.Alternative{
		Title:             r.Title,
		URL:               r.URL,
		Reason:            fmt.Sprintf("Productive alternative matching: %s", query),
		SearchQuery:       query,
		Type:              alternativeType(query),
		EstimatedDuration: duration,
	}
}

// fallbackAlternative synthesizes a deterministic entry for the query. Used
// for padding and whenever the search path degrades.
func fallbackAlternative(query string) model.Alternative {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "study with me"):
		return model.Alternative{
			Title:             "2 Hour Study With Me - Pomodoro Technique",
			URL:               searchURL(query),
			Reason:            "Structured study time builds sustained focus",
			SearchQuery:       query,
			Type:              "video",
			EstimatedDuration: 7200,
		}
	case strings.Contains(lower, "meditation"):
		return model.Alternative{
			Title:             "5-Minute Meditation for Focus",
			URL:               searchURL(query),
			Reason:            "Brief mindfulness exercise to reset attention",
			SearchQuery:       query,
			Type:              "guided_exercise",
			EstimatedDuration: 300,
		}
	case strings.Contains(lower, "tutorial"):
		return model.Alternative{
			Title:             "Python Programming Tutorial for Beginners",
			URL:               searchURL(query),
			Reason:            "Skill-building content aligned with learning goals",
			SearchQuery:       query,
			Type:              "video",
			EstimatedDuration: 1800,
		}
	case strings.Contains(lower, "exercise"):
		return model.Alternative{
			Title:             "10-Minute Desk Stretching Routine",
			URL:               searchURL(query),
			Reason:            "Physical activity break for screen-heavy sessions",
			SearchQuery:       query,
			Type:              "guided_exercise",
			EstimatedDuration: 600,
		}
	case strings.Contains(lower, "productivity"):
		return model.Alternative{
			Title:             "Productivity Tips for Students",
			URL:               searchURL(query),
			Reason:            "Practical techniques for intentional screen time",
			SearchQuery:       query,
			Type:              "video",
			EstimatedDuration: 900,
		}
	default:
		return model.Alternative{
			Title:             fmt.Sprintf("Productive Content: %s", query),
			URL:               searchURL(query),
			Reason:            "Suggested productive alternative",
			SearchQuery:       query,
			Type:              "video",
			EstimatedDuration: 600,
		}
	}
}

func alternativeType(query string) string {
	lower := strings.ToLower(query)
	if strings.Contains(lower, "meditation") || strings.Contains(lower, "exercise") {
		return "guided_exercise"
	}
	return "video"
}

func searchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + strings.ReplaceAll(query, " ", "+")
}
