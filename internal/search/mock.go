package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/worker"
)

// mockEntry is one curated catalog row for the deterministic provider
type mockEntry struct {
	substring   string
	title       string
	channel     string
	description string
	durationSec int
}

// mockCatalog maps well-known query fragments to stable results. Order
// matters: first matching substring wins.
var mockCatalog = []mockEntry{
	{
		substring:   "study with me",
		title:       "2 Hour Study With Me - Pomodoro Technique",
		channel:     "StudyVibes",
		description: "Structured study time builds focus habits",
		durationSec: 7200,
	},
	{
		substring:   "meditation",
		title:       "5-Minute Meditation for Focus",
		channel:     "MindfulMoments",
		description: "Brief mindfulness exercise to reset attention",
		durationSec: 300,
	},
	{
		substring:   "tutorial",
		title:       "Python Programming Tutorial for Beginners",
		channel:     "CodeAcademy",
		description: "Skill-building content aligned with learning goals",
		durationSec: 1800,
	},
	{
		substring:   "exercise",
		title:       "10-Minute Desk Stretching Routine",
		channel:     "HealthyHabits",
		description: "Physical activity break for screen-heavy sessions",
		durationSec: 600,
	},
	{
		substring:   "productivity",
		title:       "Productivity Tips for Students",
		channel:     "FocusLab",
		description: "Practical techniques for intentional screen time",
		durationSec: 900,
	},
}

// MockProvider returns deterministic results without network access. It
// stands in for the real search backend whenever no API key is configured,
// so the recommendation path behaves identically in both modes.
type MockProvider struct{}

// NewMockProvider creates the deterministic provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Search matches the query against the curated catalog, falling back to a
// generated result. Same query in always produces the same results out.
func (p *MockProvider) Search(_ context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 3
	}

	lower := strings.ToLower(query)
	results := make([]Result, 0, maxResults)

	for _, entry := range mockCatalog {
		if strings.Contains(lower, entry.substring) {
			results = append(results, mockResult(entry))
			break
		}
	}

	for len(results) < maxResults {
		results = append(results, genericResult(query, len(results)))
	}

	return results[:maxResults], nil
}

func mockResult(entry mockEntry) Result {
	id := mockVideoID(entry.title)
	return Result{
		VideoID:     id,
		Title:       entry.title,
		URL:         "https://www.youtube.com/watch?v=" + id,
		Channel:     entry.channel,
		Description: entry.description,
		DurationSec: entry.durationSec,
	}
}

// genericResult synthesizes a stable placeholder for queries outside the
// catalog. The URL points at a real search so the link stays useful.
func genericResult(query string, index int) Result {
	title := fmt.Sprintf("Productive Content: %s", titleCase(query))
	if index > 0 {
		title = fmt.Sprintf("%s (%d)", title, index+1)
	}
	return Result{
		VideoID:     mockVideoID(title),
		Title:       title,
		URL:         "https://www.youtube.com/results?search_query=" + url.QueryEscape(query),
		Channel:     "Recommended",
		Description: "Suggested productive alternative",
		DurationSec: 600,
	}
}

// titleCase capitalizes the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// mockVideoID derives an 11-character stable pseudo-ID from the title
func mockVideoID(title string) string {
	sum := sha256.Sum256([]byte(title))
	return hex.EncodeToString(sum[:])[:11]
}

// NewProviderFromConfig returns the YouTube provider when an API key is
// configured and the deterministic provider otherwise.
func NewProviderFromConfig(cfg model.SearchConfig, limiter *worker.Limiter) Provider {
	if cfg.APIKey == "" {
		return NewMockProvider()
	}
	return NewYouTubeProvider(cfg, limiter)
}
