package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/feedguard/feedguard/internal/cache"
	"github.com/feedguard/feedguard/internal/llm"
	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/search"
)

// countingSearcher wraps the mock provider and counts calls
type countingSearcher struct {
	inner search.Provider
	calls int
}

func (c *countingSearcher) Name() string { return "counting" }

func (c *countingSearcher) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	c.calls++
	return c.inner.Search(ctx, query, maxResults)
}

// failingSearcher always errors
type failingSearcher struct{}

func (failingSearcher) Name() string { return "failing" }

func (failingSearcher) Search(context.Context, string, int) ([]search.Result, error) {
	return nil, errors.New("search backend down")
}

// queryProvider returns a canned query-generation completion
type queryProvider struct {
	text string
	err  error
}

func (q *queryProvider) Name() string { return "fake" }

func (q *queryProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if q.err != nil {
		return nil, q.err
	}
	return &llm.CompletionResponse{Text: q.text}, nil
}

func (q *queryProvider) IsAvailable(ctx context.Context) bool { return q.err == nil }

func testSelector(provider llm.Provider, searcher search.Provider, store cache.Cache, maxResults int) *Selector {
	return NewSelector(provider, searcher, store,
		model.SearchConfig{MaxResults: maxResults}, time.Minute, nil)
}

func testItem() *model.ContentItem {
	return &model.ContentItem{ID: "i1", Title: "Fails Compilation", Channel: "FailsDaily"}
}

func addictive() *model.Classification {
	return &model.Classification{Category: model.CategoryAddictive, Triggers: []model.Trigger{}}
}

func TestSelector_ExactCount(t *testing.T) {
	s := testSelector(nil, search.NewMockProvider(), cache.NoopCache{}, 5)

	alternatives := s.Recommend(context.Background(), testItem(), addictive())

	if len(alternatives) != 5 {
		t.Errorf("Expected exactly 5 alternatives, got %d", len(alternatives))
	}
	for i, alt := range alternatives {
		if alt.Title == "" || alt.URL == "" || alt.Reason == "" {
			t.Errorf("Alternative %d incomplete: %+v", i, alt)
		}
	}
}

func TestSelector_FloorOfThree(t *testing.T) {
	// Configured below the floor: still returns 3
	s := testSelector(nil, search.NewMockProvider(), cache.NoopCache{}, 1)

	alternatives := s.Recommend(context.Background(), testItem(), addictive())

	if len(alternatives) != 3 {
		t.Errorf("Expected floor of 3 alternatives, got %d", len(alternatives))
	}
}

func TestSelector_SearchFailureDegrades(t *testing.T) {
	s := testSelector(nil, failingSearcher{}, cache.NoopCache{}, 3)

	alternatives := s.Recommend(context.Background(), testItem(), addictive())

	if len(alternatives) != 3 {
		t.Fatalf("Expected 3 alternatives despite search failure, got %d", len(alternatives))
	}
	// Default queries feed the deterministic fallback catalog
	if alternatives[0].Title != "Python Programming Tutorial for Beginners" {
		t.Errorf("Unexpected first fallback: %q", alternatives[0].Title)
	}
	if alternatives[2].Type != "guided_exercise" {
		t.Errorf("Expected guided_exercise for meditation query, got %q", alternatives[2].Type)
	}
}

func TestSelector_CacheHitSkipsProviders(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	searcher := &countingSearcher{inner: search.NewMockProvider()}
	s := testSelector(nil, searcher, store, 3)

	first := s.Recommend(context.Background(), testItem(), addictive())
	callsAfterFirst := searcher.calls
	if callsAfterFirst == 0 {
		t.Fatal("Expected search calls on cold cache")
	}

	second := s.Recommend(context.Background(), testItem(), addictive())
	if searcher.calls != callsAfterFirst {
		t.Errorf("Expected no additional search calls on cache hit, got %d extra", searcher.calls-callsAfterFirst)
	}
	if len(second) != len(first) {
		t.Errorf("Expected cached result of same length, got %d vs %d", len(second), len(first))
	}
}

func TestSelector_CacheKeyedByCategory(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	searcher := &countingSearcher{inner: search.NewMockProvider()}
	s := testSelector(nil, searcher, store, 3)

	s.Recommend(context.Background(), testItem(), addictive())
	callsAfterFirst := searcher.calls

	// Same title, different category: separate cache entry
	s.Recommend(context.Background(), testItem(), &model.Classification{Category: model.CategoryNeutral})
	if searcher.calls == callsAfterFirst {
		t.Error("Expected fresh search for a different category")
	}
}

func TestSelector_LLMQueries(t *testing.T) {
	provider := &queryProvider{
		text: `{"queries": ["watercolor painting tutorial", "guided meditation", "productivity exercise"]}`,
	}
	s := testSelector(provider, search.NewMockProvider(), cache.NoopCache{}, 3)

	alternatives := s.Recommend(context.Background(), testItem(), addictive())

	if len(alternatives) != 3 {
		t.Fatalf("Expected 3 alternatives, got %d", len(alternatives))
	}
	if alternatives[0].SearchQuery != "watercolor painting tutorial" {
		t.Errorf("Expected LLM query to drive search, got %q", alternatives[0].SearchQuery)
	}
}

func TestSelector_LLMFailureUsesDefaultQueries(t *testing.T) {
	provider := &queryProvider{err: errors.New("rate limited")}
	s := testSelector(provider, search.NewMockProvider(), cache.NoopCache{}, 3)

	alternatives := s.Recommend(context.Background(), testItem(), addictive())

	if len(alternatives) != 3 {
		t.Fatalf("Expected 3 alternatives, got %d", len(alternatives))
	}
	if alternatives[0].SearchQuery != defaultQueries[0] {
		t.Errorf("Expected default query, got %q", alternatives[0].SearchQuery)
	}
}

func TestFallbackAlternative_Catalog(t *testing.T) {
	tests := []struct {
		query    string
		title    string
		altType  string
		duration int
	}{
		{"study with me session", "2 Hour Study With Me - Pomodoro Technique", "video", 7200},
		{"morning meditation", "5-Minute Meditation for Focus", "guided_exercise", 300},
		{"golang tutorial", "Python Programming Tutorial for Beginners", "video", 1800},
		{"stretching exercise", "10-Minute Desk Stretching Routine", "guided_exercise", 600},
		{"productivity tips", "Productivity Tips for Students", "video", 900},
		{"something else", "Productive Content: something else", "video", 600},
	}

	for _, tt := range tests {
		alt := fallbackAlternative(tt.query)
		if alt.Title != tt.title {
			t.Errorf("%s: expected title %q, got %q", tt.query, tt.title, alt.Title)
		}
		if alt.Type != tt.altType {
			t.Errorf("%s: expected type %q, got %q", tt.query, tt.altType, alt.Type)
		}
		if alt.EstimatedDuration != tt.duration {
			t.Errorf("%s: expected duration %d, got %d", tt.query, tt.duration, alt.EstimatedDuration)
		}
		if alt.SearchQuery != tt.query {
			t.Errorf("%s: expected search query carried through, got %q", tt.query, alt.SearchQuery)
		}
	}
}
