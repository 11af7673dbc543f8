package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/feedguard/feedguard/internal/behavior"
	"github.com/feedguard/feedguard/internal/cache"
	"github.com/feedguard/feedguard/internal/classify"
	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/pipeline"
	"github.com/feedguard/feedguard/internal/recommend"
	"github.com/feedguard/feedguard/internal/search"
)

func testAnalyzer() Analyzer {
	classifier := classify.NewClassifier(nil, nil)
	tracker := behavior.NewTracker(behavior.NewMemoryStore())
	selector := recommend.NewSelector(nil, search.NewMockProvider(), cache.NoopCache{},
		model.SearchConfig{MaxResults: 3}, time.Minute, nil)
	return pipeline.NewCoordinator(classifier, tracker, selector, pipeline.NewMetrics(), nil)
}

func writeJSONL(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.jsonl")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestReadRequestsFromFile(t *testing.T) {
	path := writeJSONL(t, []string{
		`# batch of test items`,
		`{"content": {"title": "Fails Compilation", "duration_sec": 45}, "user_id": "alice"}`,
		``,
		`{"content": {"title": "Python Tutorial", "duration_sec": 1800}}`,
	})

	requests, err := ReadRequestsFromFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("Expected 2 requests after skipping comments and blanks, got %d", len(requests))
	}
	if requests[0].Raw.Title != "Fails Compilation" {
		t.Errorf("Unexpected first title: %q", requests[0].Raw.Title)
	}
	if requests[0].UserID != "alice" {
		t.Errorf("Expected user alice, got %q", requests[0].UserID)
	}
	if requests[1].Raw.DurationSec == nil || *requests[1].Raw.DurationSec != 1800 {
		t.Errorf("Expected duration 1800, got %v", requests[1].Raw.DurationSec)
	}
}

func TestReadRequestsFromFile_MalformedLine(t *testing.T) {
	path := writeJSONL(t, []string{
		`{"content": {"title": "OK"}}`,
		`{not json}`,
	})

	if _, err := ReadRequestsFromFile(path); err == nil {
		t.Fatal("Expected error for malformed JSONL line")
	}
}

func TestProcessor_ProcessFile(t *testing.T) {
	path := writeJSONL(t, []string{
		`{"content": {"title": "SHOCKING Viral Fails Compilation", "duration_sec": 30}}`,
		`{"content": {"title": "Python Tutorial for Beginners", "duration_sec": 1800}}`,
		`{"content": {"title": ""}}`,
	})

	processor := NewProcessor(testAnalyzer(), 2)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	succeeded := 0
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			continue
		}
		succeeded++
		if r.Analysis == nil || r.Analysis.Risk == nil {
			t.Errorf("Expected complete analysis for %q", r.Title)
		}
	}

	if succeeded != 2 {
		t.Errorf("Expected 2 successes, got %d", succeeded)
	}
	if failed != 1 {
		t.Errorf("Expected 1 failure for empty title, got %d", failed)
	}
}

func TestProcessor_EmptyInput(t *testing.T) {
	processor := NewProcessor(testAnalyzer(), 2)

	results := processor.ProcessRequests(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results for empty input, got %d", len(results))
	}
}
