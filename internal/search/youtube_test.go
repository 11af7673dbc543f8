package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/feedguard/feedguard/internal/model"
)

func TestYouTubeProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "study with me" {
			t.Errorf("Unexpected query: %s", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("Unexpected API key: %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{
					"id": {"videoId": "vid123"},
					"snippet": {
						"title": "Study With Me",
						"description": "Focused session",
						"channelTitle": "StudyChan",
						"thumbnails": {"medium": {"url": "https://img.example/1.jpg"}}
					}
				},
				{
					"id": {},
					"snippet": {"title": "Not a video"}
				}
			]
		}`))
	}))
	defer server.Close()

	p := NewYouTubeProvider(model.SearchConfig{APIKey: "test-key", BaseURL: server.URL}, nil)

	results, err := p.Search(context.Background(), "study with me", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Entries without a video ID are skipped
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].VideoID != "vid123" {
		t.Errorf("Unexpected video ID: %s", results[0].VideoID)
	}
	if results[0].URL != "https://www.youtube.com/watch?v=vid123" {
		t.Errorf("Unexpected URL: %s", results[0].URL)
	}
	if results[0].Channel != "StudyChan" {
		t.Errorf("Unexpected channel: %s", results[0].Channel)
	}
}

func TestYouTubeProvider_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
	}))
	defer server.Close()

	p := NewYouTubeProvider(model.SearchConfig{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, err := p.Search(context.Background(), "anything", 3)
	if err == nil {
		t.Fatal("Expected error for API failure")
	}

	var provErr *model.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Provider != "youtube" {
		t.Errorf("Expected youtube provider in error, got %s", provErr.Provider)
	}
}
