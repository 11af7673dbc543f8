package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/worker"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeProvider searches the YouTube Data API v3 for alternative content.
// All outbound calls go through the shared per-host rate limiter.
type YouTubeProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *worker.Limiter
}

// NewYouTubeProvider creates a provider from config. The limiter may be nil
// to disable client-side throttling.
func NewYouTubeProvider(cfg model.SearchConfig, limiter *worker.Limiter) *YouTubeProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &YouTubeProvider{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// Name returns the provider name
func (p *YouTubeProvider) Name() string {
	return "youtube"
}

// searchResponse mirrors the subset of the Data API search.list response we
// consume
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search queries search.list for videos matching the query
func (p *YouTubeProvider) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 3
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("order", "relevance")
	params.Set("safeSearch", "moderate")
	params.Set("key", p.apiKey)

	endpoint := p.baseURL + "/search?" + params.Encode()

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, endpoint); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &model.ProviderError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.ProviderError{Provider: p.Name(), Err: err}
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &model.ProviderError{Provider: p.Name(), Err: fmt.Errorf("decode search response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return nil, &model.ProviderError{Provider: p.Name(), Err: fmt.Errorf("youtube API error: %s", msg)}
	}

	results := make([]Result, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, Result{
			VideoID:     item.ID.VideoID,
			Title:       item.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Channel:     item.Snippet.ChannelTitle,
			Thumbnail:   item.Snippet.Thumbnails.Medium.URL,
			Description: item.Snippet.Description,
		})
	}

	return results, nil
}
