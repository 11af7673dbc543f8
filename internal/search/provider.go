package search

import "context"

// Result is one candidate item returned by a search provider
type Result struct {
	VideoID     string `json:"video_id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Channel     string `json:"channel,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty"`
}

// Provider defines the search boundary. Implementations must be safe for
// concurrent use. Provider absence is not observable to callers beyond
// reduced result diversity: the factory substitutes the deterministic
// fallback provider so call sites never branch on availability.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search returns up to maxResults candidates for the query
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
