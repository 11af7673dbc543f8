package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/feedguard/feedguard/internal/model"
)

// RawItem is an unvalidated content item as submitted by a client surface
type RawItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	DurationSec *int   `json:"duration_sec,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
	Platform    string `json:"platform,omitempty"`
}

// Keyword groups used for title indicators. Matching is case-insensitive
// substring matching over the lowercased title.
var (
	addictiveKeywords = []string{
		"try not to laugh", "compilation", "meme", "funny",
		"best of", "fails", "reaction", "tiktok", "viral",
	}
	educationalKeywords = []string{
		"tutorial", "learn", "study", "lecture", "course",
		"guide", "how to", "explained", "documentary",
	}
	clickbaitKeywords = []string{
		"you won't believe", "shocking", "must see", "gone wrong",
		"insane", "crazy", "unbelievable",
	}
)

// Normalizer validates and canonicalizes raw content items
type Normalizer struct{}

// NewNormalizer creates a new normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize validates the raw item and derives its context. Pure function
// of the input: repeated ingestion of the same item yields identical output.
func (n *Normalizer) Normalize(raw RawItem) (*model.ContentItem, *model.ContentContext, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil, nil, &model.ValidationError{Field: "title", Reason: "required field missing"}
	}

	duration := 0
	if raw.DurationSec != nil && *raw.DurationSec > 0 {
		duration = *raw.DurationSec
	}

	channel := raw.Channel
	if channel == "" {
		channel = "Unknown"
	}

	id := raw.ID
	if id == "" {
		id = deriveID(title, raw.URL)
	}

	item := &model.ContentItem{
		ID:          id,
		Title:       title,
		URL:         raw.URL,
		DurationSec: duration,
		Channel:     channel,
		Thumbnail:   raw.Thumbnail,
		Description: raw.Description,
		Platform:    model.NormalizePlatform(strings.ToLower(raw.Platform)),
		Meta: model.ContentMeta{
			HasDuration:    raw.DurationSec != nil,
			HasThumbnail:   raw.Thumbnail != "",
			TitleLength:    len(title),
			HasDescription: raw.Description != "",
		},
	}

	ctx := &model.ContentContext{
		Platform:       item.Platform,
		LengthClass:    lengthClass(duration),
		DurationBucket: durationBucket(duration),
		Title:          titleIndicators(title),
	}

	return item, ctx, nil
}

// deriveID generates a short stable identifier from title and URL so that
// repeated ingestion of the same unidentified item is reproducible.
func deriveID(title, url string) string {
	hash := sha256.Sum256([]byte(title + url))
	return hex.EncodeToString(hash[:])[:12]
}

func lengthClass(durationSec int) model.LengthClass {
	switch {
	case durationSec < 60:
		return model.LengthShortForm
	case durationSec < 600:
		return model.LengthMediumForm
	default:
		return model.LengthLongForm
	}
}

func durationBucket(durationSec int) model.DurationBucket {
	switch {
	case durationSec < 60:
		return model.BucketUnder1Min
	case durationSec < 300:
		return model.Bucket1To5Min
	case durationSec < 900:
		return model.Bucket5To15Min
	case durationSec < 3600:
		return model.Bucket15MinTo1Hr
	default:
		return model.BucketOver1Hr
	}
}

func titleIndicators(title string) model.TitleIndicators {
	lower := strings.ToLower(title)

	return model.TitleIndicators{
		HasAddictiveKeywords:   containsAny(lower, addictiveKeywords),
		HasEducationalKeywords: containsAny(lower, educationalKeywords),
		HasClickbaitKeywords:   containsAny(lower, clickbaitKeywords),
		HasDigits:              strings.ContainsFunc(title, func(r rune) bool { return r >= '0' && r <= '9' }),
		HasCapsWord:            hasCapsWord(title),
		HasNonASCII:            strings.ContainsFunc(title, func(r rune) bool { return r > 127 }),
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// hasCapsWord reports whether the title contains an all-caps word longer
// than two characters (SHOUTING titles correlate with clickbait).
func hasCapsWord(title string) bool {
	for _, word := range strings.Fields(title) {
		if len(word) > 2 && word == strings.ToUpper(word) && word != strings.ToLower(word) {
			return true
		}
	}
	return false
}
