package model

// Platform identifies the surface a content item was observed on
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
)

// NormalizePlatform maps a raw platform string to a supported platform.
// Unrecognized values default to YouTube.
func NormalizePlatform(raw string) Platform {
	switch Platform(raw) {
	case PlatformYouTube, PlatformInstagram:
		return Platform(raw)
	default:
		return PlatformYouTube
	}
}

// ContentItem is a normalized feed item. Immutable once produced by the
// normalizer.
type ContentItem struct {
	ID          string      `json:"id"`           // Stable identifier (hash of title+url if absent)
	Title       string      `json:"title"`        // Required
	URL         string      `json:"url"`          // Optional
	DurationSec int         `json:"duration_sec"` // Seconds, >= 0
	Channel     string      `json:"channel"`      // "Unknown" when absent
	Thumbnail   string      `json:"thumbnail"`
	Description string      `json:"description"`
	Platform    Platform    `json:"platform"`
	Meta        ContentMeta `json:"metadata"`
}

// ContentMeta holds cheap structural flags derived during normalization
type ContentMeta struct {
	HasDuration    bool `json:"has_duration"`
	HasThumbnail   bool `json:"has_thumbnail"`
	TitleLength    int  `json:"title_length"`
	HasDescription bool `json:"has_description"`
}

// LengthClass buckets content by how it is typically consumed
type LengthClass string

const (
	LengthShortForm  LengthClass = "short_form"  // < 60s: Shorts, Reels
	LengthMediumForm LengthClass = "medium_form" // < 600s: regular videos
	LengthLongForm   LengthClass = "long_form"   // streams, long videos
)

// DurationBucket is the finer five-step duration classification
type DurationBucket string

const (
	BucketUnder1Min  DurationBucket = "under_1min"
	Bucket1To5Min    DurationBucket = "1_to_5min"
	Bucket5To15Min   DurationBucket = "5_to_15min"
	Bucket15MinTo1Hr DurationBucket = "15min_to_1hr"
	BucketOver1Hr    DurationBucket = "over_1hr"
)

// TitleIndicators are boolean lexical signals extracted from the title.
// Downstream stages use these for quick decisions without re-parsing.
type TitleIndicators struct {
	HasAddictiveKeywords   bool `json:"has_addictive_keywords"`
	HasEducationalKeywords bool `json:"has_educational_keywords"`
	HasClickbaitKeywords   bool `json:"has_clickbait_keywords"`
	HasDigits              bool `json:"has_numbers"`
	HasCapsWord            bool `json:"has_caps"`
	HasNonASCII            bool `json:"has_emoji"`
}

// ContentContext is derived once from a ContentItem and read-only thereafter
type ContentContext struct {
	Platform       Platform        `json:"platform"`
	LengthClass    LengthClass     `json:"content_type"`
	DurationBucket DurationBucket  `json:"duration_category"`
	Title          TitleIndicators `json:"title_indicators"`
}
