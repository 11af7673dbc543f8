package model

import "fmt"

// Category classifies content by its impact on wellbeing and productivity
type Category string

const (
	CategoryEducational   Category = "educational"
	CategoryProductive    Category = "productive"
	CategoryNeutral       Category = "neutral"
	CategoryEntertainment Category = "entertainment"
	CategoryAddictive     Category = "addictive"
	CategoryHarmful       Category = "harmful"
)

// ValidCategories is the closed category vocabulary
var ValidCategories = []Category{
	CategoryEducational,
	CategoryProductive,
	CategoryNeutral,
	CategoryEntertainment,
	CategoryAddictive,
	CategoryHarmful,
}

// Trigger labels a specific addictive pattern detected in content
type Trigger string

const (
	TriggerShortDuration Trigger = "short_duration"
	TriggerCompilation   Trigger = "compilation"
	TriggerHumor         Trigger = "humor"
	TriggerShock         Trigger = "shock"
	TriggerFOMO          Trigger = "FOMO"
	TriggerClickbait     Trigger = "clickbait"
	TriggerRepetition    Trigger = "repetition"
)

// ThumbnailSentiment summarizes the emotional tone of a thumbnail
type ThumbnailSentiment string

const (
	SentimentPositive  ThumbnailSentiment = "positive"
	SentimentNeutral   ThumbnailSentiment = "neutral"
	SentimentNegative  ThumbnailSentiment = "negative"
	SentimentClickbait ThumbnailSentiment = "clickbait"
)

// Classification is the classifier's output for one content item
type Classification struct {
	Category           Category           `json:"category"`
	Reason             string             `json:"reason"`
	Triggers           []Trigger          `json:"triggers"`
	ThumbnailSentiment ThumbnailSentiment `json:"thumbnail_sentiment"`
	Confidence         float64            `json:"confidence"` // [0, 1]
	Source             string             `json:"source,omitempty"` // "llm" or "heuristic"
}

// Validate checks the classification against the schema invariants.
// A classification failing validation must be discarded by the caller
// in favor of the heuristic fallback.
func (c *Classification) Validate() error {
	valid := false
	for _, cat := range ValidCategories {
		if c.Category == cat {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", c.Category)}
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return &ValidationError{Field: "confidence", Reason: fmt.Sprintf("confidence %.2f outside [0,1]", c.Confidence)}
	}
	if c.Triggers == nil {
		return &ValidationError{Field: "triggers", Reason: "triggers list missing"}
	}
	return nil
}
