package ingest

import (
	"errors"
	"testing"

	"github.com/feedguard/feedguard/internal/model"
)

func intPtr(v int) *int { return &v }

func TestNormalizer_BasicItem(t *testing.T) {
	n := NewNormalizer()

	item, ctx, err := n.Normalize(RawItem{
		Title:       "TOP 10 FUNNIEST Fails Compilation 2024",
		URL:         "https://youtube.com/watch?v=abc123",
		DurationSec: intPtr(45),
		Channel:     "FailsDaily",
		Platform:    "youtube",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.DurationSec != 45 {
		t.Errorf("Expected duration 45, got %d", item.DurationSec)
	}
	if !item.Meta.HasDuration {
		t.Error("Expected HasDuration to be set")
	}
	if ctx.LengthClass != model.LengthShortForm {
		t.Errorf("Expected short_form, got %s", ctx.LengthClass)
	}
	if ctx.DurationBucket != model.BucketUnder1Min {
		t.Errorf("Expected under_1min bucket, got %s", ctx.DurationBucket)
	}
	if !ctx.Title.HasAddictiveKeywords {
		t.Error("Expected addictive keywords for compilation title")
	}
	if !ctx.Title.HasDigits {
		t.Error("Expected digits indicator")
	}
	if !ctx.Title.HasCapsWord {
		t.Error("Expected caps word indicator for FUNNIEST")
	}
}

func TestNormalizer_MissingTitle(t *testing.T) {
	n := NewNormalizer()

	_, _, err := n.Normalize(RawItem{Title: "   "})
	if err == nil {
		t.Fatal("Expected validation error for missing title")
	}

	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if valErr.Field != "title" {
		t.Errorf("Expected title field, got %s", valErr.Field)
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer()

	raw := RawItem{
		Title:       "Python Tutorial for Beginners",
		URL:         "https://youtube.com/watch?v=xyz",
		DurationSec: intPtr(1800),
	}

	item1, ctx1, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	item2, ctx2, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item1.ID != item2.ID {
		t.Errorf("Expected stable derived ID, got %s and %s", item1.ID, item2.ID)
	}
	if *ctx1 != *ctx2 {
		t.Errorf("Expected identical contexts, got %+v and %+v", ctx1, ctx2)
	}
}

func TestNormalizer_Defaults(t *testing.T) {
	n := NewNormalizer()

	item, ctx, err := n.Normalize(RawItem{Title: "Some Video"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.Channel != "Unknown" {
		t.Errorf("Expected Unknown channel, got %s", item.Channel)
	}
	if item.Platform != model.PlatformYouTube {
		t.Errorf("Expected youtube platform default, got %s", item.Platform)
	}
	if item.Meta.HasDuration {
		t.Error("Expected HasDuration false when duration omitted")
	}
	if item.ID == "" || len(item.ID) != 12 {
		t.Errorf("Expected 12-char derived ID, got %q", item.ID)
	}
	// Missing duration is treated as zero-length short form
	if ctx.LengthClass != model.LengthShortForm {
		t.Errorf("Expected short_form for missing duration, got %s", ctx.LengthClass)
	}
}

func TestDurationBuckets(t *testing.T) {
	tests := []struct {
		seconds  int
		expected model.DurationBucket
	}{
		{0, model.BucketUnder1Min},
		{59, model.BucketUnder1Min},
		{60, model.Bucket1To5Min},
		{299, model.Bucket1To5Min},
		{300, model.Bucket5To15Min},
		{899, model.Bucket5To15Min},
		{900, model.Bucket15MinTo1Hr},
		{3599, model.Bucket15MinTo1Hr},
		{3600, model.BucketOver1Hr},
	}

	for _, tt := range tests {
		if got := durationBucket(tt.seconds); got != tt.expected {
			t.Errorf("durationBucket(%d): expected %s, got %s", tt.seconds, tt.expected, got)
		}
	}
}

func TestHasCapsWord(t *testing.T) {
	tests := []struct {
		title    string
		expected bool
	}{
		{"SHOCKING video", true},
		{"normal title here", false},
		{"an OK title", false}, // Two-letter words don't count
		{"Title With Caps", false},
		{"100% WILD", true},
	}

	for _, tt := range tests {
		if got := hasCapsWord(tt.title); got != tt.expected {
			t.Errorf("hasCapsWord(%q): expected %v, got %v", tt.title, tt.expected, got)
		}
	}
}
