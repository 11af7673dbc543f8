package score

import (
	"testing"

	"github.com/feedguard/feedguard/internal/model"
)

func TestScorer_AddictiveShortCompilation(t *testing.T) {
	scorer := NewScorer()

	classification := &model.Classification{
		Category: model.CategoryAddictive,
		Triggers: []model.Trigger{model.TriggerShortDuration, model.TriggerCompilation},
	}
	behavioral := model.BehavioralContext{
		SessionMinutes: 45,
		RepeatCount:    3,
		TimeOfDay:      "23:30",
	}

	result := scorer.Score(classification, behavioral)

	// 70 base + 20 triggers + (15 session + 15 repeat + 10 late night) = 130, clamped
	if result.Index != 100 {
		t.Errorf("Expected index 100, got %d", result.Index)
	}
	if result.Tier != model.TierCritical {
		t.Errorf("Expected critical tier, got %s", result.Tier)
	}
	if result.Action != model.ActionLockout {
		t.Errorf("Expected lockout action, got %s", result.Action)
	}
	if result.Breakdown.Base != 70 {
		t.Errorf("Expected base 70, got %d", result.Breakdown.Base)
	}
	if result.Breakdown.Trigger != 20 {
		t.Errorf("Expected trigger score 20, got %d", result.Breakdown.Trigger)
	}
	if result.Breakdown.Behavioral != 40 {
		t.Errorf("Expected behavioral score 40, got %d", result.Breakdown.Behavioral)
	}
}

func TestScorer_EducationalContent(t *testing.T) {
	scorer := NewScorer()

	classification := &model.Classification{
		Category: model.CategoryEducational,
		Triggers: []model.Trigger{},
	}

	result := scorer.Score(classification, model.BehavioralContext{})

	if result.Index != 5 {
		t.Errorf("Expected index 5, got %d", result.Index)
	}
	if result.Tier != model.TierLow {
		t.Errorf("Expected low tier, got %s", result.Tier)
	}
	if result.Action != model.ActionNone {
		t.Errorf("Expected no action, got %s", result.Action)
	}
}

func TestScorer_UnknownCategoryDefaults(t *testing.T) {
	scorer := NewScorer()

	classification := &model.Classification{
		Category: model.Category("mystery"),
		Triggers: []model.Trigger{model.Trigger("novel_trigger")},
	}

	result := scorer.Score(classification, model.BehavioralContext{})

	// Unknown category 20 + unknown trigger 5
	if result.Index != 25 {
		t.Errorf("Expected index 25, got %d", result.Index)
	}
}

func TestScorer_NilClassification(t *testing.T) {
	scorer := NewScorer()

	result := scorer.Score(nil, model.BehavioralContext{})

	if result.Index != 20 {
		t.Errorf("Expected default index 20, got %d", result.Index)
	}
	if result.Action != model.ActionNone {
		t.Errorf("Expected no action, got %s", result.Action)
	}
}

func TestScorer_SearchDiscountClampsAtZero(t *testing.T) {
	scorer := NewScorer()

	// No behavioral signals except an explicit search: -5 must clamp to 0
	behavioral := model.BehavioralContext{UserSearched: true}
	score := scorer.behavioralScore(behavioral)

	if score != 0 {
		t.Errorf("Expected behavioral score 0, got %d", score)
	}
}

func TestScorer_SessionTiersAreExclusive(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		minutes  int
		expected int
	}{
		{0, 0},
		{5, 0},
		{6, 5},
		{15, 5},
		{16, 10},
		{30, 10},
		{31, 15},
		{60, 15},
		{61, 20},
		{500, 20},
	}

	for _, tt := range tests {
		got := scorer.behavioralScore(model.BehavioralContext{SessionMinutes: tt.minutes})
		if got != tt.expected {
			t.Errorf("Session %d minutes: expected %d, got %d", tt.minutes, tt.expected, got)
		}
	}
}

func TestScorer_TierAndActionLaddersDecoupled(t *testing.T) {
	tests := []struct {
		index  int
		tier   model.RiskTier
		action model.Action
	}{
		{0, model.TierLow, model.ActionNone},
		{29, model.TierLow, model.ActionNone},
		{30, model.TierLow, model.ActionNudge},
		{31, model.TierModerate, model.ActionNudge},
		{60, model.TierModerate, model.ActionNudge},
		{61, model.TierHigh, model.ActionBlur},
		{80, model.TierHigh, model.ActionBlur},
		{81, model.TierCritical, model.ActionReplace},
		{85, model.TierCritical, model.ActionReplace},
		{90, model.TierCritical, model.ActionReplace},
		{91, model.TierCritical, model.ActionLockout},
		{100, model.TierCritical, model.ActionLockout},
	}

	for _, tt := range tests {
		if got := riskTier(tt.index); got != tt.tier {
			t.Errorf("Index %d: expected tier %s, got %s", tt.index, tt.tier, got)
		}
		if got := recommendAction(tt.index); got != tt.action {
			t.Errorf("Index %d: expected action %s, got %s", tt.index, tt.action, got)
		}
	}
}

func TestIsLateNight(t *testing.T) {
	tests := []struct {
		timeOfDay string
		expected  bool
	}{
		{"23:00", true},
		{"23:59", true},
		{"00:00", true},
		{"05:59", true},
		{"06:00", false},
		{"12:30", false},
		{"22:59", false},
		{"", false},
		{"not a time", false},
		{"25:00", false},
		{"-1:00", false},
	}

	for _, tt := range tests {
		if got := isLateNight(tt.timeOfDay); got != tt.expected {
			t.Errorf("isLateNight(%q): expected %v, got %v", tt.timeOfDay, tt.expected, got)
		}
	}
}

func TestScorer_MajorFactors(t *testing.T) {
	scorer := NewScorer()

	classification := &model.Classification{
		Category: model.CategoryAddictive,
		Triggers: []model.Trigger{model.TriggerFOMO, model.TriggerHumor},
	}
	behavioral := model.BehavioralContext{SessionMinutes: 45, RepeatCount: 4}

	result := scorer.Score(classification, behavioral)

	assertContains(t, result.MajorFactors, "Content category: addictive")
	assertContains(t, result.MajorFactors, "High-risk triggers: FOMO")
	assertContains(t, result.MajorFactors, "Extended session duration")
	assertContains(t, result.MajorFactors, "Repeated viewing pattern")
}

func TestScorer_LowRiskFactorFallback(t *testing.T) {
	scorer := NewScorer()

	classification := &model.Classification{
		Category: model.CategoryNeutral,
		Triggers: []model.Trigger{},
	}

	result := scorer.Score(classification, model.BehavioralContext{})

	if len(result.MajorFactors) != 1 || result.MajorFactors[0] != "Low-risk content" {
		t.Errorf("Expected single low-risk factor, got %v", result.MajorFactors)
	}
}

func assertContains(t *testing.T, list []string, want string) {
	t.Helper()
	for _, s := range list {
		if s == want {
			return
		}
	}
	t.Errorf("Expected %q in %v", want, list)
}
