package model

// BehavioralContext carries usage signals observed by the client surface
type BehavioralContext struct {
	SessionMinutes int    `json:"session_minutes"` // Minutes in the current session, >= 0
	RepeatCount    int    `json:"repeat_count"`    // Repeat views of similar content, >= 0
	TimeOfDay      string `json:"time_of_day"`     // "HH:MM", parsed leniently
	UserSearched   bool   `json:"user_searched"`   // Explicit search lowers risk
}

// RiskTier is the coarse risk bucket derived from the addiction index
type RiskTier string

const (
	TierLow      RiskTier = "low"      // index < 31
	TierModerate RiskTier = "moderate" // 31-60
	TierHigh     RiskTier = "high"     // 61-80
	TierCritical RiskTier = "critical" // >= 81
)

// Action is the intervention a client surface should apply.
// Action thresholds use a finer ladder than tiers and the two scales are
// intentionally independent.
type Action string

const (
	ActionNone    Action = "none"    // index < 30
	ActionNudge   Action = "nudge"   // >= 30
	ActionBlur    Action = "blur"    // >= 61
	ActionReplace Action = "replace" // >= 81
	ActionLockout Action = "lockout" // >= 91
)

// ScoreBreakdown exposes the three sub-scores that sum to the index
type ScoreBreakdown struct {
	Base       int `json:"base_score"`
	Trigger    int `json:"trigger_score"`
	Behavioral int `json:"behavioral_score"`
}

// RiskScore is the scorer's output. Computed fresh per item, never mutated.
type RiskScore struct {
	Index        int            `json:"addiction_index"` // [0, 100]
	Tier         RiskTier       `json:"risk_level"`
	Action       Action         `json:"recommended_action"`
	MajorFactors []string       `json:"major_factors"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
}
