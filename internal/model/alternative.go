package model

// Alternative is one healthier content suggestion
type Alternative struct {
	Title             string `json:"title"`
	URL               string `json:"url"`
	Reason            string `json:"reason"`             // Human-readable justification
	SearchQuery       string `json:"search_query"`       // Query that produced this entry
	Type              string `json:"type"`               // "video" or "guided_exercise"
	EstimatedDuration int    `json:"estimated_duration"` // Seconds
}

// Button is one call-to-action in an intervention overlay
type Button struct {
	Label     string `json:"label"`
	ActionKey string `json:"action_key"`
}

// InterventionDecision is the presentation payload for a chosen action.
// Purely derived from the recommended action and the alternative list.
type InterventionDecision struct {
	Action            Action   `json:"intervention_type"`
	OverlayText       string   `json:"overlay_text"`
	Buttons           []Button `json:"cta_buttons"`
	CSSSnippet        string   `json:"css_snippet,omitempty"`
	TimerSeconds      int      `json:"timer_seconds,omitempty"` // Lockout countdown
	AlternativesCount int      `json:"alternatives_count"`
	RiskIndex         int      `json:"addiction_index"`
}
