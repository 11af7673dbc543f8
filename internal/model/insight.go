package model

// Trend classifies the direction of a user's recent risk scores
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// UserSummary aggregates a user's observed behavior
type UserSummary struct {
	AvgDailyMinutes float64 `json:"avg_daily_addictive_minutes"`
	AvgRiskIndex    float64 `json:"avg_addiction_score"`
	StreakDays      int     `json:"streak_days"` // Number of daily minute buckets
	Trend           Trend   `json:"trend"`
	TotalItems      int     `json:"total_items_viewed"`
}

// BehaviorInsight is a read-only snapshot derived from a user profile at
// query time. Never persisted; recomputed on demand.
type BehaviorInsight struct {
	Summary           UserSummary `json:"user_summary"`
	EarlyWarning      bool        `json:"early_warning"`
	SuggestedSchedule string      `json:"suggested_intervention_schedule"`
	Insights          []string    `json:"insights"`
}
