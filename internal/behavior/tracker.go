package behavior

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/feedguard/feedguard/internal/model"
)

// Tracker maintains per-user rolling history and derives longitudinal
// insights. All state lives behind the injected Store.
type Tracker struct {
	store Store
	now   func() time.Time // Injectable clock for tests
}

// NewTracker creates a tracker backed by the given store
func NewTracker(store Store) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
	}
}

// Record appends one observation to the user's profile: timestamp, risk
// index, category tally, late-night counter, and estimated minutes in the
// current day's bucket. The observation timestamp is the day-boundary
// signal: a new UTC calendar date starts a new minutes bucket.
func (t *Tracker) Record(userID string, item *model.ContentItem, riskIndex int, category model.Category) {
	ts := t.now().UTC()
	day := ts.Format("2006-01-02")
	minutes := float64(item.DurationSec) / 60

	t.store.Update(userID, func(p *Profile) {
		p.Timestamps = append(p.Timestamps, ts)
		p.RiskIndices = append(p.RiskIndices, riskIndex)
		p.CategoryCounts[category]++

		if ts.Hour() >= 23 || ts.Hour() < 6 {
			p.LateNightCount++
		}

		if len(p.DailyMinutes) == 0 || p.CurrentDay != day {
			p.DailyMinutes = append(p.DailyMinutes, minutes)
			p.CurrentDay = day
		} else {
			p.DailyMinutes[len(p.DailyMinutes)-1] += minutes
		}
	})
}

// Analyze derives a read-only insight snapshot for the user. Unknown users
// get a neutral zero-state with no warning.
func (t *Tracker) Analyze(userID string) *model.BehaviorInsight {
	profile, ok := t.store.Snapshot(userID)
	if !ok {
		return &model.BehaviorInsight{
			Summary:           model.UserSummary{Trend: model.TrendStable},
			EarlyWarning:      false,
			SuggestedSchedule: "No intervention needed",
			Insights:          []string{},
		}
	}

	avgScore := mean(profile.RiskIndices)
	avgMinutes := meanFloat(profile.DailyMinutes)
	trend := detectTrend(profile.RiskIndices)

	earlyWarning := avgScore > 60 ||
		avgMinutes > 60 ||
		profile.LateNightCount > 3 ||
		trend == model.TrendIncreasing

	return &model.BehaviorInsight{
		Summary: model.UserSummary{
			AvgDailyMinutes: round1(avgMinutes),
			AvgRiskIndex:    round1(avgScore),
			StreakDays:      len(profile.DailyMinutes),
			Trend:           trend,
			TotalItems:      len(profile.RiskIndices),
		},
		EarlyWarning:      earlyWarning,
		SuggestedSchedule: suggestSchedule(profile, earlyWarning, avgScore),
		Insights:          generateInsights(profile, avgScore, avgMinutes),
	}
}

// Delete removes all data for the user
func (t *Tracker) Delete(userID string) {
	t.store.Delete(userID)
}

// detectTrend compares the mean of the most recent window against the mean
// of all strictly older observations. Requires at least 3 observations and
// at least one older observation to depart from stable.
func detectTrend(scores []int) model.Trend {
	if len(scores) < 3 {
		return model.TrendStable
	}

	window := 3
	if len(scores) >= 5 {
		window = 5
	}

	recent := scores[len(scores)-window:]
	older := scores[:len(scores)-window]
	if len(older) == 0 {
		return model.TrendStable
	}

	recentAvg := mean(recent)
	olderAvg := mean(older)

	switch {
	case recentAvg > olderAvg*1.25:
		return model.TrendIncreasing
	case recentAvg < olderAvg*0.75:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

// generateInsights returns the ordered list of human-readable observations
func generateInsights(p *Profile, avgScore, avgMinutes float64) []string {
	var insights []string

	if p.LateNightCount > 3 {
		insights = append(insights, "Late-night usage pattern detected (>3 sessions after 11 PM)")
	}
	if avgScore > 70 {
		insights = append(insights, fmt.Sprintf("Average addiction score is high (%.1f/100)", avgScore))
	}
	if avgMinutes > 60 {
		insights = append(insights, fmt.Sprintf("Daily addictive content time exceeds 1 hour (%.1f min)", avgMinutes))
	}

	if cnt, ok := p.CategoryCounts[model.CategoryAddictive]; ok && cnt > 5 {
		insights = append(insights, fmt.Sprintf("High consumption of addictive content (%d items)", cnt))
	}
	if cnt, ok := p.CategoryCounts[model.CategoryEducational]; ok && cnt < 2 {
		insights = append(insights, "Low engagement with educational content")
	}

	if avgScore < 40 {
		insights = append(insights, "Maintaining healthy content consumption patterns")
	}

	if len(insights) == 0 {
		return []string{"No concerning patterns detected"}
	}
	return insights
}

// suggestSchedule composes the intervention cadence suggestion from the
// specific conditions that fired.
func suggestSchedule(p *Profile, earlyWarning bool, avgScore float64) string {
	if !earlyWarning {
		return "Continue current monitoring. No additional interventions needed."
	}

	var suggestions []string

	if p.LateNightCount > 3 {
		suggestions = append(suggestions, "Increase intervention strength during evening hours (9 PM - 12 AM)")
	}
	if avgScore > 70 {
		suggestions = append(suggestions, "Apply blur interventions more aggressively")
	}
	if p.CategoryCounts[model.CategoryAddictive] > 5 {
		suggestions = append(suggestions, "Proactively suggest alternatives for short-form content")
	}

	if len(suggestions) == 0 {
		return "Monitor closely and adjust interventions as needed"
	}
	return strings.Join(suggestions, "; ")
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
