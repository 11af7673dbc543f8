package score

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feedguard/feedguard/internal/model"
)

// categoryScores maps each content category to its base score
var categoryScores = map[model.Category]int{
	model.CategoryHarmful:       90,
	model.CategoryAddictive:     70,
	model.CategoryEntertainment: 40,
	model.CategoryNeutral:       20,
	model.CategoryProductive:    10,
	model.CategoryEducational:   5,
}

// defaultCategoryScore applies when the category is unknown
const defaultCategoryScore = 20

// triggerWeights maps each trigger label to its score contribution
var triggerWeights = map[model.Trigger]int{
	model.TriggerShortDuration: 10,
	model.TriggerCompilation:   10,
	model.TriggerHumor:         5,
	model.TriggerShock:         8,
	model.TriggerFOMO:          12,
	model.TriggerClickbait:     7,
	model.TriggerRepetition:    15,
}

// defaultTriggerWeight applies to unknown trigger labels
const defaultTriggerWeight = 5

// Scorer computes the addiction index and derives tier and action
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score combines category base score, trigger weights, and behavioral
// context into a bounded 0-100 index. Pure, deterministic, and total:
// malformed input defaults safely and no error paths exist.
func (s *Scorer) Score(classification *model.Classification, behavioral model.BehavioralContext) *model.RiskScore {
	base := defaultCategoryScore
	var category model.Category
	var triggers []model.Trigger

	if classification != nil {
		category = classification.Category
		triggers = classification.Triggers
		if v, ok := categoryScores[category]; ok {
			base = v
		}
	}

	triggerScore := 0
	for _, t := range triggers {
		triggerScore += triggerWeight(t)
	}

	behavioralScore := s.behavioralScore(behavioral)

	index := base + triggerScore + behavioralScore
	if index > 100 {
		index = 100
	}

	return &model.RiskScore{
		Index:        index,
		Tier:         riskTier(index),
		Action:       recommendAction(index),
		MajorFactors: s.majorFactors(category, triggers, behavioral, behavioralScore),
		Breakdown: model.ScoreBreakdown{
			Base:       base,
			Trigger:    triggerScore,
			Behavioral: behavioralScore,
		},
	}
}

func triggerWeight(t model.Trigger) int {
	if w, ok := triggerWeights[t]; ok {
		return w
	}
	return defaultTriggerWeight
}

// behavioralScore computes the contribution from usage signals. The result
// never goes below zero: the explicit-search discount applies before the
// floor, not after.
func (s *Scorer) behavioralScore(ctx model.BehavioralContext) int {
	score := 0

	// Session duration (minutes in last hour); highest matching tier only
	switch {
	case ctx.SessionMinutes > 60:
		score += 20
	case ctx.SessionMinutes > 30:
		score += 15
	case ctx.SessionMinutes > 15:
		score += 10
	case ctx.SessionMinutes > 5:
		score += 5
	}

	// Repeat viewing pattern
	switch {
	case ctx.RepeatCount > 5:
		score += 20
	case ctx.RepeatCount > 2:
		score += 15
	case ctx.RepeatCount > 0:
		score += 10
	}

	if isLateNight(ctx.TimeOfDay) {
		score += 10
	}

	// Explicit search lowers risk
	if ctx.UserSearched {
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	return score
}

// isLateNight parses "HH:MM" leniently; unparsable values contribute zero
func isLateNight(timeOfDay string) bool {
	if timeOfDay == "" {
		return false
	}
	hourStr, _, _ := strings.Cut(timeOfDay, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	return hour >= 23 || hour < 6
}

// riskTier buckets the index into the coarse tier ladder (31/61/81)
func riskTier(index int) model.RiskTier {
	switch {
	case index >= 81:
		return model.TierCritical
	case index >= 61:
		return model.TierHigh
	case index >= 31:
		return model.TierModerate
	default:
		return model.TierLow
	}
}

// recommendAction maps the index onto the finer action ladder
// (30/61/81/91). The cut points are intentionally decoupled from the tier
// thresholds: index 85 is critical tier but replace, not lockout.
func recommendAction(index int) model.Action {
	switch {
	case index >= 91:
		return model.ActionLockout
	case index >= 81:
		return model.ActionReplace
	case index >= 61:
		return model.ActionBlur
	case index >= 30:
		return model.ActionNudge
	default:
		return model.ActionNone
	}
}

// majorFactors lists the dominant contributors to the score
func (s *Scorer) majorFactors(category model.Category, triggers []model.Trigger, ctx model.BehavioralContext, behavioralScore int) []string {
	var factors []string

	if category == model.CategoryAddictive || category == model.CategoryHarmful {
		factors = append(factors, fmt.Sprintf("Content category: %s", category))
	}

	var highWeight []string
	for _, t := range triggers {
		if triggerWeights[t] >= 10 {
			highWeight = append(highWeight, string(t))
		}
	}
	if len(highWeight) > 0 {
		factors = append(factors, fmt.Sprintf("High-risk triggers: %s", strings.Join(highWeight, ", ")))
	}

	// Behavioral descriptors only when the behavioral sub-score is material
	if behavioralScore >= 15 {
		if ctx.SessionMinutes > 30 {
			factors = append(factors, "Extended session duration")
		}
		if ctx.RepeatCount > 2 {
			factors = append(factors, "Repeated viewing pattern")
		}
		if isLateNight(ctx.TimeOfDay) {
			factors = append(factors, "Late-night usage")
		}
	}

	if len(factors) == 0 {
		return []string{"Low-risk content"}
	}
	return factors
}
