package model

import (
	"fmt"
	"time"
)

// Stage names the pipeline stages in execution order
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageClassify  Stage = "classify"
	StageScore     Stage = "score"
	StageTrack     Stage = "track"
	StageRecommend Stage = "recommend"
	StageRender    Stage = "render"
)

// AnalysisResult is the combined output of one pipeline run. Stage fields
// are filled in order; on failure the fields computed so far remain set so
// callers can diagnose which stage broke (partial-result semantics).
type AnalysisResult struct {
	RunID          string                `json:"run_id"`
	AnalyzedAt     time.Time             `json:"analyzed_at"`
	ElapsedSeconds float64               `json:"elapsed_seconds"`
	Item           *ContentItem          `json:"content,omitempty"`
	Context        *ContentContext       `json:"context,omitempty"`
	Classification *Classification       `json:"classification,omitempty"`
	Risk           *RiskScore            `json:"addiction_analysis,omitempty"`
	Insight        *BehaviorInsight      `json:"behavior_insights,omitempty"`
	Alternatives   []Alternative         `json:"alternatives,omitempty"`
	Decision       *InterventionDecision `json:"ui_instructions,omitempty"`
}

// ValidationError reports a malformed or missing required input field.
// Always surfaced to the caller, never silently defaulted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ProviderError reports a failed external provider call. Callers recover
// locally via the deterministic fallback; it never fails the pipeline.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StageError reports a pipeline stage failure with the partial result
// computed before the failure.
type StageError struct {
	Stage   Stage
	Err     error
	Partial *AnalysisResult
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
