package intervene

import (
	"strings"
	"testing"

	"github.com/feedguard/feedguard/internal/model"
)

func alternatives(n int) []model.Alternative {
	alts := make([]model.Alternative, n)
	for i := range alts {
		alts[i] = model.Alternative{Title: "alt", URL: "https://example.com"}
	}
	return alts
}

func TestRenderer_BlurHighRisk(t *testing.T) {
	r := NewRenderer()

	decision := r.Render(model.ActionBlur, 75, alternatives(3))

	if decision.Action != model.ActionBlur {
		t.Errorf("Expected blur, got %s", decision.Action)
	}
	if decision.OverlayText != "High-Risk Content Detected ⚠️ (Risk: 75/100)" {
		t.Errorf("Unexpected overlay text: %q", decision.OverlayText)
	}
	if len(decision.Buttons) != 2 {
		t.Fatalf("Expected 2 buttons, got %d", len(decision.Buttons))
	}
	if decision.Buttons[0].Label != "View 3 Alternatives" {
		t.Errorf("Expected alternatives count in label, got %q", decision.Buttons[0].Label)
	}
	if decision.Buttons[1].Label != "Reveal Content" {
		t.Errorf("Expected reveal button, got %q", decision.Buttons[1].Label)
	}
	if !strings.Contains(decision.CSSSnippet, "blur(8px)") {
		t.Errorf("Expected blur CSS, got %q", decision.CSSSnippet)
	}
	if decision.AlternativesCount != 3 {
		t.Errorf("Expected 3 alternatives, got %d", decision.AlternativesCount)
	}
}

func TestRenderer_RiskSuffixThreshold(t *testing.T) {
	r := NewRenderer()

	// At exactly 70 the suffix is not added
	decision := r.Render(model.ActionBlur, 70, nil)
	if decision.OverlayText != "High-Risk Content Detected ⚠️" {
		t.Errorf("Expected no risk suffix at 70, got %q", decision.OverlayText)
	}

	decision = r.Render(model.ActionBlur, 71, nil)
	if decision.OverlayText != "High-Risk Content Detected ⚠️ (Risk: 71/100)" {
		t.Errorf("Expected risk suffix at 71, got %q", decision.OverlayText)
	}
}

func TestRenderer_NudgeNeverCarriesRiskSuffix(t *testing.T) {
	r := NewRenderer()

	decision := r.Render(model.ActionNudge, 95, alternatives(2))

	if decision.OverlayText != "Consider a productive alternative 💡" {
		t.Errorf("Expected plain nudge text, got %q", decision.OverlayText)
	}
	if decision.CSSSnippet != "" {
		t.Errorf("Expected no CSS for nudge, got %q", decision.CSSSnippet)
	}
	if decision.Buttons[0].Label != "View 2 Alternatives" {
		t.Errorf("Expected alternatives count in label, got %q", decision.Buttons[0].Label)
	}
}

func TestRenderer_LockoutTimer(t *testing.T) {
	r := NewRenderer()

	decision := r.Render(model.ActionLockout, 95, alternatives(3))

	if decision.TimerSeconds != 300 {
		t.Errorf("Expected 300s timer, got %d", decision.TimerSeconds)
	}
	if decision.OverlayText != "Take a mindful break 🧘 (Risk: 95/100)" {
		t.Errorf("Unexpected overlay text: %q", decision.OverlayText)
	}
	if len(decision.Buttons) != 1 || decision.Buttons[0].ActionKey != "set_timer" {
		t.Errorf("Expected single set_timer button, got %v", decision.Buttons)
	}
}

func TestRenderer_ReplaceRewritesButton(t *testing.T) {
	r := NewRenderer()

	decision := r.Render(model.ActionReplace, 85, alternatives(4))

	if decision.OverlayText != "Content Replaced with Alternatives 🎯 (Risk: 85/100)" {
		t.Errorf("Unexpected overlay text: %q", decision.OverlayText)
	}
	if decision.Buttons[0].Label != "View 4 Alternatives" {
		t.Errorf("Expected count in label, got %q", decision.Buttons[0].Label)
	}
	if decision.CSSSnippet != "display: none;" {
		t.Errorf("Expected hide CSS, got %q", decision.CSSSnippet)
	}
}

func TestRenderer_NoneAndUnknownActions(t *testing.T) {
	r := NewRenderer()

	decision := r.Render(model.ActionNone, 10, nil)
	if decision.OverlayText != "" || len(decision.Buttons) != 0 || decision.TimerSeconds != 0 {
		t.Errorf("Expected empty decision for none, got %+v", decision)
	}

	// Unknown actions degrade to none
	decision = r.Render(model.Action("hypnotize"), 99, alternatives(3))
	if decision.Action != model.ActionNone {
		t.Errorf("Expected unknown action to map to none, got %s", decision.Action)
	}
	if decision.OverlayText != "" {
		t.Errorf("Expected empty overlay for unknown action, got %q", decision.OverlayText)
	}
}

func TestRenderer_NoAlternativesKeepsBaseLabel(t *testing.T) {
	r := NewRenderer()

	decision := r.Render(model.ActionBlur, 60, nil)

	if decision.Buttons[0].Label != "Show Alternatives" {
		t.Errorf("Expected base label without alternatives, got %q", decision.Buttons[0].Label)
	}
	if decision.AlternativesCount != 0 {
		t.Errorf("Expected zero alternatives, got %d", decision.AlternativesCount)
	}
}

func TestRenderer_TemplatesNotMutated(t *testing.T) {
	r := NewRenderer()

	r.Render(model.ActionBlur, 90, alternatives(5))
	decision := r.Render(model.ActionBlur, 60, nil)

	if decision.Buttons[0].Label != "Show Alternatives" {
		t.Errorf("Template mutated by earlier render: %q", decision.Buttons[0].Label)
	}
}
