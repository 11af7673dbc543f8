package intervene

import (
	"fmt"

	"github.com/feedguard/feedguard/internal/model"
)

// lockoutTimerSeconds is the mandatory cool-down for lockout interventions
const lockoutTimerSeconds = 300

// template is the base presentation for one action
type template struct {
	overlayText  string
	buttons      []model.Button
	cssSnippet   string
	timerSeconds int
}

var templates = map[model.Action]template{
	model.ActionBlur: {
		overlayText: "High-Risk Content Detected ⚠️",
		buttons: []model.Button{
			{Label: "Show Alternatives", ActionKey: "show_alternatives"},
			{Label: "Reveal Content", ActionKey: "reveal"},
		},
		cssSnippet: "filter: blur(8px); pointer-events: none; user-select: none;",
	},
	model.ActionNudge: {
		overlayText: "Consider a productive alternative 💡",
		buttons: []model.Button{
			{Label: "Show Alternatives", ActionKey: "show_alternatives"},
		},
	},
	model.ActionReplace: {
		overlayText: "Content Replaced with Alternatives 🎯",
		buttons: []model.Button{
			{Label: "View Alternatives", ActionKey: "show_alternatives"},
		},
		cssSnippet: "display: none;",
	},
	model.ActionLockout: {
		overlayText: "Take a mindful break 🧘",
		buttons: []model.Button{
			{Label: "Set Timer", ActionKey: "set_timer"},
		},
		cssSnippet:   "filter: grayscale(100%) blur(4px); opacity: 0.5; pointer-events: none;",
		timerSeconds: lockoutTimerSeconds,
	},
	model.ActionNone: {
		overlayText: "",
		buttons:     []model.Button{},
	},
}

// Renderer translates a recommended action into concrete presentation
// instructions. It is pure and total: unknown actions fall back to the
// no-intervention template.
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the presentation payload for the action. Overlay text
// carries the risk score for high-risk visual interventions, and the
// alternatives button reflects how many suggestions are available.
func (r *Renderer) Render(action model.Action, riskIndex int, alternatives []model.Alternative) *model.InterventionDecision {
	tpl, ok := templates[action]
	if !ok {
		action = model.ActionNone
		tpl = templates[model.ActionNone]
	}

	return &model.InterventionDecision{
		Action:            action,
		OverlayText:       overlayText(tpl.overlayText, action, riskIndex),
		Buttons:           customizeButtons(tpl.buttons, len(alternatives)),
		CSSSnippet:        tpl.cssSnippet,
		TimerSeconds:      tpl.timerSeconds,
		AlternativesCount: len(alternatives),
		RiskIndex:         riskIndex,
	}
}

// overlayText appends the risk score to visually blocking interventions
// when the index is above 70
func overlayText(base string, action model.Action, riskIndex int) string {
	if base == "" {
		return ""
	}
	if riskIndex > 70 && (action == model.ActionBlur || action == model.ActionReplace || action == model.ActionLockout) {
		return fmt.Sprintf("%s (Risk: %d/100)", base, riskIndex)
	}
	return base
}

// customizeButtons rewrites the alternatives button label to carry the
// suggestion count. Template buttons are copied, never mutated.
func customizeButtons(base []model.Button, alternativesCount int) []model.Button {
	buttons := make([]model.Button, len(base))
	copy(buttons, base)

	if alternativesCount > 0 {
		for i := range buttons {
			if buttons[i].ActionKey == "show_alternatives" {
				buttons[i].Label = fmt.Sprintf("View %d Alternatives", alternativesCount)
			}
		}
	}

	return buttons
}
