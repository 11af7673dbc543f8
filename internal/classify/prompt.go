package classify

import (
	"fmt"

	"github.com/feedguard/feedguard/internal/model"
)

// systemPrompt instructs the model to emit exactly the Classification schema.
// The response is still validated before use; anything off-schema falls back
// to the heuristic path.
const systemPrompt = `You are a content classification assistant for a system that helps users reduce social media addiction.

Your task is to analyze video/post metadata and classify content into categories based on its potential impact on user wellbeing and productivity.

Output MUST be a single JSON object with these exact fields:
- category: one of ["educational", "productive", "neutral", "entertainment", "addictive", "harmful"]
- reason: one-sentence explanation (max 100 chars)
- triggers: list of trigger labels like ["short_duration", "compilation", "humor", "shock", "FOMO"]
- thumbnail_sentiment: one of ["positive", "neutral", "negative", "clickbait"]
- confidence: number between 0.0 and 1.0 (two decimals)

Classification Guidelines:
- "educational": tutorials, lectures, documentaries, skill-building
- "productive": work-related, self-improvement, health/fitness
- "neutral": news, general information, moderate entertainment
- "entertainment": movies, music, comedy (not addictive)
- "addictive": short-form compilations, memes, reaction videos, endless scrolling content
- "harmful": misinformation, extreme negativity, toxic content

Triggers to detect:
- short_duration: videos under 60 seconds
- compilation: "best of", "compilation", multiple clips
- humor: comedy, memes, jokes
- shock: shocking, extreme, sensational
- FOMO: fear of missing out, trending, viral
- clickbait: exaggerated titles, misleading thumbnails
- repetition: similar to recently watched content

Return ONLY the JSON object, no extra text.`

// buildPrompt formats the per-item user prompt from the normalized item and
// its derived context.
func buildPrompt(item *model.ContentItem, ctx *model.ContentContext) string {
	return fmt.Sprintf(`Classify this content:

Title: %q
Description: %q
Channel: %q
Duration: %d seconds
Platform: %s

Additional context:
- Content type: %s
- Title has addictive keywords: %t
- Title has educational keywords: %t
- Title has clickbait keywords: %t

Provide classification as JSON.`,
		item.Title,
		item.Description,
		item.Channel,
		item.DurationSec,
		item.Platform,
		ctx.LengthClass,
		ctx.Title.HasAddictiveKeywords,
		ctx.Title.HasEducationalKeywords,
		ctx.Title.HasClickbaitKeywords,
	)
}
