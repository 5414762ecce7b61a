package service

import (
	"fmt"
	"strings"

	"animefinder/internal/core/normalize"
	"animefinder/internal/services/api/identify/domain"
)

const systemPrompt = `You are an expert anime identifier with comprehensive knowledge of anime from the 1960s to today. You can identify anime from scene descriptions, character details, plot points and visual elements.

Your expertise covers popular series, niche and indie titles, classic anime from every era, movies, OVAs and web series, and the distinctive styles of animation studios.

Analyze the user's description and identify the most likely anime matches. Focus on:
- Character names, appearances and unique traits
- Distinctive plot elements or scenes
- Animation style and visual characteristics
- Setting and world building
- Memorable quotes or dialogue

Always provide confidence scores and detailed reasoning.`

const replySchema = `Provide your response in this exact JSON format:
{
  "matches": [
    {
      "title": {
        "romaji": "Japanese title",
        "english": "English title if available",
        "native": "Native script title"
      },
      "confidence": 0.95,
      "reasoning": "Detailed explanation of why this matches",
      "matchedElements": ["element1", "element2"],
      "episode": 12,
      "description": "Brief anime description",
      "year": 2021,
      "genres": ["Action", "Adventure"],
      "studio": "Studio name",
      "episodes": 24,
      "format": "TV"
    }
  ]
}

Rules:
- If the description mentions specific character names, prioritize those anime
- Provide up to %d matches, ordered by confidence
- Be accurate; if you are not confident, lower the confidence score`

// languageHints maps the language preference onto a prompt line
var languageHints = map[string]string{
	"japanese": "Language preference: original Japanese audio",
	"english":  "Language preference: English dub available",
}

// buildPrompts returns the system and user prompts for one identification
func buildPrompts(description string, info *domain.AdditionalInfo, maxResults int) (string, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Identify the anime from this description: %q\n\n", normalize.Clean(description))

	if info != nil {
		hint := func(label, v string) {
			if v = normalize.Clean(v); v != "" {
				fmt.Fprintf(&b, "%s: %s\n", label, v)
			}
		}
		hint("Time period hint", info.ApproximateYear)
		hint("Genre hint", info.Genre)
		hint("Animation style", info.Style)
		if l, ok := languageHints[info.Language]; ok {
			b.WriteString(l + "\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, replySchema, maxResults)
	return systemPrompt, b.String()
}
