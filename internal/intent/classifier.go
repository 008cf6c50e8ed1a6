// Package intent turns free-text caller utterances into structured
// scheduling intents via an LLM collaborator.
package intent

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"confido/agent/internal/types"
)

// Classifier is the intent-extraction collaborator. The second return
// value is a clarifying question to speak verbatim when the model answered
// in prose instead of structured data.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (types.ParsedIntent, string, error)
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]*?\}`)

// ExtractIntent pulls the first JSON object out of a model reply. When no
// parseable object with an intent tag is present, the raw text is handed
// back as a clarifying question instead; re-asking beats guessing.
func ExtractIntent(raw string) (types.ParsedIntent, string, bool) {
	if m := jsonBlock.FindString(raw); m != "" {
		var p types.ParsedIntent
		if err := json.Unmarshal([]byte(m), &p); err == nil && p.Intent != "" {
			return p, "", true
		}
	}
	return types.ParsedIntent{}, strings.TrimSpace(raw), false
}

var goodbyeRe = regexp.MustCompile(`(?i)\b(good\s?bye|bye|that'?s it|no thanks|exit)\b`)

// IsGoodbye reports whether the utterance is a polite exit. A goodbye
// terminates the call without touching ledger or booking state.
func IsGoodbye(utterance string) bool {
	return goodbyeRe.MatchString(utterance)
}
