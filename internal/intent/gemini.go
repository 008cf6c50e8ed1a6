package intent

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"confido/agent/internal/types"
)

const systemPrompt = `You are the intent extractor for a clinic's voice scheduling assistant.
For every caller message, reply with a single JSON object and nothing else:
{"intent": "schedule" | "reschedule" | "cancel" | "query_slots" | "unknown",
 "name": "...", "date": "...", "time": "..."}
Omit any field the caller did not mention in this message. Keep dates and
times exactly as the caller phrased them; do not invent values. If you need
more information before the intent is clear, reply with one short clarifying
question in plain text instead of JSON.`

// Gemini classifies utterances with a chat session so the model sees the
// whole conversation, matching the clarify-then-answer contract.
type Gemini struct {
	client *genai.Client
	chat   *genai.ChatSession
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	return &Gemini{client: client, chat: m.StartChat()}, nil
}

func (g *Gemini) Classify(ctx context.Context, utterance string) (types.ParsedIntent, string, error) {
	start := time.Now()
	resp, err := g.chat.SendMessage(ctx, genai.Text(utterance))
	metricClassifyLatency.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metricClassifyErrors.Inc()
		return types.ParsedIntent{}, "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		metricClassifyErrors.Inc()
		return types.ParsedIntent{}, "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	parsed, question, ok := ExtractIntent(sb.String())
	if !ok {
		metricClarifyReplies.Inc()
		return types.ParsedIntent{}, question, nil
	}
	return parsed, "", nil
}

func (g *Gemini) Close() error { return g.client.Close() }
