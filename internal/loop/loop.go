// Package loop drives one call end to end: capture an utterance, classify
// it, reconcile it against the ledger, speak the result.
package loop

import (
	"context"
	"log"

	"confido/agent/internal/dialog"
	"confido/agent/internal/intent"
	"confido/agent/internal/store"
	"confido/agent/internal/voice"
)

// After this many consecutive silent captures the call is abandoned
// rather than listening forever.
const maxSilentTurns = 5

type Runner struct {
	Capturer   voice.Capturer
	Classifier intent.Classifier
	Reconciler *dialog.Reconciler
	Speaker    voice.Speaker
	Store      *store.Store
	Greeting   string
}

// Run blocks until the caller says goodbye, the conversation reaches a
// terminal turn, or the context is cancelled.
func (r *Runner) Run(ctx context.Context, sessionID string) error {
	r.say(ctx, sessionID, r.Greeting)

	silent := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		utterance := r.Capturer.Capture(ctx)
		if utterance == "" {
			// Silence or capture failure: no turn occurred, no state changes.
			silent++
			if silent >= maxSilentTurns {
				r.say(ctx, sessionID, "Sorry, I didn't hear anything. Good-bye.")
				return nil
			}
			continue
		}
		silent = 0
		r.Store.AppendEvent(sessionID, "utterance", map[string]any{"text": utterance})

		if intent.IsGoodbye(utterance) {
			r.say(ctx, sessionID, "Good-bye.")
			return nil
		}

		parsed, question, err := r.Classifier.Classify(ctx, utterance)
		if err != nil {
			log.Printf("[loop] classify failed: %v", err)
			r.say(ctx, sessionID, "I'm sorry, I didn't catch that. Please repeat your response.")
			continue
		}
		if question != "" {
			r.say(ctx, sessionID, question)
			continue
		}

		reply := r.Reconciler.Turn(sessionID, parsed)
		for _, msg := range reply.Messages {
			r.say(ctx, sessionID, msg)
		}
		if reply.End {
			return nil
		}
	}
}

func (r *Runner) say(ctx context.Context, sessionID, text string) {
	if text == "" {
		return
	}
	r.Store.AppendEvent(sessionID, "reply", map[string]any{"text": text})
	r.Speaker.Speak(ctx, text)
}
