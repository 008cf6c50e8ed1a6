package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"confido/agent/internal/config"
	"confido/agent/internal/dialog"
	"confido/agent/internal/health"
	"confido/agent/internal/intent"
	"confido/agent/internal/ledger"
	"confido/agent/internal/loop"
	"confido/agent/internal/store"
	"confido/agent/internal/types"
	"confido/agent/internal/voice"
)

func main() {
	textMode := flag.Bool("text", false, "type and read instead of speaking (no audio devices needed)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Gemini.APIKey == "" {
		log.Println("GOOGLE_API_KEY is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Printf("interrupt received; hanging up...")
		cancel()
	}()

	fmt.Println(health.CheckAll(ctx, cfg))

	cls, err := intent.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Println("gemini init error:", err)
		os.Exit(1)
	}
	defer cls.Close()

	st := store.New()
	l := ledger.New(ledger.Seed(cfg.Schedule.Days, cfg.Schedule.SlotTimes, time.Now()))
	rec := dialog.New(l, st)

	var capturer voice.Capturer
	var speaker voice.Speaker
	if *textMode {
		capturer = voice.NewTerminalCapturer()
		speaker = voice.TerminalSpeaker{}
	} else {
		gc, err := voice.NewGoogleCapturer(ctx, cfg.Speech.CredentialsFile, cfg.Speech.Language, cfg.Speech.ListenSeconds)
		if err != nil {
			log.Println("speech client error:", err)
			os.Exit(1)
		}
		defer gc.Close()
		gs, err := voice.NewGoogleSpeaker(ctx, cfg.Speech.CredentialsFile, cfg.Speech.Language)
		if err != nil {
			log.Println("tts client error:", err)
			os.Exit(1)
		}
		defer gs.Close()
		capturer = gc
		speaker = gs
	}

	sessionID := uuid.New().String()
	_ = st.CreateSession(&types.Session{
		ID:        sessionID,
		CreatedAt: time.Now().UTC(),
		Status:    "created",
	})

	runner := &loop.Runner{
		Capturer:   capturer,
		Classifier: cls,
		Reconciler: rec,
		Speaker:    speaker,
		Store:      st,
		Greeting:   cfg.Schedule.Greeting,
	}

	if err := runner.Run(ctx, sessionID); err != nil && !errors.Is(err, context.Canceled) {
		log.Println("call error:", err)
		os.Exit(1)
	}
}
