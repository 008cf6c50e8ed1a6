package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"confido/agent/internal/api"
	"confido/agent/internal/callws"
	"confido/agent/internal/config"
	"confido/agent/internal/dialog"
	"confido/agent/internal/intent"
	"confido/agent/internal/ledger"
	"confido/agent/internal/store"
)

func main() {
	// Load .env file if present (ignored if missing)
	_ = godotenv.Load()

	cfg := config.Load()

	st := store.New()
	l := ledger.New(ledger.Seed(cfg.Schedule.Days, cfg.Schedule.SlotTimes, time.Now()))
	rec := dialog.New(l, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cls intent.Classifier
	if cfg.Gemini.APIKey != "" {
		g, err := intent.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Println("gemini init error:", err)
			os.Exit(1)
		}
		defer g.Close()
		cls = g
	} else {
		log.Printf("GOOGLE_API_KEY not set; /sessions/{id}/turn will answer 503")
	}

	reg := callws.NewRegistry()
	feed := callws.NewServer(st, reg)

	h := api.NewHandlers(cfg, st, l, rec, cls, reg)
	mux := http.NewServeMux()
	mux.Handle("/", api.NewRouter(h))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ws/sessions", feed.HandleFeedWS)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.LogMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Printf("shutdown signal received; stopping server...")
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Printf("server starting on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Println("server error:", err)
		os.Exit(1)
	}
}
