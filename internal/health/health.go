package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"confido/agent/internal/config"
)

type CheckResult struct {
	Name    string        `json:"name"`
	OK      bool          `json:"ok"`
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
}

type HealthStatus struct {
	OK        bool          `json:"ok"`
	Checks    []CheckResult `json:"checks"`
	CheckedAt time.Time     `json:"checked_at"`
}

func (h HealthStatus) String() string {
	status := "OK"
	if !h.OK {
		status = "FAIL"
	}
	s := fmt.Sprintf("Health: %s\n", status)
	for _, c := range h.Checks {
		mark := "✓"
		if !c.OK {
			mark = "✗"
		}
		s += fmt.Sprintf("  %s %s (%dms)", mark, c.Name, c.Latency.Milliseconds())
		if c.Error != "" {
			s += fmt.Sprintf(" - %s", c.Error)
		}
		s += "\n"
	}
	return s
}

// CheckAll probes the external collaborators and returns combined status.
func CheckAll(ctx context.Context, cfg config.Config) HealthStatus {
	checks := []CheckResult{
		checkGemini(ctx, cfg),
		checkSpeechCredentials(cfg),
	}

	allOK := true
	for _, c := range checks {
		if !c.OK {
			allOK = false
		}
	}

	return HealthStatus{
		OK:        allOK,
		Checks:    checks,
		CheckedAt: time.Now().UTC(),
	}
}

func checkGemini(ctx context.Context, cfg config.Config) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "gemini"}

	if cfg.Gemini.APIKey == "" {
		result.Error = "GOOGLE_API_KEY not set"
		result.Latency = time.Since(start)
		return result
	}

	// Lightweight model-list call to verify the key works.
	url := "https://generativelanguage.googleapis.com/v1beta/models?pageSize=1&key=" + cfg.Gemini.APIKey
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		result.Error = fmt.Sprintf("request build failed: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)

	if resp.StatusCode == 400 || resp.StatusCode == 401 || resp.StatusCode == 403 {
		result.Error = fmt.Sprintf("invalid API key (%d)", resp.StatusCode)
		return result
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		result.Error = fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body))
		return result
	}

	result.OK = true
	return result
}

func checkSpeechCredentials(cfg config.Config) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "speech-credentials"}

	path := cfg.Speech.CredentialsFile
	if path == "" {
		result.Error = "GOOGLE_APPLICATION_CREDENTIALS not set (speech falls back to terminal I/O)"
		result.Latency = time.Since(start)
		return result
	}
	if _, err := os.Stat(path); err != nil {
		result.Error = fmt.Sprintf("credentials file: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	result.OK = true
	result.Latency = time.Since(start)
	return result
}
