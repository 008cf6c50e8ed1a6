// Package voice wraps the audio collaborators. Both directions degrade
// instead of failing: capture reports silence, speech output is dropped
// with a log line.
package voice

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// Capturer produces one caller utterance per call. An empty string means
// silence, timeout or recognition failure; it never reports an error.
type Capturer interface {
	Capture(ctx context.Context) string
}

// GoogleCapturer records a bounded microphone clip with ffmpeg and sends
// it to Cloud Speech for recognition.
type GoogleCapturer struct {
	client   *speech.Client
	language string
	seconds  int
}

func NewGoogleCapturer(ctx context.Context, credentialsFile, language string, seconds int) (*GoogleCapturer, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	if seconds <= 0 {
		seconds = 15
	}
	return &GoogleCapturer{client: client, language: language, seconds: seconds}, nil
}

func (c *GoogleCapturer) Capture(ctx context.Context) string {
	fmt.Println("Speak now....")
	audio, err := recordClip(ctx, c.seconds)
	if err != nil {
		log.Printf("[stt] record failed: %v", err)
		return ""
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      c.language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}
	resp, err := c.client.Recognize(ctx, req)
	if err != nil {
		log.Printf("[stt] recognize failed: %v", err)
		return ""
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String())
}

func (c *GoogleCapturer) Close() error { return c.client.Close() }

// recordClip shells out to ffmpeg for a mono LINEAR16 16k clip of at most
// the given duration.
func recordClip(ctx context.Context, seconds int) ([]byte, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	out, err := os.CreateTemp("", "capture-*.wav")
	if err != nil {
		return nil, err
	}
	defer os.Remove(out.Name())
	defer out.Close()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-f", "alsa",
		"-i", "default",
		"-t", strconv.Itoa(seconds),
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		out.Name(),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg capture failed: %s", strings.TrimSpace(stderr.String()))
	}
	return os.ReadFile(out.Name())
}

// TerminalCapturer reads typed turns from stdin, for the -text console
// mode and environments without speech credentials.
type TerminalCapturer struct {
	r *bufio.Reader
}

func NewTerminalCapturer() *TerminalCapturer {
	return &TerminalCapturer{r: bufio.NewReader(os.Stdin)}
}

func (c *TerminalCapturer) Capture(ctx context.Context) string {
	fmt.Print("You: ")
	line, err := c.r.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}
