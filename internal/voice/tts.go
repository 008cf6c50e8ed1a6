package voice

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// Speaker renders text audibly. Failures are logged and swallowed; a lost
// utterance must never interrupt the dialogue.
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// GoogleSpeaker synthesizes MP3 audio with Cloud Text-to-Speech and plays
// it through ffplay.
type GoogleSpeaker struct {
	client   *texttospeech.Client
	language string
}

func NewGoogleSpeaker(ctx context.Context, credentialsFile, language string) (*GoogleSpeaker, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create tts client: %w", err)
	}
	return &GoogleSpeaker{client: client, language: language}, nil
}

func (s *GoogleSpeaker) Speak(ctx context.Context, text string) {
	fmt.Printf("AI: %s\n", text)

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.language,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		log.Printf("[tts] synthesize failed: %v", err)
		return
	}

	tmp, err := os.CreateTemp("", "speech-*.mp3")
	if err != nil {
		log.Printf("[tts] temp file: %v", err)
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(resp.AudioContent); err != nil {
		tmp.Close()
		log.Printf("[tts] write audio: %v", err)
		return
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, "ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", tmp.Name())
	if err := cmd.Run(); err != nil {
		log.Printf("[tts] playback failed: %v", err)
	}
}

func (s *GoogleSpeaker) Close() error { return s.client.Close() }

// TerminalSpeaker prints replies instead of speaking them.
type TerminalSpeaker struct{}

func (TerminalSpeaker) Speak(ctx context.Context, text string) {
	fmt.Printf("AI: %s\n", text)
}
