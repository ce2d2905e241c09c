// Package transcriber adapts the OpenAI audio transcription API to the
// recitation pipeline.
package transcriber

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hifzhub/murajaah/internal/entity"
)

type speechClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Whisper transcribes Arabic recitation audio with the Whisper model.
type Whisper struct {
	client speechClient
	model  string
}

// NewWhisper builds a transcriber backed by the OpenAI API.
func NewWhisper(apiKey, baseURL, model string) *Whisper {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &Whisper{client: openai.NewClientWithConfig(cfg), model: model}
}

// Transcribe sends the audio bytes for transcription and returns the text.
// Failures are wrapped in entity.ErrTranscriptionUnavailable so callers can
// degrade to self-reported confidence.
func (w *Whisper) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio", entity.ErrTranscriptionUnavailable)
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: "recitation.ogg",
		Reader:   bytes.NewReader(audio),
		Language: "ar",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrTranscriptionUnavailable, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcription", entity.ErrTranscriptionUnavailable)
	}
	return text, nil
}
