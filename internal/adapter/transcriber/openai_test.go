package transcriber

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hifzhub/murajaah/internal/entity"
)

type fakeSpeechClient struct {
	text string
	err  error
	last openai.AudioRequest
}

func (f *fakeSpeechClient) CreateTranscription(_ context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	f.last = req
	if f.err != nil {
		return openai.AudioResponse{}, f.err
	}
	return openai.AudioResponse{Text: f.text}, nil
}

func TestWhisperTranscribe(t *testing.T) {
	client := &fakeSpeechClient{text: "  بسم الله الرحمن الرحيم "}
	w := &Whisper{client: client, model: openai.Whisper1}

	text, err := w.Transcribe(context.Background(), []byte("audio-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if text != "بسم الله الرحمن الرحيم" {
		t.Errorf("text = %q", text)
	}
	if client.last.Language != "ar" {
		t.Errorf("language = %q, want ar", client.last.Language)
	}
	if client.last.Reader == nil {
		t.Error("audio reader not set")
	}
}

func TestWhisperTranscribeFailuresWrapped(t *testing.T) {
	cases := []struct {
		name   string
		client *fakeSpeechClient
		audio  []byte
	}{
		{"empty audio", &fakeSpeechClient{text: "x"}, nil},
		{"provider error", &fakeSpeechClient{err: errors.New("rate limited")}, []byte("a")},
		{"empty transcription", &fakeSpeechClient{text: "   "}, []byte("a")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := &Whisper{client: tc.client, model: openai.Whisper1}
			_, err := w.Transcribe(context.Background(), tc.audio)
			if !errors.Is(err, entity.ErrTranscriptionUnavailable) {
				t.Errorf("err = %v, want ErrTranscriptionUnavailable", err)
			}
		})
	}
}
