// Package openai implements audio transcription using the OpenAI API.
package openai

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
	openai "github.com/sashabaranov/go-openai"
)

// Ensure Transcriber implements lessonfetch.Transcriber at compile time.
var _ lessonfetch.Transcriber = (*Transcriber)(nil)

// Transcriber transcribes audio files with the Whisper API. Transcripts
// give audio lessons real text instead of a title placeholder, so the
// words are actually linkable for study.
type Transcriber struct {
	client *openai.Client
	model  string
}

// TranscriberOption configures a Transcriber.
type TranscriberOption func(*Transcriber)

// WithModel overrides the transcription model. Defaults to whisper-1.
func WithModel(model string) TranscriberOption {
	return func(t *Transcriber) {
		t.model = model
	}
}

// NewTranscriber creates a Transcriber authenticated with apiKey.
// baseURL overrides the API endpoint when non-empty, which allows
// pointing at an OpenAI-compatible local server.
func NewTranscriber(apiKey, baseURL string, opts ...TranscriberOption) (*Transcriber, error) {
	if apiKey == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EUNAUTHORIZED, "missing OpenAI API key")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	t := &Transcriber{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.Whisper1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Transcribe returns the text spoken in the audio file at path. language
// is an ISO 639-1 hint; passing it skips the model's language detection.
func (t *Transcriber) Transcribe(ctx context.Context, path, language string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: path,
		Language: language,
	})
	if err != nil {
		return "", lessonfetch.Errorf(lessonfetch.EINTERNAL, "transcribing %s: %s", path, err)
	}
	return resp.Text, nil
}
