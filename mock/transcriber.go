package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.Transcriber = (*Transcriber)(nil)

// Transcriber is a mock implementation of lessonfetch.Transcriber.
type Transcriber struct {
	TranscribeFn func(ctx context.Context, audioPath, language string) (string, error)
}

func (t *Transcriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	return t.TranscribeFn(ctx, audioPath, language)
}
