package lessonfetch

import "context"

// Transcriber converts audio files to text.
type Transcriber interface {
	// Transcribe returns the text spoken in the audio file at path.
	// language is an ISO 639-1 hint; empty means autodetect.
	Transcribe(ctx context.Context, path, language string) (string, error)
}
