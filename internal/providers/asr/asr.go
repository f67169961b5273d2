// Package asr owns the speech-to-text engine: a narrow Engine interface,
// the whisper.cpp implementation, and the process-wide lazy Holder.
package asr

import (
	"context"

	"github.com/lisanhq/lisan/internal/models"
)

// Engine turns a local audio file into a timestamped transcript. The
// language hint falls back to the engine's configured default when empty.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, language string) (*models.TranscriptionResult, error)
}
