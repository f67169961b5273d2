package storage

import "github.com/lisanhq/lisan/internal/models"

// TranscriptStore persists one completed transcription under a base name:
// the structured result and the paragraph rendering. Writing the same base
// name again overwrites both artifacts.
type TranscriptStore interface {
	Save(base string, result *models.TranscriptionResult, paragraph string) (models.OutputPaths, error)
}
