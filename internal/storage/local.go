package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lisanhq/lisan/internal/models"
)

// LocalStore writes <base>.json and <base>.txt into Dir. The JSON file is
// written first; a failure between the two writes leaves only the JSON
// behind, which the next run of the same base name overwrites.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

func (s *LocalStore) Save(base string, result *models.TranscriptionResult, paragraph string) (models.OutputPaths, error) {
	paths := models.OutputPaths{
		JSON: filepath.Join(s.Dir, base+".json"),
		TXT:  filepath.Join(s.Dir, base+".txt"),
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return models.OutputPaths{}, fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(paths.JSON, raw, 0o644); err != nil {
		return models.OutputPaths{}, fmt.Errorf("write %s: %w", paths.JSON, err)
	}
	if err := os.WriteFile(paths.TXT, []byte(paragraph+"\n"), 0o644); err != nil {
		return models.OutputPaths{}, fmt.Errorf("write %s: %w", paths.TXT, err)
	}
	return paths, nil
}
