package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lisanhq/lisan/internal/models"
)

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	res := &models.TranscriptionResult{Language: "en", Text: "Hello.", Segments: []models.Segment{{Text: "Hello."}}}
	paths, err := store.Save("My_Title", res, "Hello.")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if paths.JSON != filepath.Join(dir, "My_Title.json") {
		t.Errorf("json path = %q", paths.JSON)
	}
	if paths.TXT != filepath.Join(dir, "My_Title.txt") {
		t.Errorf("txt path = %q", paths.TXT)
	}

	raw, err := os.ReadFile(paths.JSON)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var got models.TranscriptionResult
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if got.Language != "en" || got.Text != "Hello." || len(got.Segments) != 1 {
		t.Errorf("round-tripped result = %+v", got)
	}

	txt, err := os.ReadFile(paths.TXT)
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if string(txt) != "Hello.\n" {
		t.Errorf("txt = %q, want %q", txt, "Hello.\n")
	}
}

func TestLocalStoreOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	first := &models.TranscriptionResult{Language: "en", Text: "first"}
	if _, err := store.Save("same", first, "first"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second := &models.TranscriptionResult{Language: "en", Text: "second"}
	paths, err := store.Save("same", second, "second")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	txt, _ := os.ReadFile(paths.TXT)
	if string(txt) != "second\n" {
		t.Errorf("txt after overwrite = %q", txt)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("dir has %d entries, want 2 (no duplicates)", len(entries))
	}
}

func TestLocalStoreBadDir(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing", "nested"))
	if _, err := store.Save("x", &models.TranscriptionResult{}, "x"); err == nil {
		t.Error("want error for missing output dir")
	}
}
