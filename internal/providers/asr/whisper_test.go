package asr

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseResult(t *testing.T) {
	raw := []byte(`{
		"result": {"language": "en"},
		"transcription": [
			{"offsets": {"from": 0, "to": 4320}, "text": " Hello world. "},
			{"offsets": {"from": 4320, "to": 9150}, "text": " How are you?"},
			{"text": "Untimed tail"}
		]
	}`)

	res, err := parseResult(raw, "en")
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en", res.Language)
	}
	if res.Text != "Hello world. How are you? Untimed tail" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(res.Segments))
	}

	ts := res.Segments[0].Timestamp
	if ts == nil || ts.Start == nil || ts.End == nil {
		t.Fatal("first segment missing timestamp bounds")
	}
	if *ts.Start != 0 || *ts.End != 4.32 {
		t.Errorf("first timestamp = [%v,%v], want [0,4.32]", *ts.Start, *ts.End)
	}
	if res.Segments[2].Timestamp != nil {
		t.Error("untimed segment should have nil timestamp")
	}
}

func TestParseResultWholeTextFallback(t *testing.T) {
	res, err := parseResult([]byte(`{"transcription": [], "text": "whole transcript"}`), "id")
	if err != nil {
		t.Fatalf("parseResult: %v", err)
	}
	if len(res.Segments) != 0 {
		t.Errorf("segments = %d, want 0", len(res.Segments))
	}
	if res.Text != "whole transcript" {
		t.Errorf("Text = %q, want whole transcript", res.Text)
	}
}

func TestParseResultBadJSON(t *testing.T) {
	if _, err := parseResult([]byte(`not json`), "en"); err == nil {
		t.Error("want error for malformed output")
	}
}

func TestResolveModelPath(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "ggml-small.bin")
	if err := os.WriteFile(model, []byte("weights"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := resolveModelPath(dir, "ggml-small")
	if err != nil {
		t.Fatalf("resolveModelPath: %v", err)
	}
	if got != model {
		t.Errorf("path = %q, want %q", got, model)
	}

	// Direct file path works too.
	got, err = resolveModelPath(model, "ignored")
	if err != nil {
		t.Fatalf("resolveModelPath(file): %v", err)
	}
	if got != model {
		t.Errorf("path = %q, want %q", got, model)
	}

	if _, err := resolveModelPath(dir, "ggml-missing"); err == nil {
		t.Error("want error for missing weights")
	}
}

func TestResolveDeviceForced(t *testing.T) {
	if got := resolveDevice("cpu"); got != "cpu" {
		t.Errorf("resolveDevice(cpu) = %q", got)
	}
	if got := resolveDevice("CUDA"); got != "cuda" {
		t.Errorf("resolveDevice(CUDA) = %q", got)
	}
}
