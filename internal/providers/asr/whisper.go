package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lisanhq/lisan/internal/models"
)

// WhisperConfig configures the whisper.cpp CLI engine.
type WhisperConfig struct {
	BinaryPath  string // empty = resolve "whisper-cli" from PATH
	ModelDir    string // directory holding the ggml weights (or the file itself)
	ModelID     string // weight file stem, ex: "ggml-large-v3-turbo"
	Device      string // auto|cpu|cuda
	Threads     int    // 0 = binary default
	DefaultLang string
	Offline     bool
}

// Whisper invokes the whisper.cpp CLI with JSON output. Weights are loaded
// from local storage only; the binary and model are validated once at
// construction and every Transcribe call reuses them.
type Whisper struct {
	binaryPath  string
	modelPath   string
	device      string
	threads     int
	defaultLang string
}

// NewWhisper validates the binary and staged model and picks the compute
// device. It never fetches anything over the network.
func NewWhisper(cfg WhisperConfig) (*Whisper, error) {
	bin := cfg.BinaryPath
	if bin == "" {
		bin = "whisper-cli"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("whisper binary %q not found: %w", bin, err)
	}

	modelPath, err := resolveModelPath(cfg.ModelDir, cfg.ModelID)
	if err != nil {
		if cfg.Offline {
			return nil, fmt.Errorf("%w (offline mode: stage the model with scripts/prefetch-model.sh before starting)", err)
		}
		return nil, fmt.Errorf("%w (run scripts/prefetch-model.sh to stage it)", err)
	}

	return &Whisper{
		binaryPath:  resolved,
		modelPath:   modelPath,
		device:      resolveDevice(cfg.Device),
		threads:     cfg.Threads,
		defaultLang: strings.ToLower(cfg.DefaultLang),
	}, nil
}

func resolveModelPath(dir, id string) (string, error) {
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		return dir, nil
	}
	path := filepath.Join(dir, id+".bin")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("model weights not found at %s", path)
	}
	return path, nil
}

// resolveDevice honors a forced device and otherwise probes for an NVIDIA
// driver, falling back to CPU.
func resolveDevice(device string) string {
	switch strings.ToLower(device) {
	case "cpu":
		return "cpu"
	case "cuda":
		return "cuda"
	}
	if _, err := os.Stat("/proc/driver/nvidia/version"); err == nil {
		return "cuda"
	}
	return "cpu"
}

// Transcribe runs the CLI requesting per-segment timestamps. Task mode is
// always transcription; translation is never requested.
func (w *Whisper) Transcribe(ctx context.Context, audioPath, language string) (*models.TranscriptionResult, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		lang = w.defaultLang
	}

	outDir, err := os.MkdirTemp("", "whisper-out-*")
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)
	outBase := filepath.Join(outDir, "transcript")

	args := []string{
		"-m", w.modelPath,
		"-l", lang,
		"-oj",
		"-of", outBase,
		"-np",
	}
	if w.threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.threads))
	}
	if w.device == "cpu" {
		args = append(args, "--no-gpu")
	}
	args = append(args, "-f", audioPath)

	cmd := exec.CommandContext(ctx, w.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("whisper invocation failed: %w", err)
		}
		return nil, fmt.Errorf("whisper invocation failed: %w (%s)", err, msg)
	}

	raw, err := os.ReadFile(outBase + ".json")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	return parseResult(raw, lang)
}

// whisperOutput mirrors the CLI's JSON file. Offsets are milliseconds and
// may be absent for segments the engine could not time.
type whisperOutput struct {
	Transcription []struct {
		Offsets *struct {
			From *int64 `json:"from"`
			To   *int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
	Text string `json:"text"`
}

// parseResult post-processes raw engine output into the result model. With
// segments, the full text is their space-joined trimmed concatenation; a
// whole-text output without segments is kept as-is.
func parseResult(raw []byte, lang string) (*models.TranscriptionResult, error) {
	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	res := &models.TranscriptionResult{Language: lang}
	parts := make([]string, 0, len(out.Transcription))
	for _, seg := range out.Transcription {
		s := models.Segment{Text: seg.Text}
		if seg.Offsets != nil {
			s.Timestamp = &models.TimeRange{
				Start: msToSeconds(seg.Offsets.From),
				End:   msToSeconds(seg.Offsets.To),
			}
		}
		res.Segments = append(res.Segments, s)
		parts = append(parts, strings.TrimSpace(seg.Text))
	}

	res.Text = strings.TrimSpace(strings.Join(parts, " "))
	if res.Text == "" {
		res.Text = out.Text
	}
	return res, nil
}

func msToSeconds(ms *int64) *float64 {
	if ms == nil {
		return nil
	}
	s := float64(*ms) / 1000.0
	return &s
}
