package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Normalizer transcodes arbitrary uploaded audio into the canonical format
// the transcription path expects (mp3, 44.1kHz, 192k).
type Normalizer struct {
	BinaryPath string // ffmpeg binary, empty = "ffmpeg"
}

func NewNormalizer(binary string) *Normalizer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Normalizer{BinaryPath: binary}
}

// Normalize writes an mp3 next to inPath and returns its path.
func (n *Normalizer) Normalize(ctx context.Context, inPath string) (string, error) {
	outPath := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".mp3"

	cmd := exec.CommandContext(ctx, n.BinaryPath,
		"-y", "-i", inPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", "44100",
		"-ab", "192k",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg: %w (%s)", err, lastLine(stderr.String()))
	}
	return outPath, nil
}
