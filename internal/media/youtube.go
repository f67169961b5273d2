// Package media wraps the external audio tooling: yt-dlp for acquisition
// and ffmpeg for normalization into the canonical mp3 format.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// A plain browser UA plus the android player client keeps yt-dlp working
	// against signed URLs and some age-gated sources.
	userAgent      = "Mozilla/5.0"
	extractorArgs  = "youtube:player_client=android"
	formatFallback = "bestaudio[ext=m4a]/bestaudio/best"
	audioQuality   = "192K"
	retries        = "10"
)

// Fetcher downloads the audio track of a source URL into DestDir as
// <safe_title>.mp3. Fetch is idempotent: an existing file for the same safe
// title is reused without touching the network beyond the title probe.
type Fetcher struct {
	BinaryPath  string // yt-dlp binary, empty = "yt-dlp"
	DestDir     string
	CookiesPath string // optional; only passed when the file exists
	Log         *logrus.Logger
}

func NewFetcher(binary, destDir, cookiesPath string, log *logrus.Logger) *Fetcher {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Fetcher{BinaryPath: binary, DestDir: destDir, CookiesPath: cookiesPath, Log: log}
}

// Fetch returns the local mp3 path and the sanitized title for url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	title, err := f.probeTitle(ctx, url)
	if err != nil {
		return "", "", err
	}
	safe := SafeTitle(title)
	if safe == "" {
		safe = "audio"
	}

	finalPath := filepath.Join(f.DestDir, safe+".mp3")
	if _, err := os.Stat(finalPath); err == nil {
		f.Log.WithFields(logrus.Fields{"file": finalPath}).Info("audio already cached, skipping download")
		return finalPath, safe, nil
	}

	args := f.commonArgs()
	args = append(args,
		"-f", formatFallback,
		"-x", "--audio-format", "mp3",
		"--audio-quality", audioQuality,
		"-o", filepath.Join(f.DestDir, safe+".%(ext)s"),
		url,
	)
	if err := f.run(ctx, args); err != nil {
		return "", "", fmt.Errorf("yt-dlp download: %w", err)
	}

	if _, err := os.Stat(finalPath); err != nil {
		return "", "", fmt.Errorf("audio file not found after yt-dlp run: %s", finalPath)
	}
	f.Log.WithFields(logrus.Fields{"file": finalPath}).Info("audio downloaded")
	return finalPath, safe, nil
}

// probeTitle asks yt-dlp for the source title without downloading anything.
func (f *Fetcher) probeTitle(ctx context.Context, url string) (string, error) {
	args := f.commonArgs()
	args = append(args, "--skip-download", "--print", "title", url)

	cmd := exec.CommandContext(ctx, f.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp probe: %w (%s)", err, lastLine(stderr.String()))
	}
	title := strings.TrimSpace(stdout.String())
	if title == "" {
		title = "audio"
	}
	return title, nil
}

func (f *Fetcher) commonArgs() []string {
	args := []string{
		"--quiet",
		"--no-playlist",
		"--retries", retries,
		"--fragment-retries", retries,
		"--user-agent", userAgent,
		"--extractor-args", extractorArgs,
	}
	if f.CookiesPath != "" {
		if fi, err := os.Stat(f.CookiesPath); err == nil && !fi.IsDir() {
			args = append(args, "--cookies", f.CookiesPath)
		}
	}
	return args
}

func (f *Fetcher) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.BinaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w (%s)", err, lastLine(stderr.String()))
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
