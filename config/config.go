package config

import (
	"fmt"
	"os"
	"strconv"
)

// Settings holds every environment-derived option. It is built once at
// startup and never mutated afterwards.
type Settings struct {
	AppEnv string

	// ASR model staging. Weights must be present under ModelDir before the
	// process starts serving; nothing is fetched at request time.
	ModelID       string
	ModelDir      string
	ModelCacheDir string
	ModelOffline  bool

	// whisper.cpp invocation.
	WhisperBin     string // empty = resolve from PATH
	WhisperDevice  string // auto|cpu|cuda
	WhisperThreads int    // 0 = binary default

	CookiesPath string // optional yt-dlp cookies file
	DefaultLang string

	TmpAudioDir   string
	TranscriptDir string

	MaxConcurrency int
	Port           string
}

// Load reads the environment into Settings and eagerly creates the
// directories it references.
func Load() (*Settings, error) {
	s := &Settings{
		AppEnv:         getenv("APP_ENV", "dev"),
		ModelID:        getenv("MODEL_ID", "ggml-large-v3-turbo"),
		ModelDir:       getenv("MODEL_DIR", "./models/whisper-large-v3-turbo"),
		ModelCacheDir:  getenv("MODEL_CACHE_DIR", "./.model_cache"),
		WhisperBin:     os.Getenv("WHISPER_BIN"),
		WhisperDevice:  getenv("WHISPER_DEVICE", "auto"),
		CookiesPath:    os.Getenv("YT_COOKIES_PATH"),
		DefaultLang:    getenv("DEFAULT_LANG", "id"),
		TmpAudioDir:    getenv("TMP_AUDIO_DIR", "./data/tmp_audio"),
		TranscriptDir:  getenv("TRANSCRIPT_DIR", "./data/transcripts"),
		Port:           getenv("PORT", "8080"),
		MaxConcurrency: 1,
	}

	var err error
	if s.ModelOffline, err = getbool("MODEL_OFFLINE", true); err != nil {
		return nil, err
	}
	if s.WhisperThreads, err = getint("WHISPER_THREADS", 0); err != nil {
		return nil, err
	}
	if s.MaxConcurrency, err = getint("MAX_CONCURRENCY", 1); err != nil {
		return nil, err
	}
	if s.MaxConcurrency < 1 {
		return nil, fmt.Errorf("MAX_CONCURRENCY must be >= 1, got %d", s.MaxConcurrency)
	}

	for _, dir := range []string{s.TmpAudioDir, s.TranscriptDir, s.ModelCacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return s, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getbool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
