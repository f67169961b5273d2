package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lisanhq/lisan/internal/format"
	"github.com/lisanhq/lisan/internal/media"
	"github.com/lisanhq/lisan/internal/models"
	"github.com/lisanhq/lisan/internal/providers/asr"
	"github.com/lisanhq/lisan/internal/storage"
	"github.com/lisanhq/lisan/internal/utils"
)

const previewRunes = 200

// AudioFetcher acquires a source URL's audio track as a local file and
// returns its path plus the sanitized title.
type AudioFetcher interface {
	Fetch(ctx context.Context, url string) (path, safeTitle string, err error)
}

// AudioNormalizer converts an uploaded file into the canonical audio format.
type AudioNormalizer interface {
	Normalize(ctx context.Context, inPath string) (outPath string, err error)
}

// EngineSource hands out the process-wide transcription engine.
type EngineSource interface {
	Engine() (asr.Engine, error)
}

// TranscribeService sequences the whole pipeline for both entry operations:
// acquire/normalize, transcribe, format, persist, summarize.
type TranscribeService interface {
	FromURL(ctx context.Context, rawURL, language string) (*models.TranscribeSummary, error)
	FromUpload(ctx context.Context, filename, contentType string, r io.Reader, language string) (*models.TranscribeSummary, error)
}

type transcribeService struct {
	fetcher    AudioFetcher
	normalizer AudioNormalizer
	engines    EngineSource
	store      storage.TranscriptStore
	tmpDir     string
	log        *logrus.Logger
}

func NewTranscribeService(fetcher AudioFetcher, normalizer AudioNormalizer, engines EngineSource, store storage.TranscriptStore, tmpDir string, log *logrus.Logger) TranscribeService {
	return &transcribeService{
		fetcher:    fetcher,
		normalizer: normalizer,
		engines:    engines,
		store:      store,
		tmpDir:     tmpDir,
		log:        log,
	}
}

func (s *transcribeService) FromURL(ctx context.Context, rawURL, language string) (*models.TranscribeSummary, error) {
	const op = "TranscribeService.FromURL"

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("invalid URL: %q", rawURL), err)
	}

	s.log.WithFields(logrus.Fields{"url": rawURL, "lang": language}).Info("transcribe request (url)")

	audioPath, base, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.log.WithError(err).WithField("stage", "acquisition").Error("failed to fetch audio")
		return nil, utils.E(utils.CodeAcquisition, op, "failed to download audio", err)
	}
	if fi, err := os.Stat(audioPath); err == nil {
		s.log.WithFields(logrus.Fields{"file": audioPath, "size": humanBytes(fi.Size())}).Info("audio ready")
	}

	return s.process(ctx, op, base, audioPath, language)
}

// mimeExts maps declared upload MIME types to their canonical extension.
// A generic or unknown type falls through to the filename extension.
var mimeExts = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/mp4":   ".m4a", // m4a is often declared as audio/mp4
	"audio/x-m4a": ".m4a",
	"audio/m4a":   ".m4a",
	"audio/aac":   ".aac",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
}

var supportedExts = map[string]bool{".mp3": true, ".m4a": true, ".aac": true, ".wav": true}

func (s *transcribeService) FromUpload(ctx context.Context, filename, contentType string, r io.Reader, language string) (*models.TranscribeSummary, error) {
	const op = "TranscribeService.FromUpload"

	ext := mimeExts[strings.ToLower(contentType)]
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(filename))
	}
	if !supportedExts[ext] {
		return nil, utils.E(utils.CodeUnsupportedMedia, op, fmt.Sprintf("unsupported file type: %s", contentType), nil)
	}

	base := media.SafeTitle(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "audio"
	}

	tmpIn := filepath.Join(s.tmpDir, base+ext)
	size, err := streamTo(tmpIn, r)
	if err != nil {
		s.log.WithError(err).WithField("stage", "upload").Error("failed to store upload")
		return nil, utils.E(utils.CodeInternal, op, "failed to store upload", err)
	}
	s.log.WithFields(logrus.Fields{"file": tmpIn, "size": humanBytes(size)}).Info("upload received")

	audioPath := tmpIn
	if ext != ".mp3" {
		converted, err := s.normalizer.Normalize(ctx, tmpIn)
		if err != nil {
			s.log.WithError(err).WithField("stage", "conversion").Error("failed to convert audio")
			return nil, utils.E(utils.CodeConversion, op, "failed to convert audio (is ffmpeg installed?)", err)
		}
		s.log.WithFields(logrus.Fields{"src": tmpIn, "dst": converted}).Info("converted to mp3")
		audioPath = converted
	}

	return s.process(ctx, op, base, audioPath, language)
}

// process is the shared tail of both operations: transcribe, format,
// persist, summarize. base is the deterministic output key.
func (s *transcribeService) process(ctx context.Context, op, base, audioPath, language string) (*models.TranscribeSummary, error) {
	engine, err := s.engines.Engine()
	if err != nil {
		s.log.WithError(err).WithField("stage", "engine").Error("engine unavailable")
		return nil, utils.E(utils.CodeTranscription, op, "transcription failed", err)
	}

	s.log.WithFields(logrus.Fields{"file": audioPath}).Info("transcription started")
	result, err := engine.Transcribe(ctx, audioPath, language)
	if err != nil {
		s.log.WithError(err).WithField("stage", "transcription").Error("transcription failed")
		return nil, utils.E(utils.CodeTranscription, op, "transcription failed", err)
	}
	s.log.WithFields(logrus.Fields{"lang": result.Language, "text_len": len(result.Text)}).Info("transcription finished")

	paragraph := format.Paragraph(result)

	paths, err := s.store.Save(base, result, paragraph)
	if err != nil {
		s.log.WithError(err).WithField("stage", "persistence").Error("failed to write output")
		return nil, utils.E(utils.CodePersistence, op, "failed to write transcript output", err)
	}
	s.log.WithFields(logrus.Fields{"json": paths.JSON, "txt": paths.TXT}).Info("output saved")

	return &models.TranscribeSummary{
		OK:          true,
		Title:       base,
		Language:    result.Language,
		TextPreview: format.Preview(paragraph, previewRunes),
		Paths:       paths,
	}, nil
}

func streamTo(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func humanBytes(n int64) string {
	v := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if v < 1024 {
			return fmt.Sprintf("%.1f%s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1fPB", v)
}
