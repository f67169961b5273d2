package format

import (
	"testing"

	"github.com/lisanhq/lisan/internal/models"
)

func segs(texts ...string) []models.Segment {
	out := make([]models.Segment, len(texts))
	for i, s := range texts {
		out[i] = models.Segment{Text: s}
	}
	return out
}

func TestParagraph(t *testing.T) {
	tests := []struct {
		name string
		res  *models.TranscriptionResult
		want string
	}{
		{
			name: "sentence breaks",
			res:  &models.TranscriptionResult{Segments: segs("Hello world.", "How are you?", "Fine!")},
			want: "Hello world.\n\nHow are you?\n\nFine!",
		},
		{
			name: "segment padding trimmed and joined",
			res:  &models.TranscriptionResult{Segments: segs("  one ", "\ttwo  ")},
			want: "one two",
		},
		{
			name: "whitespace runs collapse",
			res:  &models.TranscriptionResult{Segments: segs("a  b.   Next")},
			want: "a b.\n\nNext",
		},
		{
			name: "whole text fallback without segments",
			res:  &models.TranscriptionResult{Text: "No chunks here. Still split!  Done"},
			want: "No chunks here.\n\nStill split!\n\nDone",
		},
		{
			name: "terminal mark without trailing space keeps line",
			res:  &models.TranscriptionResult{Segments: segs("end.")},
			want: "end.",
		},
		{
			name: "empty result",
			res:  &models.TranscriptionResult{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Paragraph(tt.res); got != tt.want {
				t.Errorf("Paragraph() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("short", 200); got != "short" {
		t.Errorf("Preview(short) = %q", got)
	}
	long := make([]rune, 0, 300)
	for i := 0; i < 300; i++ {
		long = append(long, 'é') // multibyte: slicing must be rune-safe
	}
	got := Preview(string(long), 200)
	if len([]rune(got)) != 200 {
		t.Errorf("Preview length = %d runes, want 200", len([]rune(got)))
	}
}
