// Package format turns timestamped engine output into readable text.
package format

import (
	"regexp"
	"strings"

	"github.com/lisanhq/lisan/internal/models"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	sentenceEnd   = regexp.MustCompile(`([.!?])\s+`)
)

// Paragraph renders a transcript as one readable block: segment texts joined
// by single spaces (or the whole-text field when there are no segments),
// whitespace runs collapsed, and a paragraph break after every
// sentence-terminal mark that is followed by whitespace.
func Paragraph(res *models.TranscriptionResult) string {
	var text string
	if len(res.Segments) > 0 {
		parts := make([]string, 0, len(res.Segments))
		for _, seg := range res.Segments {
			parts = append(parts, strings.TrimSpace(seg.Text))
		}
		text = strings.Join(parts, " ")
	} else {
		text = res.Text
	}
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	return sentenceEnd.ReplaceAllString(text, "$1\n\n")
}

// Preview returns the first n runes of s.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
