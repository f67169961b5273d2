package models

import (
	"encoding/json"
	"fmt"
)

// TimeRange is a segment's time offsets in seconds. Either bound may be
// missing when the engine did not supply it. Serialized as a two-element
// array, ex: [0.0, 4.32] or [312.5, null].
type TimeRange struct {
	Start *float64
	End   *float64
}

func (t TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*float64{t.Start, t.End})
}

func (t *TimeRange) UnmarshalJSON(data []byte) error {
	var pair []*float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("timestamp: want 2 elements, got %d", len(pair))
	}
	t.Start, t.End = pair[0], pair[1]
	return nil
}

// Segment is a contiguous span of transcript text with optional timing.
type Segment struct {
	Text      string     `json:"text"`
	Timestamp *TimeRange `json:"timestamp,omitempty"`
}

// TranscriptionResult is the engine output persisted as <base>.json.
// Segments keep the "chunks" wire name. Text is the space-joined segment
// text, or the engine's whole-text output when it produced no segments.
type TranscriptionResult struct {
	Language string    `json:"language"`
	Text     string    `json:"text"`
	Segments []Segment `json:"chunks"`
}

// OutputPaths points at the two persisted artifacts of one transcription.
type OutputPaths struct {
	JSON string `json:"json"`
	TXT  string `json:"txt"`
}

// TranscribeSummary is the success response body for both entry operations.
type TranscribeSummary struct {
	OK          bool        `json:"ok"`
	Title       string      `json:"title"`
	Language    string      `json:"language"`
	TextPreview string      `json:"text_preview"`
	Paths       OutputPaths `json:"paths"`
}
