package transcription

import (
	"fmt"
	"sort"
	"strings"
)

// Options holds caller preferences for a transcription call.
type Options struct {
	// Speakers is the expected number of speakers, at least 1.
	Speakers int `json:"speakers"`
	// Timestamps requests time-aligned segments.
	Timestamps bool `json:"timestamps"`
	// Confidence requests per-word confidence scores.
	Confidence bool `json:"confidence"`
	// EnhanceAudio requests a mono 16 kHz transcode before transcription.
	EnhanceAudio bool `json:"enhance_audio"`
	// Notes is free-form caller context, carried into the custody record.
	Notes string `json:"notes,omitempty"`
}

// ApplyDefaults fills in default option values.
func (o *Options) ApplyDefaults() {
	if o.Speakers < 1 {
		o.Speakers = 2
	}
}

// Request holds the parameters for one transcription call. A request is
// immutable once constructed; AudioPath must be readable when the provider
// is invoked.
type Request struct {
	// AudioPath is the path to the audio file to transcribe. When audio
	// enhancement ran, this is the derived file, not the original upload.
	AudioPath string `json:"audio_path"`
	// OriginalName is the filename as uploaded by the caller.
	OriginalName string `json:"original_name"`
	// Options are the caller preferences.
	Options Options `json:"options"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Speaker is the identified speaker label, if available.
	Speaker string `json:"speaker,omitempty"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
	// Confidence is the segment confidence in [0,1]. Nil means the backend
	// did not provide one; it is never zero-for-absent.
	Confidence *float64 `json:"confidence,omitempty"`
}

// SpeakerTurn describes who spoke during a time interval, independent of
// segment boundaries.
type SpeakerTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// WordScore is a single word with timing and confidence.
type WordScore struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker,omitempty"`
}

// Transcript is the canonical, backend-independent transcription result.
// Every provider normalizes its raw response into this shape; optional
// slices are nil when the backend did not produce them.
type Transcript struct {
	// Provider identifies the backend that produced the result.
	Provider string `json:"provider"`
	// Text is the full transcript, segment texts in temporal order.
	Text string `json:"text"`
	// Segments are ordered by start time, non-decreasing. Overlap is
	// backend-dependent and allowed.
	Segments []Segment `json:"segments"`
	// Diarization holds speaker turns when the backend diarizes.
	Diarization []SpeakerTurn `json:"diarization,omitempty"`
	// WordConfidence holds per-word scores when the backend provides them.
	WordConfidence []WordScore `json:"word_confidence,omitempty"`
}

// SortSegments orders segments by start time, preserving the relative
// order of segments with equal starts.
func (t *Transcript) SortSegments() {
	sort.SliceStable(t.Segments, func(i, j int) bool {
		return t.Segments[i].Start < t.Segments[j].Start
	})
}

// JoinSegmentText concatenates segment texts in order, space-separated.
func (t *Transcript) JoinSegmentText() string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Validate checks the canonical-schema invariants: each segment has
// start <= end, segments are non-decreasing by start, and every populated
// confidence lies in [0,1].
func (t *Transcript) Validate() error {
	for i, s := range t.Segments {
		if s.Start > s.End {
			return fmt.Errorf("transcript: segment %d: start %.3f after end %.3f", i, s.Start, s.End)
		}
		if i > 0 && s.Start < t.Segments[i-1].Start {
			return fmt.Errorf("transcript: segment %d: start %.3f before previous segment", i, s.Start)
		}
		if s.Confidence != nil && (*s.Confidence < 0 || *s.Confidence > 1) {
			return fmt.Errorf("transcript: segment %d: confidence %.3f outside [0,1]", i, *s.Confidence)
		}
	}
	for i, w := range t.WordConfidence {
		if w.Confidence < 0 || w.Confidence > 1 {
			return fmt.Errorf("transcript: word %d: confidence %.3f outside [0,1]", i, w.Confidence)
		}
	}
	return nil
}
