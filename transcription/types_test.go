package transcription

import (
	"testing"

	"github.com/Chundurirohan/Courtly-server/util"
)

func TestOptionsApplyDefaults(t *testing.T) {
	o := Options{}
	o.ApplyDefaults()
	if o.Speakers != 2 {
		t.Errorf("expected default speakers 2, got %d", o.Speakers)
	}

	o = Options{Speakers: 5}
	o.ApplyDefaults()
	if o.Speakers != 5 {
		t.Errorf("explicit speakers should be kept, got %d", o.Speakers)
	}
}

func TestSortSegmentsStable(t *testing.T) {
	tr := Transcript{Segments: []Segment{
		{Start: 2.0, End: 3.0, Text: "c"},
		{Start: 0.5, End: 1.0, Text: "a"},
		{Start: 0.5, End: 1.2, Text: "b"},
	}}
	tr.SortSegments()
	if tr.Segments[0].Text != "a" || tr.Segments[1].Text != "b" || tr.Segments[2].Text != "c" {
		t.Errorf("unexpected order: %+v", tr.Segments)
	}
}

func TestJoinSegmentText(t *testing.T) {
	tr := Transcript{Segments: []Segment{
		{Text: "good"},
		{Text: ""},
		{Text: "morning"},
	}}
	if got := tr.JoinSegmentText(); got != "good morning" {
		t.Errorf("expected 'good morning', got %q", got)
	}
}

func TestValidateMonotonic(t *testing.T) {
	tr := Transcript{Segments: []Segment{
		{Start: 0, End: 1, Text: "a"},
		{Start: 0.5, End: 2, Text: "b"}, // overlap is fine
		{Start: 1.5, End: 2.5, Text: "c"},
	}}
	if err := tr.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tr.Segments[2].Start = 0.1 // out of order
	if err := tr.Validate(); err == nil {
		t.Fatal("expected error for non-monotonic segments")
	}
}

func TestValidateStartAfterEnd(t *testing.T) {
	tr := Transcript{Segments: []Segment{{Start: 2, End: 1, Text: "x"}}}
	if err := tr.Validate(); err == nil {
		t.Fatal("expected error for start after end")
	}
}

func TestValidateConfidenceRange(t *testing.T) {
	tr := Transcript{Segments: []Segment{
		{Start: 0, End: 1, Text: "a", Confidence: util.Ptr(1.5)},
	}}
	if err := tr.Validate(); err == nil {
		t.Fatal("expected error for confidence above 1")
	}

	tr = Transcript{WordConfidence: []WordScore{{Word: "a", Confidence: -0.1}}}
	if err := tr.Validate(); err == nil {
		t.Fatal("expected error for negative word confidence")
	}

	// Absent confidence is not an error.
	tr = Transcript{Segments: []Segment{{Start: 0, End: 1, Text: "a"}}}
	if err := tr.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
