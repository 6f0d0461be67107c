package whispercpp

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/transcription"
)

func TestParseOutputCentiseconds(t *testing.T) {
	out := []byte(`{"segments":[
		{"t0":0,"t1":250,"text":" Good morning."},
		{"t0":250,"t1":480,"text":" Please be seated."}
	]}`)

	tr := ParseOutput(out)
	if tr.Provider != ProviderName {
		t.Errorf("expected provider %q, got %q", ProviderName, tr.Provider)
	}
	if len(tr.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(tr.Segments))
	}
	if tr.Segments[1].Start != 2.5 || tr.Segments[1].End != 4.8 {
		t.Errorf("centiseconds not converted: %+v", tr.Segments[1])
	}
	if tr.Segments[0].Text != "Good morning." {
		t.Errorf("text not trimmed: %q", tr.Segments[0].Text)
	}
	if tr.Text != "Good morning. Please be seated." {
		t.Errorf("unexpected joined text: %q", tr.Text)
	}
}

func TestParseOutputSeconds(t *testing.T) {
	out := []byte(`{"segments":[{"start":1.5,"end":3.0,"text":"hello"}]}`)

	tr := ParseOutput(out)
	if len(tr.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(tr.Segments))
	}
	if tr.Segments[0].Start != 1.5 || tr.Segments[0].End != 3.0 {
		t.Errorf("seconds variant not honored: %+v", tr.Segments[0])
	}
}

func TestParseOutputSortsSegments(t *testing.T) {
	out := []byte(`{"segments":[
		{"start":5,"end":6,"text":"second"},
		{"start":1,"end":2,"text":"first"}
	]}`)

	tr := ParseOutput(out)
	if tr.Segments[0].Text != "first" || tr.Segments[1].Text != "second" {
		t.Errorf("segments not sorted by start: %+v", tr.Segments)
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("parsed transcript should satisfy invariants: %v", err)
	}
}

func TestParseOutputMalformed(t *testing.T) {
	for _, out := range []string{"not json at all", "", "[1,2,3"} {
		tr := ParseOutput([]byte(out))
		if tr.Text != parseFailureText {
			t.Errorf("expected placeholder text for %q, got %q", out, tr.Text)
		}
		if tr.Segments == nil || len(tr.Segments) != 0 {
			t.Errorf("expected empty non-nil segments, got %#v", tr.Segments)
		}
	}
}

func TestIsAvailable(t *testing.T) {
	if NewProvider(Config{}).IsAvailable(context.Background()) {
		t.Error("provider without a binary must be unavailable")
	}
	if !NewProvider(Config{Binary: "/usr/local/bin/whisper"}).IsAvailable(context.Background()) {
		t.Error("provider with a binary path must be available")
	}
}

// fakeBinary writes an executable shell script standing in for whisper.cpp.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "whisper")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake binary: %v", err)
	}
	return path
}

func TestTranscribeSubprocess(t *testing.T) {
	bin := fakeBinary(t, `echo '{"segments":[{"t0":0,"t1":300,"text":" ok"}]}'`)
	p := NewProvider(Config{Binary: bin})

	tr, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/in.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Text != "ok" || len(tr.Segments) != 1 || tr.Segments[0].End != 3.0 {
		t.Errorf("unexpected transcript: %+v", tr)
	}
}

func TestTranscribeNonZeroExit(t *testing.T) {
	bin := fakeBinary(t, `echo "model load failed" >&2; exit 3`)
	p := NewProvider(Config{Binary: bin})

	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/in.wav"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
	if !strings.Contains(appErr.Message, "model load failed") {
		t.Errorf("stderr not surfaced in error: %v", appErr)
	}
}

func TestTranscribeMissingBinary(t *testing.T) {
	p := NewProvider(Config{Binary: filepath.Join(t.TempDir(), "nope")})

	_, err := p.Transcribe(context.Background(), transcription.Request{AudioPath: "/tmp/in.wav"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeProvider {
		t.Fatalf("expected provider error, got %v", err)
	}
}
