package media

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeFFmpeg writes a script that copies its input arg to its output arg,
// standing in for a real ffmpeg.
func fakeFFmpeg(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}

func TestTranscodeDerivedPath(t *testing.T) {
	// The script's last positional arg is the output path; write to it.
	bin := fakeFFmpeg(t, `for out; do :; done; echo "wav" > "$out"`)
	tr := NewTranscoder(bin)

	input := filepath.Join(t.TempDir(), "hearing.mp3")
	if err := os.WriteFile(input, []byte("mp3"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	out, err := tr.TranscodeToWAV16kMono(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(out, ".16k.wav") {
		t.Errorf("unexpected derived path: %q", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("derived file missing: %v", err)
	}
	if _, err := os.Stat(input); err != nil {
		t.Errorf("input must be left intact: %v", err)
	}
}

func TestTranscodeFailure(t *testing.T) {
	bin := fakeFFmpeg(t, `echo "Invalid data found when processing input" >&2; exit 1`)
	tr := NewTranscoder(bin)

	_, err := tr.TranscodeToWAV16kMono(context.Background(), "/tmp/nope.mp3")
	if err == nil {
		t.Fatal("expected error for failing transcode")
	}
}

func TestDerivedPathNoCollision(t *testing.T) {
	a := derivedPath("case/a.mp3")
	b := derivedPath("case/a.mp3.wav")
	if a == b {
		t.Errorf("derived paths collide: %q", a)
	}
}
