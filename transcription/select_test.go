package transcription_test

import (
	"context"
	"testing"

	"github.com/Chundurirohan/Courtly-server/config"
	"github.com/Chundurirohan/Courtly-server/transcription"
	"github.com/Chundurirohan/Courtly-server/transcription/deepgram"
	"github.com/Chundurirohan/Courtly-server/transcription/mock"
	"github.com/Chundurirohan/Courtly-server/transcription/whispercpp"
)

func TestSelectFallsBackToMock(t *testing.T) {
	reg := transcription.NewRegistry()
	whispercpp.Register(reg)
	deepgram.Register(reg)
	mock.Register(reg)

	p, err := transcription.Select(context.Background(), reg, config.ASR{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != transcription.ProviderMock {
		t.Errorf("expected mock fallback, got %q", p.Name())
	}
}

func TestSelectPrefersLocalBinary(t *testing.T) {
	reg := transcription.NewRegistry()
	whispercpp.Register(reg)
	deepgram.Register(reg)
	mock.Register(reg)

	p, err := transcription.Select(context.Background(), reg, config.ASR{
		WhisperBin:  "/opt/whisper/main",
		DeepgramKey: "also-set",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != transcription.ProviderWhisperCpp {
		t.Errorf("local binary must win over the API, got %q", p.Name())
	}
}

func TestSelectUsesDeepgramWhenKeyed(t *testing.T) {
	reg := transcription.NewRegistry()
	whispercpp.Register(reg)
	deepgram.Register(reg)
	mock.Register(reg)

	p, err := transcription.Select(context.Background(), reg, config.ASR{DeepgramKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != transcription.ProviderDeepgram {
		t.Errorf("expected deepgram, got %q", p.Name())
	}
}

func TestSelectSkipsUnregistered(t *testing.T) {
	reg := transcription.NewRegistry()
	mock.Register(reg)

	p, err := transcription.Select(context.Background(), reg, config.ASR{WhisperBin: "/opt/whisper/main"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != transcription.ProviderMock {
		t.Errorf("unregistered backends must not be selected, got %q", p.Name())
	}
}
