package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	if err := Load(&cfg, WithConfigFile("does-not-exist.yml"), WithEnvFile("does-not-exist.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "courtly" {
		t.Errorf("expected default name 'courtly', got %q", cfg.Name)
	}
	if cfg.Server.Port != 5050 {
		t.Errorf("expected default port 5050, got %d", cfg.Server.Port)
	}
	if cfg.ASR.DeepgramModel != "nova-2" {
		t.Errorf("expected default deepgram model, got %q", cfg.ASR.DeepgramModel)
	}
	if cfg.ASR.WhisperModel != "ggml-large-v3.bin" {
		t.Errorf("expected default whisper model, got %q", cfg.ASR.WhisperModel)
	}
	if cfg.Dirs.Data != "uploads" || cfg.Dirs.Export != "exports" {
		t.Errorf("unexpected dirs: %+v", cfg.Dirs)
	}
}

func TestLoadCapabilityFlagsFromEnv(t *testing.T) {
	os.Setenv("ASR_WHISPER_CPP_BIN", "/opt/whisper/main")
	os.Setenv("ASR_DEEPGRAM_API_KEY", "dg-secret")
	defer os.Unsetenv("ASR_WHISPER_CPP_BIN")
	defer os.Unsetenv("ASR_DEEPGRAM_API_KEY")

	var cfg Config
	if err := Load(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ASR.WhisperBin != "/opt/whisper/main" {
		t.Errorf("expected whisper bin from env, got %q", cfg.ASR.WhisperBin)
	}
	if cfg.ASR.DeepgramKey != "dg-secret" {
		t.Errorf("expected deepgram key from env, got %q", cfg.ASR.DeepgramKey)
	}
}

func TestCapabilityFlagsNotValidated(t *testing.T) {
	// A nonsense binary path must not fail validation; presence is checked
	// at call time, not startup.
	var cfg Config
	cfg.ASR.WhisperBin = "/no/such/binary"
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("capability flags should not be validated: %v", err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("ASR_DEEPGRAM_API_KEY")
	want := "asr.deepgram_api_key"
	for _, v := range variants {
		if v == want {
			return
		}
	}
	t.Errorf("expected variant %q in %v", want, variants)
}

func TestServerValidate(t *testing.T) {
	s := Server{Port: 70000}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
