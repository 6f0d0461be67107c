// Package whispercpp implements the local-binary transcription provider.
// It invokes a whisper.cpp executable as a subprocess and parses its JSON
// stdout best-effort: a malformed backend response degrades to a
// placeholder transcript instead of failing the batch.
package whispercpp

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/process"
	"github.com/Chundurirohan/Courtly-server/provider"
	"github.com/Chundurirohan/Courtly-server/transcription"
)

// ProviderName is the registered name for the whisper.cpp provider.
const ProviderName = "whisper.cpp"

// parseFailureText is returned instead of an error when stdout is not the
// JSON shape we expect. whisper.cpp's JSON schema varies by build, and a
// malformed transcript must not abort a whole batch.
const parseFailureText = "Unable to parse whisper.cpp output"

// Config holds configuration for the whisper.cpp provider.
type Config struct {
	// Binary is the path to the whisper.cpp executable.
	Binary string `json:"binary" yaml:"binary"`
	// Model is the model file passed via -m.
	Model string `json:"model" yaml:"model"`
}

// Provider implements transcription.Provider using a whisper.cpp subprocess.
type Provider struct {
	cfg Config
	log *logger.Logger
}

// NewProvider creates a new whisper.cpp transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = "ggml-large-v3.bin"
	}
	return &Provider{
		cfg: cfg,
		log: logger.Get("whispercpp"),
	}
}

// Factory returns a provider.Factory that creates whisper.cpp providers
// from a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		wc := Config{}
		if v, ok := cfg["whisper_cpp_bin"].(string); ok {
			wc.Binary = v
		}
		if v, ok := cfg["whisper_cpp_model"].(string); ok {
			wc.Model = v
		}
		return NewProvider(wc), nil
	}
}

// Register registers the whisper.cpp factory in a transcription registry.
func Register(reg *provider.Registry[transcription.Provider]) {
	reg.RegisterFactory(ProviderName, Factory())
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a binary path is configured. Presence only;
// the path is not probed until call time.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.Binary != ""
}

// Transcribe runs the whisper.cpp binary against the request's audio file.
// The binary's presence is re-checked here: selection state may be stale.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Transcript, error) {
	if p.cfg.Binary == "" {
		return nil, errors.Provider(ProviderName, "no whisper.cpp binary configured")
	}
	if _, err := os.Stat(p.cfg.Binary); err != nil {
		return nil, errors.Provider(ProviderName, "binary not found at "+p.cfg.Binary).WithCause(err)
	}

	result, err := process.Run(ctx, process.Command{
		Binary: p.cfg.Binary,
		Args:   []string{"-m", p.cfg.Model, "-f", req.AudioPath, "-of", "json", "-pp"},
	})
	if err != nil {
		cause := err.Error()
		if result != nil {
			if stderr := strings.TrimSpace(string(result.Stderr)); stderr != "" {
				cause = stderr
			}
		}
		return nil, errors.Provider(ProviderName, cause)
	}

	p.log.Debug("whisper.cpp finished", logger.DurationFields("transcribe", result.Duration))
	return ParseOutput(result.Stdout), nil
}

// --- internal whisper.cpp output types ---

// rawSegment accepts both field variants seen across whisper.cpp builds:
// t0/t1 in centiseconds and start/end in seconds. Pointers distinguish
// absent fields from zero values.
type rawSegment struct {
	T0    *float64 `json:"t0"`
	T1    *float64 `json:"t1"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Text  string   `json:"text"`
}

type rawOutput struct {
	Segments []rawSegment `json:"segments"`
}

// ParseOutput normalizes whisper.cpp stdout into the canonical transcript.
// Any parse failure yields the degraded placeholder transcript, never an
// error.
func ParseOutput(stdout []byte) *transcription.Transcript {
	var raw rawOutput
	if err := json.Unmarshal(stdout, &raw); err != nil {
		return &transcription.Transcript{
			Provider: ProviderName,
			Text:     parseFailureText,
			Segments: []transcription.Segment{},
		}
	}

	segments := make([]transcription.Segment, 0, len(raw.Segments))
	for _, s := range raw.Segments {
		segments = append(segments, transcription.Segment{
			Start: toSeconds(s.T0, s.Start),
			End:   toSeconds(s.T1, s.End),
			Text:  strings.TrimSpace(s.Text),
		})
	}

	tr := &transcription.Transcript{
		Provider: ProviderName,
		Segments: segments,
	}
	tr.SortSegments()
	tr.Text = tr.JoinSegmentText()
	return tr
}

// toSeconds resolves the two timing variants: a non-zero centisecond field
// wins, then the seconds field, then zero.
func toSeconds(centi, sec *float64) float64 {
	if centi != nil && *centi != 0 {
		return *centi / 100.0
	}
	if sec != nil {
		return *sec
	}
	return 0
}
