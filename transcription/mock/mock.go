// Package mock implements a deterministic offline transcription provider.
// It exists so the whole pipeline is exercisable with zero external
// dependencies: no binary, no credential, no network.
package mock

import (
	"context"

	"github.com/Chundurirohan/Courtly-server/provider"
	"github.com/Chundurirohan/Courtly-server/transcription"
	"github.com/Chundurirohan/Courtly-server/util"
)

// ProviderName is the registered name for the mock provider.
const ProviderName = "mock"

// Provider implements transcription.Provider with a fixed transcript.
type Provider struct{}

// NewProvider creates a new mock transcription provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Factory returns a provider.Factory for registry registration.
func Factory() provider.Factory[transcription.Provider] {
	return func(_ map[string]any) (transcription.Provider, error) {
		return NewProvider(), nil
	}
}

// Register registers the mock factory in a transcription registry.
func Register(reg *provider.Registry[transcription.Provider]) {
	reg.RegisterFactory(ProviderName, Factory())
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable always returns true: the mock is the unconditional fallback.
func (p *Provider) IsAvailable(_ context.Context) bool { return true }

// Transcribe returns a fixed placeholder transcript. Identical inputs
// yield identical output.
func (p *Provider) Transcribe(_ context.Context, _ transcription.Request) (*transcription.Transcript, error) {
	return &transcription.Transcript{
		Provider: ProviderName,
		Text:     "This is a mock transcript. Configure ASR_WHISPER_CPP_BIN or ASR_DEEPGRAM_API_KEY.",
		Segments: []transcription.Segment{
			{Start: 0, End: 3, Speaker: "S1", Text: "This is a mock transcript.", Confidence: util.Ptr(0.6)},
		},
	}, nil
}
