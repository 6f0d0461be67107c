package transcription

import (
	"context"

	"github.com/Chundurirohan/Courtly-server/config"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/provider"
)

// Registered provider names, in selection priority order.
const (
	ProviderWhisperCpp = "whisper.cpp"
	ProviderDeepgram   = "deepgram"
	ProviderMock       = "mock"
)

// SelectionOrder is the fixed backend priority: local binary first, then
// the remote API, then the offline mock. The mock is always available, so
// selection cannot fail for configuration reasons.
var SelectionOrder = []string{ProviderWhisperCpp, ProviderDeepgram, ProviderMock}

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// ConfigMap flattens the ASR capability flags into the generic factory
// config shape.
func ConfigMap(cfg config.ASR) map[string]any {
	return map[string]any{
		"whisper_cpp_bin":   cfg.WhisperBin,
		"whisper_cpp_model": cfg.WhisperModel,
		"deepgram_api_key":  cfg.DeepgramKey,
		"deepgram_model":    cfg.DeepgramModel,
	}
}

// Select instantiates every registered backend from cfg and returns the
// first available one in SelectionOrder. It is a pure function of the
// deployment configuration: no request state is consulted, and the chosen
// provider serves every file of the batch it was selected for.
func Select(ctx context.Context, reg *provider.Registry[Provider], cfg config.ASR) (Provider, error) {
	log := logger.Get("transcription")
	cfgMap := ConfigMap(cfg)

	providers := make(map[string]Provider, len(SelectionOrder))
	for _, name := range SelectionOrder {
		p, err := reg.Create(name, cfgMap)
		if err != nil {
			// Unregistered backends simply don't participate.
			continue
		}
		reg.Set(name, p)
		providers[name] = p
	}

	selector := &provider.PrioritySelector[Provider]{Priority: SelectionOrder}
	selected, err := selector.Select(ctx, providers)
	if err != nil {
		return nil, err
	}
	log.Info("transcription provider selected", logger.Fields(logger.FieldProvider, selected.Name()))
	return selected, nil
}
