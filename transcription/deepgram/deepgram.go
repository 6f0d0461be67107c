// Package deepgram implements the hosted-API transcription provider. It
// posts raw audio bytes to the Deepgram listen endpoint and maps the
// response onto the canonical transcript schema.
package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/provider"
	"github.com/Chundurirohan/Courtly-server/transcription"
)

// ProviderName is the registered name for the Deepgram provider.
const ProviderName = "deepgram"

// DefaultBaseURL is the production Deepgram API endpoint.
const DefaultBaseURL = "https://api.deepgram.com"

// unknownSpeaker labels diarization turns whose speaker index is missing
// from the response.
const unknownSpeaker = "S?"

// Config holds configuration for the Deepgram provider.
type Config struct {
	// APIKey authenticates requests via the Token scheme.
	APIKey string `json:"api_key" yaml:"api_key"`
	// Model selects the Deepgram model, nova-2 by default.
	Model string `json:"model" yaml:"model"`
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// Timeout bounds the whole HTTP exchange.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Provider implements transcription.Provider against the Deepgram API.
type Provider struct {
	cfg    Config
	client *http.Client
	log    *logger.Logger
}

// NewProvider creates a new Deepgram transcription provider.
func NewProvider(cfg Config) *Provider {
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Minute
	}
	return &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.Get("deepgram"),
	}
}

// Factory returns a provider.Factory that creates Deepgram providers from
// a generic config map.
func Factory() provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		dg := Config{}
		if v, ok := cfg["deepgram_api_key"].(string); ok {
			dg.APIKey = v
		}
		if v, ok := cfg["deepgram_model"].(string); ok {
			dg.Model = v
		}
		if v, ok := cfg["deepgram_base_url"].(string); ok {
			dg.BaseURL = v
		}
		return NewProvider(dg), nil
	}
}

// Register registers the Deepgram factory in a transcription registry.
func Register(reg *provider.Registry[transcription.Provider]) {
	reg.RegisterFactory(ProviderName, Factory())
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool {
	return p.cfg.APIKey != ""
}

// Transcribe uploads the audio file and maps the Deepgram response.
// The key's presence is re-checked here: selection state may be stale.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Transcript, error) {
	if p.cfg.APIKey == "" {
		return nil, errors.Provider(ProviderName, "no Deepgram API key configured")
	}

	audio, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, errors.Provider(ProviderName, "cannot read audio file").WithCause(err)
	}
	defer audio.Close()

	q := url.Values{}
	q.Set("diarize", "true")
	q.Set("punctuate", "true")
	q.Set("utterances", "true")
	q.Set("model", p.cfg.Model)
	endpoint := p.cfg.BaseURL + "/v1/listen?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, audio)
	if err != nil {
		return nil, errors.Provider(ProviderName, "building request failed").WithCause(err)
	}
	httpReq.Header.Set("Authorization", "Token "+p.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	started := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errors.Provider(ProviderName, "request failed").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Provider(ProviderName, "reading response failed").WithCause(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		return nil, errors.Provider(ProviderName, fmt.Sprintf("status %d: %s", resp.StatusCode, detail))
	}
	p.log.Debug("deepgram responded", logger.DurationFields("listen", time.Since(started)))

	return mapResponse(body)
}

// --- Deepgram response types ---

type dgWord struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Speaker    *int    `json:"speaker"`
}

type dgUtterance struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Transcript string   `json:"transcript"`
	Confidence *float64 `json:"confidence"`
	Speaker    *int     `json:"speaker"`
	Words      []dgWord `json:"words"`
}

type dgAlternative struct {
	Transcript string   `json:"transcript"`
	Words      []dgWord `json:"words"`
}

type dgChannel struct {
	Alternatives []dgAlternative `json:"alternatives"`
}

type dgResults struct {
	Channels   []dgChannel   `json:"channels"`
	Utterances []dgUtterance `json:"utterances"`
}

// dgResponse carries utterances at both locations observed in the wild:
// nested under results and at the top level.
type dgResponse struct {
	Results    dgResults     `json:"results"`
	Utterances []dgUtterance `json:"utterances"`
}

// mapResponse converts a Deepgram listen response into the canonical
// transcript.
func mapResponse(body []byte) (*transcription.Transcript, error) {
	var dg dgResponse
	if err := json.Unmarshal(body, &dg); err != nil {
		return nil, errors.Provider(ProviderName, "unparseable response").WithCause(err)
	}

	tr := &transcription.Transcript{Provider: ProviderName}

	var alt *dgAlternative
	if len(dg.Results.Channels) > 0 && len(dg.Results.Channels[0].Alternatives) > 0 {
		alt = &dg.Results.Channels[0].Alternatives[0]
		tr.Text = alt.Transcript
	}

	utterances := dg.Results.Utterances
	if len(utterances) == 0 {
		utterances = dg.Utterances
	}
	for _, u := range utterances {
		tr.Segments = append(tr.Segments, transcription.Segment{
			Start:      u.Start,
			End:        u.End,
			Speaker:    speakerLabel(u.Speaker, ""),
			Text:       strings.TrimSpace(u.Transcript),
			Confidence: u.Confidence,
		})
		tr.Diarization = append(tr.Diarization, transcription.SpeakerTurn{
			Start:   u.Start,
			End:     u.End,
			Speaker: speakerLabel(u.Speaker, unknownSpeaker),
		})
	}
	tr.SortSegments()
	if tr.Text == "" {
		tr.Text = tr.JoinSegmentText()
	}

	if alt != nil {
		for _, w := range alt.Words {
			tr.WordConfidence = append(tr.WordConfidence, transcription.WordScore{
				Word:       w.Word,
				Start:      w.Start,
				End:        w.End,
				Confidence: w.Confidence,
				Speaker:    speakerLabel(w.Speaker, ""),
			})
		}
	}

	return tr, nil
}

// speakerLabel formats a Deepgram speaker index as S<n>, or fallback when
// the index is absent.
func speakerLabel(speaker *int, fallback string) string {
	if speaker == nil {
		return fallback
	}
	return fmt.Sprintf("S%d", *speaker)
}
