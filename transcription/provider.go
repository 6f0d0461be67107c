// Package transcription defines the canonical transcript model, the
// provider interface speech-to-text backends implement, and the
// capability-driven selection of exactly one backend per deployment.
package transcription

import (
	"context"

	"github.com/Chundurirohan/Courtly-server/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the normalized
	// result. It re-checks its own capability (binary, credential) at call
	// time rather than trusting an earlier selection.
	Transcribe(ctx context.Context, req Request) (*Transcript, error)
}
