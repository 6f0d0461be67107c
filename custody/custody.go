// Package custody persists chain-of-custody records for transcribed
// evidence. Each record captures what was processed, from which original,
// the original's SHA-256 digest, and which backend produced the result.
package custody

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/storage"
)

// EventTranscribe is the event type stamped on transcription records.
const EventTranscribe = "TRANSCRIBE"

// Record is one immutable chain-of-custody entry.
type Record struct {
	// Event names what happened to the evidence.
	Event string `json:"event"`
	// Time is the record creation time, RFC 3339 in UTC.
	Time string `json:"time"`
	// OriginalPath is the uploaded file as received.
	OriginalPath string `json:"original_path"`
	// ProcessedPath is the file actually fed to the backend. Equals
	// OriginalPath when no preprocessing ran.
	ProcessedPath string `json:"processed_path"`
	// SHA256Original is the hex digest of the original file, never of the
	// processed one.
	SHA256Original string `json:"sha256_original"`
	// Provider is the backend that produced the transcript.
	Provider string `json:"provider"`
	// Meta carries free-form context such as options and notes.
	Meta map[string]any `json:"meta,omitempty"`
}

// Params carries the inputs for one custody record.
type Params struct {
	OriginalPath   string
	ProcessedPath  string
	SHA256Original string
	Provider       string
	Meta           map[string]any
}

// Recorder writes custody records to a blob store.
type Recorder struct {
	store storage.Storage
	log   *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewRecorder creates a Recorder backed by the given store.
func NewRecorder(store storage.Storage) *Recorder {
	return &Recorder{
		store: store,
		log:   logger.Get("custody"),
		now:   time.Now,
	}
}

// Create builds a TRANSCRIBE record, persists it under a unique name, and
// returns the record together with the name it was stored under.
func (r *Recorder) Create(ctx context.Context, p Params) (*Record, string, error) {
	now := r.now().UTC()
	rec := &Record{
		Event:          EventTranscribe,
		Time:           now.Format(time.RFC3339),
		OriginalPath:   p.OriginalPath,
		ProcessedPath:  p.ProcessedPath,
		SHA256Original: p.SHA256Original,
		Provider:       p.Provider,
		Meta:           p.Meta,
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, "", errors.Persistence("chain-of-custody record", err)
	}

	name := recordName(now)
	if err := r.store.Upload(ctx, name, bytes.NewReader(data)); err != nil {
		return nil, "", errors.Persistence("chain-of-custody record", err)
	}

	r.log.Info("custody record written", logger.Fields(
		logger.FieldFile, name,
		logger.FieldProvider, p.Provider,
	))
	return rec, name, nil
}

// recordName builds a collision-free record name. The timestamp keeps
// records listable in order; the uuid suffix keeps concurrent writers
// within the same millisecond apart.
func recordName(now time.Time) string {
	return fmt.Sprintf("coc_%d_%s.json", now.UnixMilli(), uuid.NewString()[:8])
}
