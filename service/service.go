// Package service orchestrates the transcription pipeline: digesting,
// optional preprocessing, backend transcription, chain-of-custody
// recording, and export.
package service

import (
	"context"

	"github.com/Chundurirohan/Courtly-server/custody"
	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/observability"
	"github.com/Chundurirohan/Courtly-server/transcription"
	"github.com/Chundurirohan/Courtly-server/util"
)

// UploadedFile is one received audio file, already stored on disk.
type UploadedFile struct {
	// Path is where the upload was written.
	Path string `json:"path"`
	// Name is the client-supplied original name.
	Name string `json:"name"`
}

// FileResult is the per-file outcome of a batch.
type FileResult struct {
	File           string                      `json:"file"`
	SHA256         string                      `json:"sha256"`
	Text           string                      `json:"text"`
	Segments       []transcription.Segment     `json:"segments"`
	Diarization    []transcription.SpeakerTurn `json:"diarization,omitempty"`
	WordConfidence []transcription.WordScore   `json:"word_confidence,omitempty"`
	Provider       string                      `json:"provider"`
	CustodyRecord  string                      `json:"custody_record"`
}

// Recorder persists chain-of-custody records.
type Recorder interface {
	Create(ctx context.Context, p custody.Params) (*custody.Record, string, error)
}

// Transcoder preprocesses audio before transcription.
type Transcoder interface {
	TranscodeToWAV16kMono(ctx context.Context, inputPath string) (string, error)
}

// Exporter renders transcripts into downloadable artifacts.
type Exporter interface {
	Export(ctx context.Context, format, text, title string) (string, error)
}

// Service wires the pipeline stages together.
type Service struct {
	provider   transcription.Provider
	recorder   Recorder
	transcoder Transcoder
	exporter   Exporter
	log        *logger.Logger
}

// New creates a Service from its collaborators.
func New(p transcription.Provider, r Recorder, t Transcoder, e Exporter) *Service {
	return &Service{
		provider:   p,
		recorder:   r,
		transcoder: t,
		exporter:   e,
		log:        logger.Get("service"),
	}
}

// Provider returns the active transcription backend.
func (s *Service) Provider() transcription.Provider { return s.provider }

// TranscribeBatch processes files in order, sequentially. The first
// failure aborts the whole batch and no partial results are returned.
func (s *Service) TranscribeBatch(ctx context.Context, files []UploadedFile, opts transcription.Options) ([]FileResult, error) {
	if len(files) == 0 {
		return nil, errors.MissingField("files")
	}
	opts.ApplyDefaults()

	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		res, err := s.transcribeFile(ctx, f, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}

func (s *Service) transcribeFile(ctx context.Context, f UploadedFile, opts transcription.Options) (*FileResult, error) {
	ctx, span := observability.StartSpan(ctx, "transcribe.file")
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrFile, f.Name)
	observability.SetSpanAttribute(ctx, observability.AttrProvider, s.provider.Name())

	digest, err := util.SHA256File(f.Path)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, errors.InvalidInput("files", "cannot read uploaded file "+f.Name).WithCause(err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrSHA256, digest)

	// The digest above is always of the original bytes; preprocessing only
	// changes what the backend hears.
	audioPath := f.Path
	if opts.EnhanceAudio {
		observability.SetSpanAttribute(ctx, observability.AttrEnhanced, true)
		processed, err := s.transcoder.TranscodeToWAV16kMono(ctx, f.Path)
		if err != nil {
			observability.SetSpanError(ctx, err)
			return nil, err
		}
		audioPath = processed
	}

	transcript, err := s.provider.Transcribe(ctx, transcription.Request{
		AudioPath:    audioPath,
		OriginalName: f.Name,
		Options:      opts,
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	meta := map[string]any{"speakers": opts.Speakers}
	if opts.Notes != "" {
		meta["notes"] = opts.Notes
	}
	_, recordName, err := s.recorder.Create(ctx, custody.Params{
		OriginalPath:   f.Path,
		ProcessedPath:  audioPath,
		SHA256Original: digest,
		Provider:       transcript.Provider,
		Meta:           meta,
	})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	s.log.Info("file transcribed", logger.Fields(
		logger.FieldFile, f.Name,
		logger.FieldProvider, transcript.Provider,
	))
	return &FileResult{
		File:           f.Name,
		SHA256:         digest,
		Text:           transcript.Text,
		Segments:       transcript.Segments,
		Diarization:    transcript.Diarization,
		WordConfidence: transcript.WordConfidence,
		Provider:       transcript.Provider,
		CustodyRecord:  recordName,
	}, nil
}

// Export renders text in the requested format and returns the artifact
// name.
func (s *Service) Export(ctx context.Context, format, text, title string) (string, error) {
	return s.exporter.Export(ctx, format, text, title)
}
