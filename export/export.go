// Package export renders transcripts into downloadable artifacts. Two
// formats are supported: plain UTF-8 text and a minimal OOXML word
// processing document.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/storage"
	"github.com/Chundurirohan/Courtly-server/util"
)

// Canonical format names. The aliases "text" and "document" are accepted
// on input and normalized to these.
const (
	FormatTXT  = "txt"
	FormatDOCX = "docx"
)

// Exporter writes rendered transcripts to a blob store.
type Exporter struct {
	store storage.Storage
	log   *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewExporter creates an Exporter backed by the given store.
func NewExporter(store storage.Storage) *Exporter {
	return &Exporter{
		store: store,
		log:   logger.Get("export"),
		now:   time.Now,
	}
}

// Export renders text in the requested format and returns the stored
// artifact name. An unrecognized format fails before anything is written.
func (e *Exporter) Export(ctx context.Context, format, text, title string) (string, error) {
	var (
		data []byte
		ext  string
		err  error
	)
	switch normalizeFormat(format) {
	case FormatTXT:
		data, ext = []byte(text), FormatTXT
	case FormatDOCX:
		ext = FormatDOCX
		data, err = renderDOCX(text)
		if err != nil {
			return "", errors.Internal(err)
		}
	default:
		return "", errors.UnsupportedFormat(format)
	}

	name := e.artifactName(title, ext)
	if err := e.store.Upload(ctx, name, bytes.NewReader(data)); err != nil {
		return "", errors.Persistence("export artifact", err)
	}

	e.log.Info("transcript exported", logger.Fields(
		logger.FieldFile, name,
		"format", ext,
	))
	return name, nil
}

// normalizeFormat folds case and the long-form aliases.
func normalizeFormat(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatTXT, "text":
		return FormatTXT
	case FormatDOCX, "document":
		return FormatDOCX
	default:
		return ""
	}
}

// artifactName builds a store path from the sanitized title and a
// timestamp. Untitled exports fall back to "transcript".
func (e *Exporter) artifactName(title, ext string) string {
	base := util.SanitizeFilename(title)
	if base == "" {
		base = "transcript"
	}
	return fmt.Sprintf("%s_%d.%s", base, e.now().UnixMilli(), ext)
}
