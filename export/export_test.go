package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/storage/local"
)

func newExporter(t *testing.T) (*Exporter, *local.Storage) {
	t.Helper()
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	e := NewExporter(store)
	e.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return e, store
}

func readArtifact(t *testing.T, store *local.Storage, name string) []byte {
	t.Helper()
	rd, err := store.Download(context.Background(), name)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	defer rd.Close()
	data, err := io.ReadAll(rd)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	return data
}

func TestExportTXTRoundTrip(t *testing.T) {
	e, store := newExporter(t)
	text := "Good morning.\nPlease be seated.\n\nRésumé of témoignage — § 12"

	name, err := e.Export(context.Background(), "txt", text, "Hearing 42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Hearing_42_1700000000000.txt" {
		t.Errorf("unexpected artifact name: %q", name)
	}
	if got := readArtifact(t, store, name); string(got) != text {
		t.Errorf("txt export must be byte-identical:\n%q\n%q", text, got)
	}
}

func TestExportDOCXStructure(t *testing.T) {
	e, store := newExporter(t)

	name, err := e.Export(context.Background(), "docx", "line one\nsecond & <third>", "minutes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data := readArtifact(t, store, name)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("docx is not a zip: %v", err)
	}
	members := map[string]bool{}
	for _, f := range zr.File {
		members[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !members[want] {
			t.Errorf("package missing %s", want)
		}
	}

	f, err := zr.Open("word/document.xml")
	if err != nil {
		t.Fatalf("open document.xml: %v", err)
	}
	defer f.Close()
	doc, _ := io.ReadAll(f)
	if n := strings.Count(string(doc), "<w:p>"); n != 2 {
		t.Errorf("expected 2 paragraphs, got %d", n)
	}
	if !strings.Contains(string(doc), "second &amp; &lt;third&gt;") {
		t.Errorf("markup not escaped: %s", doc)
	}
}

func TestExportAliases(t *testing.T) {
	e, _ := newExporter(t)

	for alias, ext := range map[string]string{"text": ".txt", "Document": ".docx", "TXT": ".txt"} {
		name, err := e.Export(context.Background(), alias, "x", "t")
		if err != nil {
			t.Fatalf("alias %q: unexpected error: %v", alias, err)
		}
		if !strings.HasSuffix(name, ext) {
			t.Errorf("alias %q produced %q, want suffix %q", alias, name, ext)
		}
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	e, store := newExporter(t)

	_, err := e.Export(context.Background(), "pdf", "x", "t")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeUnsupportedFormat {
		t.Fatalf("expected unsupported format error, got %v", err)
	}

	// Nothing may be written on rejection.
	if exists, _ := store.Exists(context.Background(), "t_1700000000000.pdf"); exists {
		t.Error("artifact written despite rejected format")
	}
}

func TestExportTitleFallback(t *testing.T) {
	e, _ := newExporter(t)

	name, err := e.Export(context.Background(), "txt", "x", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(name, "transcript_") {
		t.Errorf("empty title should fall back to transcript, got %q", name)
	}
}
