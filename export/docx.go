package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// The three members of a minimal OOXML word processing package. Word and
// LibreOffice both open a package containing just these.
const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `</w:body></w:document>`

// renderDOCX packages text as an OOXML document, one paragraph per line.
func renderDOCX(text string) ([]byte, error) {
	var doc strings.Builder
	doc.WriteString(documentHeader)
	for _, line := range strings.Split(text, "\n") {
		doc.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		if err := xml.EscapeText(&doc, []byte(line)); err != nil {
			return nil, fmt.Errorf("export: escape paragraph: %w", err)
		}
		doc.WriteString(`</w:t></w:r></w:p>`)
	}
	doc.WriteString(documentFooter)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	members := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", doc.String()},
	}
	for _, m := range members {
		w, err := zw.Create(m.name)
		if err != nil {
			return nil, fmt.Errorf("export: create zip member %s: %w", m.name, err)
		}
		if _, err := w.Write([]byte(m.body)); err != nil {
			return nil, fmt.Errorf("export: write zip member %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: finalize package: %w", err)
	}
	return buf.Bytes(), nil
}
