// Package parser reads workbook grids with excelize and edits the tables of
// word-processing documents by walking their OOXML parts directly.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

	// defaultDocumentPart is used when the package relationships do not name
	// the main document part.
	defaultDocumentPart = "word/document.xml"
)

// Docx is an opened word-processing package. Its body tables are exposed as
// a models.Document; Render writes the package back with changed cells
// rewritten and every other part copied verbatim.
type Docx struct {
	files    []*zip.File
	partName string
	part     []byte
	doc      *models.Document
	spans    [][][]cellSpan
}

// OpenDocx reads a .docx package.
func OpenDocx(r io.ReaderAt, size int64) (*Docx, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	partName := findMainDocumentPart(zr)
	part, err := readZipFile(zr, partName)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("missing document part %s", partName)
	}

	doc, spans, err := parseDocumentTables(part)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", partName, err)
	}

	return &Docx{
		files:    zr.File,
		partName: partName,
		part:     part,
		doc:      doc,
		spans:    spans,
	}, nil
}

// Document returns the editable table view.
func (d *Docx) Document() *models.Document {
	return d.doc
}

// Render writes the package with the current cell texts to w.
func (d *Docx) Render(w io.Writer) error {
	part := d.renderPart()

	zw := zip.NewWriter(w)
	for _, f := range d.files {
		if f.Name != d.partName {
			if err := zw.Copy(f); err != nil {
				return err
			}
			continue
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: f.Modified,
		})
		if err != nil {
			return err
		}
		if _, err := fw.Write(part); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Bytes renders the package into memory.
func (d *Docx) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findMainDocumentPart resolves the officeDocument relationship of the package.
func findMainDocumentPart(r *zip.Reader) string {
	relsXML, err := readZipFile(r, "_rels/.rels")
	if err != nil || relsXML == nil {
		return defaultDocumentPart
	}

	decoder := xml.NewDecoder(bytes.NewReader(relsXML))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var relType, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Type":
					relType = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if relType == relTypeOfficeDocument && target != "" {
				return strings.TrimPrefix(path.Clean("/"+target), "/")
			}
		}
	}

	return defaultDocumentPart
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}
