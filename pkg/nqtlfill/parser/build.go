package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"time"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="` + relTypeOfficeDocument + `" Target="word/document.xml"/>` +
	`</Relationships>`

// BuildDocx writes a minimal .docx package whose body holds the tables of
// doc, one paragraph-separated table after another.
func BuildDocx(w io.Writer, doc *models.Document) error {
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for i, table := range doc.Tables {
		if i > 0 {
			body.WriteString(`<w:p/>`)
		}
		writeTable(&body, table)
	}
	body.WriteString(`<w:sectPr/></w:body></w:document>`)

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{defaultDocumentPart, body.Bytes()},
	}
	modified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return err
		}
		if _, err := fw.Write(p.data); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writeTable(b *bytes.Buffer, table *models.Table) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/></w:tblPr>`)
	for _, row := range table.Rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row.Cells {
			b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr><w:p>`)
			if text := cell.Text(); text != "" {
				b.WriteString(`<w:r><w:t xml:space="preserve">`)
				_ = xml.EscapeText(b, []byte(text))
				b.WriteString(`</w:t></w:r>`)
			}
			b.WriteString(`</w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
}
