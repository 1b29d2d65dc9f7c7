package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

// cellSpan locates one table cell inside the document part.
type cellSpan struct {
	// prefix is the namespace prefix the cell element was written with.
	prefix string
	// keepEnd is the offset up to which the original cell markup is kept:
	// the end of the tcPr element, or the end of the tc start tag.
	keepEnd int64
	// end is the offset of the tc end tag.
	end int64
	// pPr and rPr are the raw properties of the first paragraph and its
	// first run, reused when the cell is rewritten.
	pPr []byte
	rPr []byte
	// writable is false for self-closing cells.
	writable bool
}

// content renders replacement cell content holding text.
func (s cellSpan) content(text string) []byte {
	p := s.prefix
	if p != "" {
		p += ":"
	}

	var b bytes.Buffer
	b.WriteString("<" + p + "p>")
	b.Write(s.pPr)
	b.WriteString("<" + p + "r>")
	b.Write(s.rPr)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("<" + p + "br/>")
		}
		b.WriteString("<" + p + `t xml:space="preserve">`)
		_ = xml.EscapeText(&b, []byte(line))
		b.WriteString("</" + p + "t>")
	}
	b.WriteString("</" + p + "r></" + p + "p>")
	return b.Bytes()
}

// cellState accumulates one cell while walking.
type cellState struct {
	span       cellSpan
	depth      int
	text       strings.Builder
	paragraphs int
	firstPara  bool
	firstRun   bool
	runDone    bool
	pPrStart   int64
	rPrStart   int64
}

// tableWalker collects the body-level tables of a document part.
type tableWalker struct {
	data     []byte
	stack    []string
	tblDepth int

	doc   *models.Document
	spans [][][]cellSpan

	table    *models.Table
	rows     [][]cellSpan
	row      *models.Row
	rowSpans []cellSpan
	cell     *cellState
}

// parseDocumentTables walks a WordprocessingML part and returns its outermost
// tables with the byte spans of every cell. Nested tables contribute neither
// rows nor text.
func parseDocumentTables(data []byte) (*models.Document, [][][]cellSpan, error) {
	w := &tableWalker{data: data, doc: &models.Document{}}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		start := decoder.InputOffset()
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		end := decoder.InputOffset()

		switch t := token.(type) {
		case xml.StartElement:
			w.stack = append(w.stack, t.Name.Local)
			selfClosing := bytes.HasSuffix(data[start:end], []byte("/>"))
			w.startElement(t, start, end, selfClosing)
		case xml.EndElement:
			if len(w.stack) == 0 {
				continue
			}
			w.endElement(t, start, end)
			w.stack = w.stack[:len(w.stack)-1]
		case xml.CharData:
			w.charData(t)
		}
	}

	return w.doc, w.spans, nil
}

// parent returns the local name of the element enclosing the current one.
func (w *tableWalker) parent() string {
	if len(w.stack) < 2 {
		return ""
	}
	return w.stack[len(w.stack)-2]
}

// inCell reports whether the walker is inside an outermost-table cell.
func (w *tableWalker) inCell() bool {
	return w.cell != nil && w.tblDepth == 1
}

// directChildOfCell reports whether the current element is a child of tc.
func (w *tableWalker) directChildOfCell() bool {
	return w.inCell() && len(w.stack) == w.cell.depth+1
}

func (w *tableWalker) startElement(t xml.StartElement, start, end int64, selfClosing bool) {
	switch t.Name.Local {
	case "tbl":
		w.tblDepth++
		if w.tblDepth == 1 {
			w.table = &models.Table{}
			w.rows = nil
		}
		return
	case "tr":
		if w.tblDepth == 1 && w.table != nil {
			w.row = &models.Row{}
			w.rowSpans = nil
		}
		return
	case "tc":
		if w.tblDepth == 1 && w.row != nil {
			w.cell = &cellState{
				depth: len(w.stack),
				span: cellSpan{
					prefix:   t.Name.Space,
					keepEnd:  end,
					writable: !selfClosing,
				},
			}
		}
		return
	}

	if !w.inCell() {
		return
	}
	c := w.cell

	switch t.Name.Local {
	case "p":
		if w.directChildOfCell() {
			c.paragraphs++
			if c.paragraphs > 1 {
				c.text.WriteByte('\n')
			}
			c.firstPara = c.paragraphs == 1
		}
	case "pPr":
		if c.firstPara && w.parent() == "p" {
			c.pPrStart = start
		}
	case "r":
		if c.firstPara && !c.runDone && w.parent() == "p" {
			c.firstRun = true
		}
	case "rPr":
		if c.firstRun && w.parent() == "r" {
			c.rPrStart = start
		}
	case "tab":
		if w.parent() == "r" {
			c.text.WriteByte('\t')
		}
	case "br", "cr":
		if w.parent() == "r" {
			c.text.WriteByte('\n')
		}
	}
}

func (w *tableWalker) endElement(t xml.EndElement, start, end int64) {
	switch t.Name.Local {
	case "tbl":
		if w.tblDepth == 1 && w.table != nil {
			w.doc.Tables = append(w.doc.Tables, w.table)
			w.spans = append(w.spans, w.rows)
			w.table = nil
		}
		w.tblDepth--
		return
	case "tr":
		if w.tblDepth == 1 && w.row != nil && w.table != nil {
			w.table.Rows = append(w.table.Rows, w.row)
			w.rows = append(w.rows, w.rowSpans)
			w.row = nil
		}
		return
	case "tc":
		if w.inCell() && len(w.stack) == w.cell.depth {
			w.cell.span.end = start
			w.row.Cells = append(w.row.Cells, models.NewCell(w.cell.text.String()))
			w.rowSpans = append(w.rowSpans, w.cell.span)
			w.cell = nil
		}
		return
	}

	if !w.inCell() {
		return
	}
	c := w.cell

	switch t.Name.Local {
	case "tcPr":
		if w.directChildOfCell() {
			c.span.keepEnd = end
		}
	case "p":
		if w.directChildOfCell() {
			c.firstPara = false
		}
	case "pPr":
		if c.firstPara && w.parent() == "p" && c.span.pPr == nil {
			c.span.pPr = append([]byte(nil), w.data[c.pPrStart:end]...)
		}
	case "rPr":
		if c.firstRun && w.parent() == "r" && c.span.rPr == nil {
			c.span.rPr = append([]byte(nil), w.data[c.rPrStart:end]...)
		}
	case "r":
		if c.firstRun && w.parent() == "p" {
			c.firstRun = false
			c.runDone = true
		}
	}
}

func (w *tableWalker) charData(t xml.CharData) {
	if !w.inCell() || len(w.stack) == 0 || w.stack[len(w.stack)-1] != "t" {
		return
	}
	w.cell.text.Write(t)
}

// renderPart splices the text of changed cells into the document part.
func (d *Docx) renderPart() []byte {
	var out bytes.Buffer
	out.Grow(len(d.part))

	var pos int64
	for ti, table := range d.doc.Tables {
		if ti >= len(d.spans) {
			break
		}
		for ri, row := range table.Rows {
			if ri >= len(d.spans[ti]) {
				break
			}
			for ci, cell := range row.Cells {
				if ci >= len(d.spans[ti][ri]) {
					break
				}
				span := d.spans[ti][ri][ci]
				if !cell.Changed() || !span.writable || span.keepEnd < pos {
					continue
				}
				out.Write(d.part[pos:span.keepEnd])
				out.Write(span.content(cell.Text()))
				pos = span.end
			}
		}
	}
	out.Write(d.part[pos:])

	return out.Bytes()
}
