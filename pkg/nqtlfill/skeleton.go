package nqtlfill

import (
	"io"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/parser"
)

// classifications heads the value columns of a skeleton table.
var classifications = []string{"Medical/Surgical", "Mental Health", "Substance Use Disorder", "Other"}

// Skeleton returns a blank document laid out for the default placement:
// one table per metric group, a header row per metric followed by one row
// per label with ValueWidth empty cells.
func Skeleton(opts Options) *models.Document {
	width := opts.ValueWidth
	if width <= 0 {
		width = DefaultOptions().ValueWidth
	}

	doc := &models.Document{}
	var current *models.Table
	group := ""
	for _, e := range opts.Metrics().Entries() {
		if current == nil || e.Group != group {
			current = &models.Table{}
			doc.Tables = append(doc.Tables, current)
			group = e.Group
		}

		header := []string{e.ID}
		for i := 0; i < width; i++ {
			if i < len(classifications) {
				header = append(header, classifications[i])
			} else {
				header = append(header, "")
			}
		}
		current.Rows = append(current.Rows, models.NewRow(header...))

		for _, label := range models.Labels() {
			row := make([]string, width+1)
			row[0] = label.String()
			current.Rows = append(current.Rows, models.NewRow(row...))
		}
	}
	return doc
}

// WriteSkeleton writes Skeleton(opts) to w as a .docx package.
func WriteSkeleton(w io.Writer, opts Options) error {
	return parser.BuildDocx(w, Skeleton(opts))
}
