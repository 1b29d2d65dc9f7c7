package nqtlfill

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/injector"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/parser"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/report"
)

// DocumentContentType is the media type of the filled document.
const DocumentContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Outcome summarises one assembly run.
type Outcome struct {
	// Result is what the workbook yielded.
	Result models.ExtractionResult
	// RowsUpdated is the number of document rows that received a value.
	RowsUpdated int
	// Warnings holds non-fatal problems: source read errors and
	// ErrZeroUpdates.
	Warnings []error
	// Skipped lists the document rows too short for the configured layout.
	Skipped []*RowError
	// Report is the diagnostics view of the run.
	Report models.Report
}

// Assemble extracts the workbook, fills the template's tables and writes the
// filled document to out.
//
// An unreadable workbook or sheet is a warning. A template that cannot be
// opened or a document that cannot be written is an error, in which case
// nothing useful has been written to out.
func Assemble(workbook io.Reader, template io.ReaderAt, size int64, out io.Writer, opts Options) (*Outcome, error) {
	log := opts.logger()
	metrics := opts.Metrics()

	wb, err := ReadWorkbook(workbook, "", opts)
	warnings := splitErrors(err)
	result := extractWorkbook(wb, opts, metrics)

	doc, err := parser.OpenDocx(template, size)
	if err != nil {
		return nil, fmt.Errorf("open template: %w: %w", ErrInvalidFormat, err)
	}

	var skipped []*RowError
	cfg := opts.injectorConfig(metrics)
	cfg.OnSkip = func(e *RowError) { skipped = append(skipped, e) }
	rows := injector.New(cfg).Inject(doc.Document(), result)
	if len(skipped) > 0 {
		log.Info("rows skipped", zap.Int("count", len(skipped)))
	}
	if rows == 0 {
		log.Warn("document unchanged", zap.Error(ErrZeroUpdates))
		warnings = append(warnings, ErrZeroUpdates)
	} else {
		log.Info("document filled", zap.Int("rows_updated", rows))
	}

	if err := doc.Render(out); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	rep := report.Build(result, rows, warnings)
	for _, e := range skipped {
		rep.SkippedRows = append(rep.SkippedRows, e.Error())
	}
	for _, grid := range wb.Sheets {
		rep.Sheets = append(rep.Sheets, parser.Summarize(grid))
	}

	return &Outcome{
		Result:      result,
		RowsUpdated: rows,
		Warnings:    warnings,
		Skipped:     skipped,
		Report:      rep,
	}, nil
}

// AssembleFiles runs Assemble on files. The output file is only written when
// the run succeeds.
func AssembleFiles(workbookPath, templatePath, outputPath string, opts Options) (*Outcome, error) {
	wbFile, err := openInput(workbookPath)
	if err != nil {
		return nil, err
	}
	defer wbFile.Close()

	tmplFile, err := openInput(templatePath)
	if err != nil {
		return nil, err
	}
	defer tmplFile.Close()

	info, err := tmplFile.Stat()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	outcome, err := Assemble(wbFile, tmplFile, info.Size(), &buf, opts)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return outcome, nil
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return f, err
}
