package nqtlfill

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/extractor"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/parser"
)

// Extract extracts the figures of the workbook at path.
//
// Reading is fail-soft: the result holds whatever the readable sheets
// yielded and is never nil. The error, when not nil, joins one
// *SourceReadError per unreadable sheet (or one for the whole workbook).
func Extract(path string, opts Options) (models.ExtractionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.NewExtractionResult(), fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.NewExtractionResult(), err
	}
	defer f.Close()

	return ExtractReader(f, filepath.Base(path), opts)
}

// ExtractReader is Extract for an open workbook stream.
func ExtractReader(r io.Reader, bookName string, opts Options) (models.ExtractionResult, error) {
	wb, err := ReadWorkbook(r, bookName, opts)
	return extractWorkbook(wb, opts, opts.Metrics()), err
}

func extractWorkbook(wb *models.Workbook, opts Options, metrics *catalog.Catalog[string]) models.ExtractionResult {
	result := extractor.New(opts.extractorConfig(metrics)).Extract(wb.Sheets...)
	opts.logger().Info("workbook extracted",
		zap.String("book", wb.BookName),
		zap.Int("sheets", len(wb.Sheets)),
		zap.Int("metrics", len(result)),
		zap.Int("pairs", result.Len()))
	return result
}

// ReadWorkbook reads every sheet of a workbook into a grid. Unreadable
// sheets are left out and reported through the joined error; the returned
// workbook is never nil.
func ReadWorkbook(r io.Reader, bookName string, opts Options) (*models.Workbook, error) {
	log := opts.logger()
	wb := &models.Workbook{BookName: bookName}

	f, err := excelize.OpenReader(r)
	if err != nil {
		log.Warn("workbook unreadable", zap.String("book", bookName), zap.Error(err))
		return wb, NewSourceReadError("", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	defer f.Close()

	var errs []error
	for _, sheetName := range f.GetSheetList() {
		grid, err := parser.ExtractGrid(f, sheetName, opts.ShouldMergeAware())
		if err != nil {
			// Log warning and continue with the remaining sheets
			log.Warn("sheet unreadable", zap.String("sheet", sheetName), zap.Error(err))
			errs = append(errs, NewSourceReadError(sheetName, err))
			continue
		}

		sum := parser.Summarize(grid)
		log.Debug("sheet read",
			zap.String("sheet", sheetName),
			zap.String("range", sum.Range),
			zap.Int("cells", sum.Cells),
			zap.Int("merges", sum.Merges))
		wb.Sheets = append(wb.Sheets, grid)
	}

	return wb, errors.Join(errs...)
}
