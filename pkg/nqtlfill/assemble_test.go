package nqtlfill

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/catalog"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/injector"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/parser"
)

const submittedPA = "Number (#) of Claims Submitted for Prior Authorization"

func newWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	sheet := "Sheet1"
	cells := map[string]any{
		"A1": "Claims submitted for prior auth",
		"B2": "M/S", "C2": "MH", "D2": "SUD",
		"A3": "Inpatient IN", "B3": 120, "C3": 45, "D3": 12,
		"A4": "Inpatient OON", "B4": 7, "C4": "nan", "D4": 1,
	}
	for axis, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, axis, v))
	}
	return f
}

func workbookBytes(t *testing.T, f *excelize.File) []byte {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func templateBytes(t *testing.T, rows ...[]string) []byte {
	t.Helper()
	table := &models.Table{}
	for _, r := range rows {
		table.Rows = append(table.Rows, models.NewRow(r...))
	}
	var buf bytes.Buffer
	require.NoError(t, parser.BuildDocx(&buf, &models.Document{Tables: []*models.Table{table}}))
	return buf.Bytes()
}

func priorAuthTemplate(t *testing.T) []byte {
	return templateBytes(t,
		[]string{"Submitted for Prior Authorization", "", "", "", ""},
		[]string{"Inpatient IN", "", "", "", ""},
		[]string{"Inpatient OON", "", "", "", ""},
	)
}

func readTables(t *testing.T, data []byte) []*models.Table {
	t.Helper()
	d, err := parser.OpenDocx(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return d.Document().Tables
}

func TestAssemble(t *testing.T) {
	tmpl := priorAuthTemplate(t)
	var out bytes.Buffer

	outcome, err := Assemble(bytes.NewReader(workbookBytes(t, newWorkbook(t))),
		bytes.NewReader(tmpl), int64(len(tmpl)), &out, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.RowsUpdated)
	assert.Empty(t, outcome.Warnings)
	assert.Equal(t, []string{"7", "", "1"}, outcome.Report.Metrics[submittedPA]["Inpatient OON"])
	assert.Equal(t, 2, outcome.Report.RowsUpdated)
	assert.Equal(t, []models.SheetSummary{{Sheet: "Sheet1", Range: "A1:D4", Cells: 11}}, outcome.Report.Sheets)

	tables := readTables(t, out.Bytes())
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Inpatient IN", "120", "45", "12", ""}, tables[0].Rows[1].Texts())
	assert.Equal(t, []string{"Inpatient OON", "7", "", "1", ""}, tables[0].Rows[2].Texts())
}

func TestAssembleReportsSkippedRows(t *testing.T) {
	tmpl := templateBytes(t,
		[]string{"Submitted for Prior Authorization", "", "", ""},
		[]string{},
		[]string{"Inpatient IN", "", "", ""},
	)
	var out bytes.Buffer

	outcome, err := Assemble(bytes.NewReader(workbookBytes(t, newWorkbook(t))),
		bytes.NewReader(tmpl), int64(len(tmpl)), &out, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.RowsUpdated)
	require.Len(t, outcome.Skipped, 1)
	assert.Equal(t, 1, outcome.Skipped[0].Table)
	assert.Equal(t, 2, outcome.Skipped[0].Row)
	assert.ErrorIs(t, outcome.Skipped[0], injector.ErrShortRow)
	assert.Equal(t, []string{outcome.Skipped[0].Error()}, outcome.Report.SkippedRows)
	assert.Empty(t, outcome.Warnings)
}

func TestAssembleZeroUpdatesIsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	tmpl := templateBytes(t, []string{"Network adequacy", ""}, []string{"Inpatient IN", ""})
	var out bytes.Buffer
	outcome, err := Assemble(bytes.NewReader(workbookBytes(t, newWorkbook(t))),
		bytes.NewReader(tmpl), int64(len(tmpl)), &out, opts)
	require.NoError(t, err)

	assert.Zero(t, outcome.RowsUpdated)
	require.Len(t, outcome.Warnings, 1)
	assert.ErrorIs(t, outcome.Warnings[0], ErrZeroUpdates)
	assert.Equal(t, []string{ErrZeroUpdates.Error()}, outcome.Report.Warnings)
	assert.Equal(t, 1, logs.FilterMessage("document unchanged").Len())

	assert.Equal(t, tmpl, out.Bytes(), "unchanged template renders identically")
}

func TestAssembleUnreadableWorkbook(t *testing.T) {
	tmpl := priorAuthTemplate(t)
	var out bytes.Buffer

	outcome, err := Assemble(bytes.NewReader([]byte("not a workbook")),
		bytes.NewReader(tmpl), int64(len(tmpl)), &out, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, outcome.Warnings, 2)
	var readErr *SourceReadError
	require.True(t, errors.As(outcome.Warnings[0], &readErr))
	assert.Empty(t, readErr.Sheet)
	assert.ErrorIs(t, outcome.Warnings[0], ErrInvalidFormat)
	assert.ErrorIs(t, outcome.Warnings[1], ErrZeroUpdates)
	assert.Empty(t, outcome.Result)
}

func TestAssembleInvalidTemplate(t *testing.T) {
	bad := []byte("not a document")
	var out bytes.Buffer

	_, err := Assemble(bytes.NewReader(workbookBytes(t, newWorkbook(t))),
		bytes.NewReader(bad), int64(len(bad)), &out, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestAssembleFiles(t *testing.T) {
	dir := t.TempDir()
	wbPath := filepath.Join(dir, "figures.xlsx")
	tmplPath := filepath.Join(dir, "template.docx")
	outPath := filepath.Join(dir, "out", "filled.docx")

	require.NoError(t, newWorkbook(t).SaveAs(wbPath))
	require.NoError(t, os.WriteFile(tmplPath, priorAuthTemplate(t), 0644))

	outcome, err := AssembleFiles(wbPath, tmplPath, outPath, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.RowsUpdated)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	tables := readTables(t, data)
	assert.Equal(t, "120", tables[0].Rows[1].Cells[1].Text())
}

func TestAssembleFilesMissingInput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "filled.docx")

	_, err := AssembleFiles(filepath.Join(dir, "missing.xlsx"), filepath.Join(dir, "t.docx"), outPath, DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output on failure")
}

func TestAssembleIntoSkeleton(t *testing.T) {
	var tmpl bytes.Buffer
	require.NoError(t, WriteSkeleton(&tmpl, DefaultOptions()))
	var out bytes.Buffer

	outcome, err := Assemble(bytes.NewReader(workbookBytes(t, newWorkbook(t))),
		bytes.NewReader(tmpl.Bytes()), int64(tmpl.Len()), &out, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.RowsUpdated)

	var filled [][]string
	for _, table := range readTables(t, out.Bytes()) {
		for i, row := range table.Rows {
			if row.Cells[0].Text() == submittedPA {
				filled = append(filled, table.Rows[i+1].Texts(), table.Rows[i+2].Texts())
			}
		}
	}
	assert.Equal(t, [][]string{
		{"Inpatient IN", "120", "45", "12"},
		{"Inpatient OON", "7", "", "1"},
	}, filled)
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures.xlsx")
	require.NoError(t, newWorkbook(t).SaveAs(path))

	result, err := Extract(path, DefaultOptions())
	require.NoError(t, err)
	values, ok := result.Get(submittedPA, models.LabelInpatientIN)
	require.True(t, ok)
	assert.Equal(t, models.ValueTuple{"120", "45", "12"}, values)
}

func TestExtractMissingFile(t *testing.T) {
	result, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestExtractExtraMetrics(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Network providers accepting new patients"))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Outpatient IN", "10", "20", "30"}))

	opts := DefaultOptions()
	opts.ExtraMetrics = []catalog.Entry[string]{{
		ID:        "Number (#) of Network Providers",
		Names:     []string{"Number (#) of Network Providers"},
		Fragments: []string{"network providers"},
	}}

	result, err := ExtractReader(bytes.NewReader(workbookBytes(t, f)), "extra.xlsx", opts)
	require.NoError(t, err)
	values, ok := result.Get("Number (#) of Network Providers", models.LabelOutpatientIN)
	require.True(t, ok)
	assert.Equal(t, models.ValueTuple{"10", "20", "30"}, values)
}

func TestReadWorkbook(t *testing.T) {
	f := newWorkbook(t)
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	wb, err := ReadWorkbook(bytes.NewReader(workbookBytes(t, f)), "book.xlsx", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", wb.BookName)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "Sheet1", wb.Sheets[0].Sheet)
	assert.Equal(t, 0, wb.Sheets[1].Rows())
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.ShouldStopAtNextAnchor())
	assert.True(t, opts.ShouldMergeAware())

	off := false
	opts.StopAtNextAnchor = &off
	opts.MergeAware = &off
	assert.False(t, opts.ShouldStopAtNextAnchor())
	assert.False(t, opts.ShouldMergeAware())

	assert.Equal(t, catalog.DefaultMetrics().Len(), opts.Metrics().Len())
	opts.ExtraMetrics = []catalog.Entry[string]{{ID: "x", Names: []string{"Extra metric"}}}
	assert.Equal(t, catalog.DefaultMetrics().Len()+1, opts.Metrics().Len())
}

func TestSourceReadError(t *testing.T) {
	inner := errors.New("boom")
	assert.Equal(t, `cannot read sheet "S": boom`, NewSourceReadError("S", inner).Error())
	assert.Equal(t, "cannot read workbook: boom", NewSourceReadError("", inner).Error())
	assert.ErrorIs(t, NewSourceReadError("S", inner), inner)
}

func TestSkeleton(t *testing.T) {
	doc := Skeleton(DefaultOptions())
	require.Len(t, doc.Tables, 5)

	first := doc.Tables[0]
	assert.Equal(t, []string{"Number (#) of Total Claims Incurred During the Plan Year",
		"Medical/Surgical", "Mental Health", "Substance Use Disorder"}, first.Rows[0].Texts())
	assert.Equal(t, []string{"Inpatient IN", "", "", ""}, first.Rows[1].Texts())
	assert.Len(t, first.Rows, 3*5)

	opts := DefaultOptions()
	opts.ValueWidth = 4
	assert.Len(t, Skeleton(opts).Tables[0].Rows[0].Cells, 5)
}
