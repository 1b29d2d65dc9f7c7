package injector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

const (
	submittedPA  = "Number (#) of Claims Submitted for Prior Authorization"
	deniedPA     = "Percentage (%) of Prior Authorization Claims Denied Due to Non-Administrative Reasons"
	overturnedPA = "Percentage (%) of Prior Authorization Claims Denied Due to Non-Administrative Reasons Overturned on Appeal"
)

func priorAuthResult() models.ExtractionResult {
	result := models.NewExtractionResult()
	result.Set(submittedPA, models.LabelInpatientIN, models.ValueTuple{"120", "45", "12"})
	result.Set(submittedPA, models.LabelInpatientOON, models.ValueTuple{"7", "", "1"})
	return result
}

func table(rows ...[]string) *models.Table {
	t := &models.Table{}
	for _, r := range rows {
		t.Rows = append(t.Rows, models.NewRow(r...))
	}
	return t
}

func TestInjectPriorAuthorization(t *testing.T) {
	tbl := table(
		[]string{"Submitted for Prior Authorization", "", "", "", ""},
		[]string{"Inpatient IN", "", "", "", ""},
		[]string{"Inpatient OON", "", "keep", "", ""},
	)
	doc := &models.Document{Tables: []*models.Table{tbl}}

	n := New(Config{}).Inject(doc, priorAuthResult())

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Submitted for Prior Authorization", "", "", "", ""}, tbl.Rows[0].Texts())
	assert.Equal(t, []string{"Inpatient IN", "120", "45", "12", ""}, tbl.Rows[1].Texts())
	assert.Equal(t, []string{"Inpatient OON", "7", "keep", "1", ""}, tbl.Rows[2].Texts(), "empty value leaves the cell alone")
	assert.False(t, tbl.Rows[0].Cells[1].Changed())
}

func TestInjectEmptyResultChangesNothing(t *testing.T) {
	tbl := table(
		[]string{"Submitted for Prior Authorization", ""},
		[]string{"Inpatient IN", "old"},
	)
	doc := &models.Document{Tables: []*models.Table{tbl}}

	assert.Zero(t, New(Config{}).Inject(doc, models.NewExtractionResult()))
	assert.Equal(t, "old", tbl.Rows[1].Cells[1].Text())
	assert.False(t, tbl.Rows[1].Cells[1].Changed())
}

func TestInjectIsIdempotent(t *testing.T) {
	build := func() *models.Document {
		return &models.Document{Tables: []*models.Table{table(
			[]string{"Submitted for Prior Authorization", "", "", ""},
			[]string{"Inpatient IN", "", "", ""},
		)}}
	}
	in := New(Config{})
	doc := build()
	first := in.Inject(doc, priorAuthResult())
	once := doc.Tables[0].Rows[1].Texts()
	second := in.Inject(doc, priorAuthResult())

	assert.Equal(t, first, second)
	assert.Equal(t, once, doc.Tables[0].Rows[1].Texts())
}

func TestInjectShortRows(t *testing.T) {
	tbl := table(
		[]string{"Submitted for Prior Authorization"},
		[]string{"Inpatient IN", ""},
		[]string{},
		[]string{"Inpatient OON", "", "", "", "", ""},
	)
	tbl.Rows = append(tbl.Rows, nil)
	doc := &models.Document{Tables: []*models.Table{tbl}}

	n := New(Config{}).Inject(doc, priorAuthResult())

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Inpatient IN", "120"}, tbl.Rows[1].Texts(), "values past the row end are dropped")
	assert.Equal(t, []string{"Inpatient OON", "7", "", "1", "", ""}, tbl.Rows[3].Texts())
}

func TestStepReportsShortRow(t *testing.T) {
	in := New(Config{HeaderColumn: 1})
	state := Active(submittedPA)

	next, written, err := in.Step(state, models.NewRow("only"), priorAuthResult())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShortRow))
	assert.Zero(t, written)
	assert.Equal(t, state, next)
}

func TestStepTransitions(t *testing.T) {
	in := New(Config{})
	result := priorAuthResult()

	state, _, err := in.Step(NoActiveMetric(), models.NewRow("Inpatient IN", ""), result)
	require.NoError(t, err)
	assert.Equal(t, NoActiveMetric(), state, "labels without a header do nothing")

	state, written, err := in.Step(state, models.NewRow("Claims\nsubmitted for prior auth", ""), result)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Equal(t, Active(submittedPA), state)

	state, written, err = in.Step(state, models.NewRow("Inpatient IN", "", "", ""), result)
	require.NoError(t, err)
	assert.Equal(t, 3, written)
	assert.Equal(t, Active(submittedPA), state)

	state, _, err = in.Step(state, models.NewRow("", "note"), result)
	require.NoError(t, err)
	assert.Equal(t, NoActiveMetric(), state, "blank header closes the metric")
}

func TestInjectResetPolicies(t *testing.T) {
	build := func() *models.Table {
		return table(
			[]string{"Submitted for Prior Authorization", "", "", ""},
			[]string{"Inpatient IN", "", "", ""},
			[]string{"", "", "", ""},
			[]string{"Inpatient OON", "", "", ""},
		)
	}
	cases := []struct {
		name    string
		reset   ResetPolicy
		wantOON []string
	}{
		{"blank header", ResetBlankHeader, []string{"Inpatient OON", "", "", ""}},
		{"blank row", ResetBlankRow, []string{"Inpatient OON", "", "", ""}},
		{"never", ResetNever, []string{"Inpatient OON", "7", "", "1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tbl := build()
			New(Config{Reset: tc.reset}).InjectTable(tbl, priorAuthResult())
			assert.Equal(t, []string{"Inpatient IN", "120", "45", "12"}, tbl.Rows[1].Texts())
			assert.Equal(t, tc.wantOON, tbl.Rows[3].Texts())
		})
	}
}

func TestInjectAdjacentPlacement(t *testing.T) {
	build := func() *models.Table {
		return table(
			[]string{"Submitted for Prior Authorization", "", "", "", ""},
			[]string{"", "Inpatient IN", "", "", ""},
			[]string{"", "Inpatient OON", "", "", ""},
		)
	}

	tbl := build()
	n := New(Config{Placement: PlacementAdjacent}).InjectTable(tbl, priorAuthResult())
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"", "Inpatient IN", "120", "45", "12"}, tbl.Rows[1].Texts())
	assert.Equal(t, []string{"", "Inpatient OON", "7", "", "1"}, tbl.Rows[2].Texts())

	// Blank header cells are the norm here, so blank-header reset stops after
	// the first label row.
	tbl = build()
	n = New(Config{Placement: PlacementAdjacent, Reset: ResetBlankHeader}).InjectTable(tbl, priorAuthResult())
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"", "Inpatient OON", "", "", ""}, tbl.Rows[2].Texts())
}

func TestInjectFixedPlacement(t *testing.T) {
	tbl := table(
		[]string{"Submitted for Prior Authorization", "", "", "", "", ""},
		[]string{"Claims", "x", "Inpatient IN", "", "", ""},
	)
	n := New(Config{Placement: PlacementFixed, LabelColumn: 2}).InjectTable(tbl, priorAuthResult())
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Claims", "x", "Inpatient IN", "120", "45", "12"}, tbl.Rows[1].Texts())
}

func TestInjectHeaderWithoutDataClosesMetric(t *testing.T) {
	result := priorAuthResult()
	result.Set(deniedPA, models.LabelInpatientIN, models.ValueTuple{"10%", "", ""})
	tbl := table(
		[]string{"Submitted for Prior Authorization", "", "", ""},
		[]string{"Inpatient IN", "", "", ""},
		[]string{overturnedPA, "", "", ""},
		[]string{"Inpatient IN", "", "", ""},
	)

	n := New(Config{Reset: ResetNever}).InjectTable(tbl, result)

	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Inpatient IN", "", "", ""}, tbl.Rows[3].Texts(),
		"overturned header must neither inherit submissions nor fall back to denials")
}

func TestStepHeaderPrecedenceHasNoFallback(t *testing.T) {
	result := models.NewExtractionResult()
	result.Set(deniedPA, models.LabelInpatientIN, models.ValueTuple{"10%", "", ""})

	next, written, err := New(Config{}).Step(Active(submittedPA), models.NewRow(overturnedPA, ""), result)

	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Equal(t, NoActiveMetric(), next)
}

func TestInjectStateDoesNotCrossTables(t *testing.T) {
	first := table([]string{"Submitted for Prior Authorization", ""})
	second := table([]string{"Inpatient IN", ""})
	doc := &models.Document{Tables: []*models.Table{first, second, nil}}

	assert.Zero(t, New(Config{Reset: ResetNever}).Inject(doc, priorAuthResult()))
	assert.Equal(t, "", second.Rows[0].Cells[1].Text())
}

func TestInjectLabelsAreStrict(t *testing.T) {
	tbl := table(
		[]string{"Submitted for Prior Authorization", "", ""},
		[]string{"Inpatient IN (see note)", "", ""},
		[]string{"In-network inpatient", "", ""},
	)
	n := New(Config{Reset: ResetNever}).InjectTable(tbl, priorAuthResult())
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"Inpatient IN (see note)", "", ""}, tbl.Rows[1].Texts())
	assert.Equal(t, []string{"In-network inpatient", "120", "45"}, tbl.Rows[2].Texts())
}

func TestEffectiveReset(t *testing.T) {
	assert.Equal(t, ResetBlankHeader, Config{}.EffectiveReset())
	assert.Equal(t, ResetBlankHeader, Config{Placement: PlacementHeader}.EffectiveReset())
	assert.Equal(t, ResetBlankRow, Config{Placement: PlacementAdjacent}.EffectiveReset())
	assert.Equal(t, ResetBlankRow, Config{Placement: PlacementFixed}.EffectiveReset())
	assert.Equal(t, ResetNever, Config{Placement: PlacementAdjacent, Reset: ResetNever}.EffectiveReset())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "NoActiveMetric", NoActiveMetric().String())
	assert.Equal(t, "ActiveMetric(m)", Active("m").String())
}

func TestRowError(t *testing.T) {
	err := error(&RowError{Table: 2, Row: 5, Err: ErrShortRow})
	assert.Equal(t, "table 2 row 5 skipped: "+ErrShortRow.Error(), err.Error())
	assert.ErrorIs(t, err, ErrShortRow)
}

func TestInjectReportsSkippedRows(t *testing.T) {
	var skipped []*RowError
	in := New(Config{Placement: PlacementAdjacent, Reset: ResetNever, OnSkip: func(e *RowError) {
		skipped = append(skipped, e)
	}})
	ok := table(
		[]string{"Submitted for Prior Authorization", "", ""},
		[]string{"", "Inpatient IN", "", "", ""},
	)
	short := table(
		[]string{"Submitted for Prior Authorization", ""},
		[]string{"Inpatient IN"},
	)
	doc := &models.Document{Tables: []*models.Table{ok, short}}

	assert.Equal(t, 1, in.Inject(doc, priorAuthResult()))

	require.Len(t, skipped, 1)
	assert.Equal(t, 2, skipped[0].Table)
	assert.Equal(t, 2, skipped[0].Row)
	assert.ErrorIs(t, skipped[0], ErrShortRow)
}
