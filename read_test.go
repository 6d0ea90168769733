package xlbridge

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readConnector(t *testing.T, wb *fakeWorkbook, rep Reporter) *Connector {
	t.Helper()
	opener := &fakeOpener{wb: wb}
	return NewConnector("model.xlsx", WithOpener(opener.open), WithReporter(rep))
}

func TestReadBatch_CoercesRow(t *testing.T) {
	wb := newFakeWorkbook("Inputs")
	sheet := wb.sheets["Inputs"]
	sheet.cells[cellAddr{2, 1}] = "10.5"
	sheet.cells[cellAddr{2, 2}] = "2024-03-15 08:00:00"
	sheet.cells[cellAddr{2, 3}] = "station A"

	rep := &recordReporter{}
	c := readConnector(t, wb, rep)

	var num, ts, txt Value
	ok, failed, err := ReadBatch(c, "Inputs", 2, 1, []Slot{
		NumberSlot(&num), DateTimeSlot(&ts), TextSlot(&txt),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, ok)
	assert.Equal(t, 0, failed)
	assert.Equal(t, NumberValue(10.5), num)
	assert.Equal(t, DateTimeValue(time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)), ts)
	assert.Equal(t, TextValue("station A"), txt)
	require.Len(t, rep.traces, 1)
	assert.Contains(t, rep.traces[0], "read 3 of 3 cells")
}

func TestReadBatch_CountsFailuresWithoutAborting(t *testing.T) {
	wb := newFakeWorkbook("Inputs")
	sheet := wb.sheets["Inputs"]
	sheet.cells[cellAddr{5, 1}] = "1.5"
	sheet.cells[cellAddr{5, 2}] = "not a number"
	sheet.cells[cellAddr{5, 3}] = "2"

	rep := &recordReporter{}
	c := readConnector(t, wb, rep)

	var a, b, d Value
	ok, failed, err := ReadBatch(c, "Inputs", 5, 1, []Slot{
		NumberSlot(&a), NumberSlot(&b), NumberSlot(&d),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, NumberValue(1.5), a)
	assert.Equal(t, Value{}, b, "failed cell leaves destination untouched")
	assert.Equal(t, NumberValue(2), d, "later cells still read")
	assert.Empty(t, rep.errs)
	require.Len(t, rep.traces, 1)
	assert.Contains(t, rep.traces[0], "1 failures")
}

func TestReadBatch_EmptyCells(t *testing.T) {
	wb := newFakeWorkbook("Inputs")
	rep := &recordReporter{}
	c := readConnector(t, wb, rep)

	var num, txt Value
	ok, failed, err := ReadBatch(c, "Inputs", 1, 1, []Slot{
		NumberSlot(&num), TextSlot(&txt),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, ok, "empty string fills a text destination")
	assert.Equal(t, 1, failed, "empty string fails a numeric destination")
	assert.Equal(t, TextValue(""), txt)
}

func TestReadBatch_AllFailuresReportedAsError(t *testing.T) {
	wb := newFakeWorkbook("Inputs")
	rep := &recordReporter{}
	c := readConnector(t, wb, rep)

	var a, b Value
	ok, failed, err := ReadBatch(c, "Inputs", 3, 1, []Slot{
		NumberSlot(&a), DateTimeSlot(&b),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, ok)
	assert.Equal(t, 2, failed)
	require.Len(t, rep.errs, 1)
	assert.Contains(t, rep.errs[0], "all 2 cells failed")
}

func TestReadBatch_MissingSheetReported(t *testing.T) {
	wb := newFakeWorkbook("Inputs")
	rep := &recordReporter{}
	c := readConnector(t, wb, rep)

	var v Value
	_, _, err := ReadBatch(c, "Nope", 1, 1, []Slot{NumberSlot(&v)})
	var serr *SheetNotFoundError
	require.ErrorAs(t, err, &serr)
	assert.Len(t, rep.errs, 1)
}

func TestReadBatch_OpenFailureNotReReported(t *testing.T) {
	rep := &recordReporter{}
	opener := &fakeOpener{err: errors.New("bad file")}
	c := NewConnector("broken.xlsx", WithOpener(opener.open), WithReporter(rep))

	var v Value
	_, _, err := ReadBatch(c, "Inputs", 1, 1, []Slot{NumberSlot(&v)})
	var oerr *OpenError
	require.ErrorAs(t, err, &oerr)

	_, _, _ = ReadBatch(c, "Inputs", 1, 1, []Slot{NumberSlot(&v)})
	assert.Len(t, rep.errs, 1, "open failure reported only at the source")
}
