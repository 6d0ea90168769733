package xlbridge

import "fmt"

// recordReporter captures diagnostics for assertions.
type recordReporter struct {
	traces []string
	errs   []string
}

func (r *recordReporter) Tracef(format string, args ...any) {
	r.traces = append(r.traces, fmt.Sprintf(format, args...))
}

func (r *recordReporter) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

type cellAddr struct {
	row, col int
}

// fakeSheet is an in-memory Worksheet with injectable failures.
type fakeSheet struct {
	cells     map[cellAddr]string // raw read content
	written   map[cellAddr]Value  // values accepted by SetCell
	setErrAt  map[cellAddr]error
	cellErrAt map[cellAddr]error
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{
		cells:     make(map[cellAddr]string),
		written:   make(map[cellAddr]Value),
		setErrAt:  make(map[cellAddr]error),
		cellErrAt: make(map[cellAddr]error),
	}
}

func (s *fakeSheet) Cell(row, col int) (string, error) {
	addr := cellAddr{row, col}
	if err := s.cellErrAt[addr]; err != nil {
		return "", err
	}
	return s.cells[addr], nil
}

func (s *fakeSheet) SetCell(row, col int, v Value) error {
	addr := cellAddr{row, col}
	if err := s.setErrAt[addr]; err != nil {
		return err
	}
	s.written[addr] = v
	return nil
}

// fakeWorkbook is an in-memory Workbook with call counters.
type fakeWorkbook struct {
	sheets  map[string]*fakeSheet
	lookups int
	saves   []string
	saveErr error
	closes  int
}

func newFakeWorkbook(sheetNames ...string) *fakeWorkbook {
	wb := &fakeWorkbook{sheets: make(map[string]*fakeSheet)}
	for _, name := range sheetNames {
		wb.sheets[name] = newFakeSheet()
	}
	return wb
}

func (wb *fakeWorkbook) Worksheet(name string) (Worksheet, error) {
	wb.lookups++
	ws, ok := wb.sheets[name]
	if !ok {
		return nil, &SheetNotFoundError{Name: name}
	}
	return ws, nil
}

func (wb *fakeWorkbook) Save(path string) error {
	wb.saves = append(wb.saves, path)
	return wb.saveErr
}

func (wb *fakeWorkbook) Close() error {
	wb.closes++
	return nil
}

// fakeOpener counts open calls and hands out one workbook or one error.
type fakeOpener struct {
	wb    *fakeWorkbook
	err   error
	opens int
}

func (o *fakeOpener) open(string) (Workbook, error) {
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	return o.wb, nil
}
