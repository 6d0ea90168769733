package xlbridge

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelizeWorkbook implements Workbook on top of excelize.
type excelizeWorkbook struct {
	f *excelize.File
}

// OpenWorkbook opens an xlsx workbook with excelize. It is the default
// Opener of a Connector.
func OpenWorkbook(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &excelizeWorkbook{f: f}, nil
}

// NewWorkbook wraps an already-open excelize file. Useful for hosts that
// build workbooks in memory.
func NewWorkbook(f *excelize.File) Workbook {
	return &excelizeWorkbook{f: f}
}

func (wb *excelizeWorkbook) Worksheet(name string) (Worksheet, error) {
	// Exact, case-sensitive match; excelize's own index lookup folds case.
	found := false
	for _, existing := range wb.f.GetSheetList() {
		if existing == name {
			found = true
			break
		}
	}
	if !found {
		return nil, &SheetNotFoundError{Name: name}
	}
	rows, err := wb.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		// A structurally empty sheet gets one addressable cell so the
		// first write to it is well-defined.
		if err := wb.f.SetCellStr(name, "A1", ""); err != nil {
			return nil, fmt.Errorf("initialize worksheet %q: %w", name, err)
		}
	}
	return &excelizeSheet{f: wb.f, name: name}, nil
}

func (wb *excelizeWorkbook) Save(path string) error {
	return wb.f.SaveAs(path)
}

func (wb *excelizeWorkbook) Close() error {
	return wb.f.Close()
}

// excelizeSheet implements Worksheet for one sheet of an open workbook.
type excelizeSheet struct {
	f    *excelize.File
	name string
}

func (ws *excelizeSheet) Cell(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell address (%d,%d): %w", row, col, err)
	}
	return ws.f.GetCellValue(ws.name, cell)
}

func (ws *excelizeSheet) SetCell(row, col int, v Value) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell address (%d,%d): %w", row, col, err)
	}
	switch v.Kind {
	case KindNumber:
		return ws.f.SetCellFloat(ws.name, cell, v.Number, -1, 64)
	case KindDateTime:
		return ws.f.SetCellValue(ws.name, cell, v.Time)
	default:
		return ws.f.SetCellStr(ws.name, cell, v.Text)
	}
}
