package xlbridge

// Workbook is the opaque spreadsheet store a connector drives. One
// concrete implementation wraps excelize; tests substitute doubles.
type Workbook interface {
	// Worksheet resolves a worksheet by exact, case-sensitive name.
	Worksheet(name string) (Worksheet, error)
	// Save persists the whole document to path, overwriting it.
	Save(path string) error
	Close() error
}

// Worksheet addresses cells by 1-based row and column on both the read
// and the write path.
type Worksheet interface {
	// Cell returns the raw content of one cell. Unpopulated cells
	// yield the empty string.
	Cell(row, col int) (string, error)
	// SetCell writes a typed value into one cell.
	SetCell(row, col int, v Value) error
}

// Opener opens the workbook at path. Injected into a Connector so tests
// can substitute a fake store.
type Opener func(path string) (Workbook, error)
