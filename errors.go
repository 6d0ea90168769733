package xlbridge

import "fmt"

// OpenError reports a workbook that could not be opened. Once a connector
// records one, every later operation on that connector is a no-op.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open workbook %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SheetNotFoundError reports a worksheet name absent from the open workbook.
type SheetNotFoundError struct {
	Name string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("worksheet %q not found", e.Name)
}

// ClassificationError reports cell content that could not be classified
// into the destination's accepted type. Non-fatal: read batches count it,
// write batches abort on it.
type ClassificationError struct {
	Raw  string
	Slot SlotKind
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot classify %q for %s destination", e.Raw, e.Slot)
}

// WriteError reports a cell write that the underlying store rejected.
// The remainder of the batch it occurred in is abandoned.
type WriteError struct {
	Sheet string
	Row   int
	Col   int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s!(%d,%d): %v", e.Sheet, e.Row, e.Col, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ConfigurationError reports a required reference or property that is
// missing. The affected step invocation becomes a no-op.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// PersistenceError reports a failed save to the output path at shutdown.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save workbook to %q: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
