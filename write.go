package xlbridge

import "errors"

// WriteBatch classifies each already-stringified value and writes it into
// columns [startCol, startCol+K-1] of one row. Row and column are
// 1-based.
//
// The first rejected cell is reported once and aborts the remainder of
// the batch; cells written before it stay written, and later independent
// batches are unaffected. The dirty flag is set on the first successful
// write.
func WriteBatch(c *Connector, sheet string, row, startCol int, values []string) error {
	ws, err := c.Worksheet(sheet)
	if err != nil {
		var oe *OpenError
		if !errors.As(err, &oe) {
			c.rep.Errorf("write %s row %d: %v", sheet, row, err)
		}
		return err
	}
	for i, s := range values {
		v := ClassifyOutput(s)
		if err := ws.SetCell(row, startCol+i, v); err != nil {
			werr := &WriteError{Sheet: sheet, Row: row, Col: startCol + i, Err: err}
			c.rep.Errorf("%v", werr)
			return werr
		}
		c.MarkDirty()
	}
	if len(values) > 0 {
		c.rep.Tracef("wrote %d cells to %s row %d", len(values), sheet, row)
	}
	return nil
}
