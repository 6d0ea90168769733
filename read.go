package xlbridge

import "errors"

// ReadBatch reads len(slots) cells from columns [startCol, startCol+K-1]
// of one row and coerces each into its destination slot. Row and column
// are 1-based.
//
// Per-cell failures are counted, never fatal: one unreadable cell does
// not abort the batch. The batch outcome is traced; it is an error only
// when every destination fails. The returned error covers batch-level
// failures (workbook unopenable, worksheet missing) only.
func ReadBatch(c *Connector, sheet string, row, startCol int, slots []Slot) (ok, failed int, err error) {
	ws, err := c.Worksheet(sheet)
	if err != nil {
		// Open failures were already reported at the source.
		var oe *OpenError
		if !errors.As(err, &oe) {
			c.rep.Errorf("read %s row %d: %v", sheet, row, err)
		}
		return 0, 0, err
	}
	for i, slot := range slots {
		raw, cellErr := ws.Cell(row, startCol+i)
		if cellErr != nil {
			failed++
			continue
		}
		if cellErr := CoerceInto(raw, slot); cellErr != nil {
			failed++
			continue
		}
		ok++
	}
	if len(slots) > 0 && ok == 0 {
		c.rep.Errorf("read %s row %d: all %d cells failed classification", sheet, row, len(slots))
	} else {
		c.rep.Tracef("read %d of %d cells from %s row %d, %d failures", ok, len(slots), sheet, row, failed)
	}
	return ok, failed, nil
}
