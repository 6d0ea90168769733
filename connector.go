package xlbridge

import "errors"

// Connector owns one open workbook and its worksheet cache for one
// simulation run. The workbook is opened lazily on first access and
// opened at most once; worksheet handles are memoized by name. A
// connector belongs to exactly one replication and is never shared.
type Connector struct {
	inputPath  string
	outputPath string
	opener     Opener
	rep        Reporter

	wb      Workbook
	sheets  map[string]Worksheet
	dirty   bool
	openErr error
	closed  bool
}

// Option configures a Connector.
type Option func(*Connector)

// WithReporter sets the diagnostic channel. Defaults to NopReporter.
func WithReporter(rep Reporter) Option {
	return func(c *Connector) {
		if rep != nil {
			c.rep = rep
		}
	}
}

// WithRunIdentity derives the connector's output path from the run
// identity. Without it the connector saves in place.
func WithRunIdentity(id RunIdentity, projectDir string) Option {
	return func(c *Connector) {
		c.outputPath = DeriveOutputPath(c.inputPath, projectDir, id)
	}
}

// WithOpener substitutes the workbook opener. Defaults to OpenWorkbook.
func WithOpener(open Opener) Option {
	return func(c *Connector) {
		if open != nil {
			c.opener = open
		}
	}
}

// NewConnector creates a connector over the workbook at inputPath. The
// workbook is not opened until the first worksheet access.
func NewConnector(inputPath string, opts ...Option) *Connector {
	c := &Connector{
		inputPath:  inputPath,
		outputPath: inputPath,
		opener:     OpenWorkbook,
		rep:        NopReporter(),
		sheets:     make(map[string]Worksheet),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InputPath returns the configured workbook path.
func (c *Connector) InputPath() string { return c.inputPath }

// OutputPath returns the path a dirty workbook is persisted to at Close.
func (c *Connector) OutputPath() string { return c.outputPath }

// Worksheet resolves a worksheet by name, hitting the cache on repeat
// access. The workbook is opened on the first call.
func (c *Connector) Worksheet(name string) (Worksheet, error) {
	if ws, ok := c.sheets[name]; ok {
		return ws, nil
	}
	wb, err := c.ensureOpen()
	if err != nil {
		return nil, err
	}
	ws, err := wb.Worksheet(name)
	if err != nil {
		return nil, err
	}
	c.sheets[name] = ws
	return ws, nil
}

// MarkDirty records that a write occurred. Idempotent.
func (c *Connector) MarkDirty() { c.dirty = true }

// Dirty reports whether any write occurred.
func (c *Connector) Dirty() bool { return c.dirty }

// ensureOpen opens the workbook on first use. An open failure is
// reported once and latched: later calls return the same error without
// retrying.
func (c *Connector) ensureOpen() (Workbook, error) {
	if c.wb != nil {
		return c.wb, nil
	}
	if c.openErr != nil {
		return nil, c.openErr
	}
	if c.inputPath == "" {
		c.openErr = &OpenError{Path: "", Err: errors.New("no workbook path configured")}
		c.rep.Errorf("%v", c.openErr)
		return nil, c.openErr
	}
	wb, err := c.opener(c.inputPath)
	if err != nil {
		c.openErr = &OpenError{Path: c.inputPath, Err: err}
		c.rep.Errorf("%v", c.openErr)
		return nil, c.openErr
	}
	c.wb = wb
	return wb, nil
}

// Close persists the workbook to the output path if any write occurred,
// then releases it. Safe to call more than once; only the first call
// does anything. A persistence failure is reported and returned, never
// raised further.
func (c *Connector) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.wb == nil {
		return nil
	}
	defer c.wb.Close()
	if !c.dirty || c.outputPath == "" {
		return nil
	}
	if err := c.wb.Save(c.outputPath); err != nil {
		perr := &PersistenceError{Path: c.outputPath, Err: err}
		c.rep.Errorf("%v", perr)
		return perr
	}
	c.rep.Tracef("saved workbook to %s", c.outputPath)
	return nil
}
