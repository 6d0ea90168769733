package xlbridge

import (
	"fmt"
	"math"
)

// Step is one read or write exchange between simulation state and the
// workbook.
type Step interface {
	Execute(st State) error
}

// Binding names the simulation-state entry one read cell lands in, and
// the type that entry accepts.
type Binding struct {
	Name string
	Kind SlotKind
}

// ReadStep reads one worksheet row into simulation state. A batch of K
// bindings occupies columns [StartColumn, StartColumn+K-1] of the row
// the Row expression resolves to.
type ReadStep struct {
	Connector   *Connector
	Evaluator   Evaluator
	Reporter    Reporter
	Sheet       string
	Row         string // numeric expression, truncated to integer
	StartColumn int
	When        string // optional guard condition
	Bindings    []Binding
}

// Execute runs the step against the given state. Configuration problems
// are reported and turn the invocation into a no-op; cell-level
// classification failures are counted inside the batch.
func (s *ReadStep) Execute(st State) error {
	rep := stepReporter(s.Reporter, s.Connector)
	if s.Connector == nil {
		rep.Errorf("%v", &ConfigurationError{Msg: "read step: no connector configured"})
		return nil
	}
	ev := s.evaluator()
	if skip, err := stepSkipped(ev, s.When, st); err != nil {
		rep.Errorf("read step %s: %v", s.Sheet, err)
		return nil
	} else if skip {
		return nil
	}
	row, err := resolveRow(ev, s.Row, st)
	if err != nil {
		rep.Errorf("%v", &ConfigurationError{Msg: fmt.Sprintf("read step %s: %v", s.Sheet, err)})
		return nil
	}
	results := make([]Value, len(s.Bindings))
	slots := make([]Slot, len(s.Bindings))
	for i, b := range s.Bindings {
		slots[i] = Slot{Kind: b.Kind, Dst: &results[i]}
	}
	if _, _, err := ReadBatch(s.Connector, s.Sheet, row, s.StartColumn, slots); err != nil {
		return err
	}
	for i, b := range s.Bindings {
		if results[i].Kind == 0 {
			continue // cell failed classification, state entry untouched
		}
		st[b.Name] = results[i].Any()
	}
	return nil
}

// WriteStep evaluates value expressions against simulation state and
// writes the results into one worksheet row.
type WriteStep struct {
	Connector   *Connector
	Evaluator   Evaluator
	Reporter    Reporter
	Sheet       string
	Row         string // numeric expression, truncated to integer
	StartColumn int
	When        string // optional guard condition
	Values      []string
}

// Execute runs the step against the given state. All value expressions
// are resolved before any cell is written; a resolution failure is
// reported once and abandons the whole batch.
func (s *WriteStep) Execute(st State) error {
	rep := stepReporter(s.Reporter, s.Connector)
	if s.Connector == nil {
		rep.Errorf("%v", &ConfigurationError{Msg: "write step: no connector configured"})
		return nil
	}
	ev := s.evaluator()
	if skip, err := stepSkipped(ev, s.When, st); err != nil {
		rep.Errorf("write step %s: %v", s.Sheet, err)
		return nil
	} else if skip {
		return nil
	}
	row, err := resolveRow(ev, s.Row, st)
	if err != nil {
		rep.Errorf("%v", &ConfigurationError{Msg: fmt.Sprintf("write step %s: %v", s.Sheet, err)})
		return nil
	}
	resolved := make([]string, len(s.Values))
	for i, expression := range s.Values {
		result, err := ev.Evaluate(expression, st)
		if err != nil {
			rep.Errorf("write step %s row %d: %v", s.Sheet, row, err)
			return nil
		}
		resolved[i] = FormatOutput(result)
	}
	return WriteBatch(s.Connector, s.Sheet, row, s.StartColumn, resolved)
}

func (s *ReadStep) evaluator() Evaluator {
	if s.Evaluator != nil {
		return s.Evaluator
	}
	return NewEvaluator()
}

func (s *WriteStep) evaluator() Evaluator {
	if s.Evaluator != nil {
		return s.Evaluator
	}
	return NewEvaluator()
}

func stepReporter(rep Reporter, c *Connector) Reporter {
	if rep != nil {
		return rep
	}
	if c != nil {
		return c.rep
	}
	return NopReporter()
}

// stepSkipped evaluates an optional guard condition. An empty condition
// never skips.
func stepSkipped(ev Evaluator, when string, st State) (bool, error) {
	if when == "" {
		return false, nil
	}
	ok, err := ev.IsConditionTrue(when, st)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// resolveRow evaluates a row expression and truncates the result to a
// 1-based integer row number.
func resolveRow(ev Evaluator, expression string, st State) (int, error) {
	if expression == "" {
		return 0, fmt.Errorf("no row expression")
	}
	result, err := ev.Evaluate(expression, st)
	if err != nil {
		return 0, err
	}
	var row int
	switch x := result.(type) {
	case int:
		row = x
	case int64:
		row = int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("row expression %q is not finite", expression)
		}
		row = int(math.Trunc(x))
	default:
		return 0, fmt.Errorf("row expression %q evaluated to %T, expected number", expression, result)
	}
	if row < 1 {
		return 0, fmt.Errorf("row expression %q resolved to %d, rows are 1-based", expression, row)
	}
	return row, nil
}
