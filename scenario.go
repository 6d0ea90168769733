package xlbridge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes one spreadsheet exchange run: the workbook, the run
// identity, the initial simulation state, and the ordered steps.
type Scenario struct {
	Workbook     string         `yaml:"workbook"`
	ProjectDir   string         `yaml:"project_dir,omitempty"`
	Experiment   string         `yaml:"experiment,omitempty"`
	ScenarioName string         `yaml:"scenario,omitempty"`
	Replications int            `yaml:"replications,omitempty"`
	State        map[string]any `yaml:"state,omitempty"`
	Steps        []StepConfig   `yaml:"steps"`
}

// StepConfig is one scenario step: exactly one of read or write.
type StepConfig struct {
	Read  *ReadStepConfig  `yaml:"read,omitempty"`
	Write *WriteStepConfig `yaml:"write,omitempty"`
}

// ReadStepConfig configures a ReadStep.
type ReadStepConfig struct {
	Sheet       string          `yaml:"sheet"`
	Row         string          `yaml:"row"`
	StartColumn ColumnRef       `yaml:"start_column"`
	When        string          `yaml:"when,omitempty"`
	Bindings    []BindingConfig `yaml:"bindings"`
}

// BindingConfig maps one cell to a named state entry.
type BindingConfig struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// WriteStepConfig configures a WriteStep.
type WriteStepConfig struct {
	Sheet       string    `yaml:"sheet"`
	Row         string    `yaml:"row"`
	StartColumn ColumnRef `yaml:"start_column"`
	When        string    `yaml:"when,omitempty"`
	Values      []string  `yaml:"values"`
}

// ColumnRef is a 1-based column in scenario files, written either as a
// number or as a letter name like "B".
type ColumnRef int

// UnmarshalYAML accepts both the numeric and the letter form.
func (c *ColumnRef) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err == nil {
		if n < 1 {
			return fmt.Errorf("column %d: columns are 1-based", n)
		}
		*c = ColumnRef(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("invalid column reference: %w", err)
	}
	idx, err := ColumnIndex(s)
	if err != nil {
		return err
	}
	*c = ColumnRef(idx)
	return nil
}

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario %q: %w", path, err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", path, err)
	}
	if s.Workbook == "" {
		return nil, fmt.Errorf("scenario %q: no workbook path", path)
	}
	return &s, nil
}

// Run executes every replication of the scenario. Each replication gets
// its own connector and its own derived output path, so replications can
// never clobber each other. Step failures are reported and do not stop
// the run; the first replication-level error is returned.
func (s *Scenario) Run(rep Reporter) error {
	if rep == nil {
		rep = NopReporter()
	}
	replications := s.Replications
	if replications < 1 {
		replications = 1
	}
	var firstErr error
	for r := 1; r <= replications; r++ {
		if err := s.runReplication(r, rep); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Scenario) runReplication(replication int, rep Reporter) error {
	id := RunIdentity{Experiment: s.Experiment, Scenario: s.ScenarioName, Replication: replication}
	c := NewConnector(s.Workbook,
		WithReporter(rep),
		WithRunIdentity(id, s.ProjectDir),
	)
	ev := NewEvaluator()

	st := State{}
	for k, v := range s.State {
		st[k] = v
	}
	st["experiment"] = s.Experiment
	st["scenario"] = s.ScenarioName
	st["replication"] = replication

	for i, sc := range s.Steps {
		step, err := sc.build(c, ev, rep)
		if err != nil {
			rep.Errorf("step %d: %v", i+1, err)
			continue
		}
		// Batch-level failures are reported inside the step; sibling
		// steps still run.
		_ = step.Execute(st)
	}
	return c.Close()
}

// build turns a StepConfig into a runnable step wired to the
// replication's connector and evaluator.
func (sc StepConfig) build(c *Connector, ev Evaluator, rep Reporter) (Step, error) {
	switch {
	case sc.Read != nil && sc.Write != nil:
		return nil, fmt.Errorf("step declares both read and write")
	case sc.Read != nil:
		bindings := make([]Binding, len(sc.Read.Bindings))
		for i, b := range sc.Read.Bindings {
			kind, err := ParseSlotKind(b.Type)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", b.Name, err)
			}
			bindings[i] = Binding{Name: b.Name, Kind: kind}
		}
		return &ReadStep{
			Connector:   c,
			Evaluator:   ev,
			Reporter:    rep,
			Sheet:       sc.Read.Sheet,
			Row:         sc.Read.Row,
			StartColumn: int(sc.Read.StartColumn),
			When:        sc.Read.When,
			Bindings:    bindings,
		}, nil
	case sc.Write != nil:
		return &WriteStep{
			Connector:   c,
			Evaluator:   ev,
			Reporter:    rep,
			Sheet:       sc.Write.Sheet,
			Row:         sc.Write.Row,
			StartColumn: int(sc.Write.StartColumn),
			When:        sc.Write.When,
			Values:      sc.Write.Values,
		}, nil
	}
	return nil, fmt.Errorf("step declares neither read nor write")
}

// ParseSlotKind parses a destination type name from a scenario file.
func ParseSlotKind(s string) (SlotKind, error) {
	switch s {
	case "number", "numeric":
		return SlotNumber, nil
	case "datetime", "date":
		return SlotDateTime, nil
	case "text", "string":
		return SlotText, nil
	}
	return 0, fmt.Errorf("unknown destination type %q", s)
}
