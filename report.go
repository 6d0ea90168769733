package xlbridge

import "go.uber.org/zap"

// Reporter is the host's diagnostic channel. Trace messages are
// informational; error messages report recoverable failures. Nothing the
// connector does escalates past this interface.
type Reporter interface {
	Tracef(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopReporter struct{}

func (nopReporter) Tracef(string, ...any) {}
func (nopReporter) Errorf(string, ...any) {}

// NopReporter returns a Reporter that discards everything.
func NopReporter() Reporter { return nopReporter{} }

type zapReporter struct {
	log *zap.SugaredLogger
}

// NewZapReporter adapts a zap logger into a Reporter. Traces log at info
// level, errors at error level.
func NewZapReporter(log *zap.Logger) Reporter {
	return &zapReporter{log: log.Sugar()}
}

func (r *zapReporter) Tracef(format string, args ...any) {
	r.log.Infof(format, args...)
}

func (r *zapReporter) Errorf(format string, args ...any) {
	r.log.Errorf(format, args...)
}
