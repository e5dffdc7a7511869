// Package diag implements the ErrorSink capability the preprocessor
// core consumes (spec section 6): a single Report method carrying a
// severity, a stable code, a file/line location and a message. The
// core never fails loudly; a sink just gives a caller somewhere to
// put whatever the core does decide to report.
package diag

import (
	"fmt"
	"io"
)

// Severity mirrors the handful of levels a preprocessor diagnostic
// can carry. There is no "fatal" level: the core always returns a
// valid, possibly empty, result.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Location identifies where a diagnostic originated. Line is 1-based;
// 0 means "unknown" (the core itself does not always track a line for
// the handful of errors it can raise).
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return "?"
	}
	if l.Line <= 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Diagnostic is one reported message.
type Diagnostic struct {
	Severity Severity
	Code     string
	Loc      Location
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: [%s] %s", d.Loc, d.Severity, d.Code, d.Message)
}

// Sink is the ErrorSink capability from spec section 6.
type Sink interface {
	Report(severity Severity, code string, loc Location, message string)
}

// SliceSink accumulates diagnostics in memory, for callers and tests
// that want to inspect what was reported.
type SliceSink struct {
	Diagnostics []Diagnostic
}

func (s *SliceSink) Report(severity Severity, code string, loc Location, message string) {
	s.Diagnostics = append(s.Diagnostics, Diagnostic{
		Severity: severity,
		Code:     code,
		Loc:      loc,
		Message:  message,
	})
}

// WriterSink formats each diagnostic to an io.Writer as it arrives,
// one line per report. Used by the CLI driver.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Report(severity Severity, code string, loc Location, message string) {
	fmt.Fprintln(s.W, Diagnostic{Severity: severity, Code: code, Loc: loc, Message: message}.String())
}

// Discard silently drops every diagnostic. Used when a caller of the
// preprocessor genuinely does not care, rather than passing nil and
// forcing every call site to nil-check.
var Discard Sink = discardSink{}

type discardSink struct{}

func (discardSink) Report(Severity, string, Location, string) {}
