package parser

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyStarted = errors.New("parser: parsing already started; call Reset first")
	ErrClosed         = errors.New("parser: closed")
)

// ErrorCode classifies a diagnostic. The low nibble carries completion
// modifiers, the next bits the base category.
type ErrorCode int

const (
	IncompleteStatement ErrorCode = 0x0001
	IncompleteToken     ErrorCode = 0x0002
	IncompleteMask      ErrorCode = 0x000F

	SyntaxError      ErrorCode = 0x0010
	IndentationError ErrorCode = 0x0020
	TabError         ErrorCode = 0x0030
	VersionError     ErrorCode = 0x0040
	BaseMask         ErrorCode = 0x00F0

	// NoCaret asks renderers not to point at a column.
	NoCaret ErrorCode = 0x0100
)

func (c ErrorCode) Base() ErrorCode {
	return c & BaseMask
}

func (c ErrorCode) Incomplete() ErrorCode {
	return c & IncompleteMask
}

func (c ErrorCode) String() string {
	var base string
	switch c.Base() {
	case SyntaxError:
		base = "SyntaxError"
	case IndentationError:
		base = "IndentationError"
	case TabError:
		base = "TabError"
	case VersionError:
		base = "VersionError"
	case 0:
		if c == 0 {
			return "None"
		}
		base = "Error"
	default:
		base = fmt.Sprintf("Error(%#x)", int(c.Base()))
	}
	switch {
	case c&IncompleteToken != 0:
		base += "|IncompleteToken"
	case c&IncompleteStatement != 0:
		base += "|IncompleteStatement"
	}
	if c&NoCaret != 0 {
		base += "|NoCaret"
	}
	return base
}

type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

var severityNames = map[Severity]string{
	SeverityIgnore:  "ignore",
	SeverityWarning: "warning",
	SeverityError:   "error",
	SeverityFatal:   "fatal",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSeverity maps the configuration spelling of a severity back to its value.
func ParseSeverity(s string) (Severity, error) {
	for sev, name := range severityNames {
		if name == s {
			return sev, nil
		}
	}
	return SeverityIgnore, fmt.Errorf("unknown severity %q", s)
}

// ErrorSink receives every diagnostic produced while tokenizing and parsing.
// Spans are byte offsets into the decoded text; lines converts them to
// line and column positions.
type ErrorSink interface {
	Add(message string, lines LineTable, start, end int, code ErrorCode, severity Severity)
}

// SinkFunc adapts a function to the ErrorSink interface.
type SinkFunc func(message string, lines LineTable, start, end int, code ErrorCode, severity Severity)

func (f SinkFunc) Add(message string, lines LineTable, start, end int, code ErrorCode, severity Severity) {
	f(message, lines, start, end, code, severity)
}

type nullSink struct{}

func (nullSink) Add(string, LineTable, int, int, ErrorCode, Severity) {}

// Diagnostic is a recorded ErrorSink entry.
type Diagnostic struct {
	Message  string
	Span     Span
	Start    Position
	End      Position
	Code     ErrorCode
	Severity Severity
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Start.Line, d.Start.Column, d.Code.Base(), d.Message)
}

// Collector is an ErrorSink that records every diagnostic in arrival order.
type Collector struct {
	File        string
	Diagnostics []Diagnostic
}

func (c *Collector) Add(message string, lines LineTable, start, end int, code ErrorCode, severity Severity) {
	startPos := lines.Position(start)
	endPos := lines.Position(end)
	startPos.File = c.File
	endPos.File = c.File
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Message:  message,
		Span:     Span{Start: start, End: end},
		Start:    startPos,
		End:      endPos,
		Code:     code,
		Severity: severity,
	})
}

// HasErrors reports whether any recorded diagnostic is an error.
func (c *Collector) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// firstErrorSink forwards to the configured sink and remembers the code of
// the first error-level diagnostic.
type firstErrorSink struct {
	next       ErrorSink
	first      ErrorCode
	firstStart int
	count      int
}

func (s *firstErrorSink) Add(message string, lines LineTable, start, end int, code ErrorCode, severity Severity) {
	if severity == SeverityIgnore {
		return
	}
	if severity >= SeverityError {
		s.count++
		if s.first == 0 {
			s.first = code
			s.firstStart = start
		}
	}
	s.next.Add(message, lines, start, end, code, severity)
}

func (s *firstErrorSink) reset() {
	s.first = 0
	s.firstStart = 0
	s.count = 0
}
