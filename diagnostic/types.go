package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Codes attached to diagnostics emitted by this module.
const (
	// CodeUnmatchedColumn marks a header column with no matching record field.
	CodeUnmatchedColumn = "unmatched_column"
	// CodeDuplicateColumn marks a header column whose field was already matched by an earlier column.
	CodeDuplicateColumn = "duplicate_column"
	// CodeUnsupportedField marks a struct field whose type has no column kind.
	CodeUnsupportedField = "unsupported_field"
	// CodeSkippedField marks a struct field excluded with a csv:"-" tag.
	CodeSkippedField = "skipped_field"
	// CodeDuplicateField marks a struct field whose column name is already taken by an earlier field.
	CodeDuplicateField = "duplicate_field"
)

// NoColumn is the Column value of a diagnostic that is not tied to a column.
const NoColumn = -1

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Column is the zero-based CSV column, or NoColumn.
	Column int
	// Field names the record field this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Column != NoColumn {
		prefix = append(prefix, fmt.Sprintf("column %d", d.Column))
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Sink receives diagnostics. Emit must not block or fail the caller.
type Sink interface {
	Emit(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

// Emit calls f(d).
func (f SinkFunc) Emit(d Diagnostic) {
	f(d)
}

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector holds diagnostics in memory, grouped by severity.
type Collector struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Emit files d under its severity.
func (c *Collector) Emit(d Diagnostic) {
	switch d.Severity {
	case SeverityError:
		c.Errors = append(c.Errors, d)
	case SeverityWarning:
		c.Warnings = append(c.Warnings, d)
	default:
		c.Infos = append(c.Infos, d)
	}
}

// AddError adds an error diagnostic.
func (c *Collector) AddError(code, message string, column int, field string) {
	c.Emit(Diagnostic{Severity: SeverityError, Code: code, Message: message, Column: column, Field: field})
}

// AddWarning adds a warning diagnostic.
func (c *Collector) AddWarning(code, message string, column int, field string) {
	c.Emit(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Column: column, Field: field})
}

// AddInfo adds an info diagnostic.
func (c *Collector) AddInfo(code, message string, column int, field string) {
	c.Emit(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Column: column, Field: field})
}

// All returns every collected diagnostic, errors first.
func (c *Collector) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(c.Errors)+len(c.Warnings)+len(c.Infos))
	out = append(out, c.Errors...)
	out = append(out, c.Warnings...)

	return append(out, c.Infos...)
}

// HasErrors returns true if there are any error diagnostics.
func (c *Collector) HasErrors() bool {
	return len(c.Errors) > 0
}

// Merge merges another Collector into this one.
func (c *Collector) Merge(other *Collector) {
	c.Errors = append(c.Errors, other.Errors...)
	c.Warnings = append(c.Warnings, other.Warnings...)
	c.Infos = append(c.Infos, other.Infos...)
}

// Err returns a combined error from all error diagnostics, or nil.
func (c *Collector) Err() error {
	if !c.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(c.Errors))
	for _, e := range c.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Tee forwards every diagnostic to each sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Emit(d)
		}
	})
}
