package codegen

import (
	"strings"

	"go.uber.org/multierr"
)

// Severity classifies one diagnostic entry.
type Severity uint8

// Severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one accumulated entry.
type Diagnostic struct {
	Severity Severity
	Function string
	Message  string
}

// Diagnostics accumulates errors and warnings produced while lowering a
// module, instead of aborting at the first one. The accumulated errors
// are also exposed as a single combined error via Err, built with
// go.uber.org/multierr so a caller that only wants pass/fail can treat a
// Diagnostics value as an ordinary error source.
type Diagnostics struct {
	entries []Diagnostic
}

// Error records an error-severity diagnostic.
func (d *Diagnostics) Error(function, message string) {
	d.entries = append(d.entries, Diagnostic{Severity: SeverityError, Function: function, Message: message})
}

// Warning records a warning-severity diagnostic.
func (d *Diagnostics) Warning(function, message string) {
	d.entries = append(d.entries, Diagnostic{Severity: SeverityWarning, Function: function, Message: message})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, e := range d.entries {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns a combined multierr error over every error-severity entry,
// or nil if there are none.
func (d *Diagnostics) Err() error {
	var err error
	for _, e := range d.entries {
		if e.Severity != SeverityError {
			continue
		}
		err = multierr.Append(err, diagnosticError(e))
	}
	return err
}

type diagnosticError Diagnostic

func (e diagnosticError) Error() string {
	if e.Function != "" {
		return "in function " + e.Function + ": " + e.Message
	}
	return e.Message
}

// Render formats every entry as a multiline string, one "error:"/
// "warning:"-prefixed line per entry, matching the spec's diagnostic
// rendering (§6).
func (d *Diagnostics) Render() string {
	var b strings.Builder
	for _, e := range d.entries {
		switch e.Severity {
		case SeverityError:
			b.WriteString("error: ")
		default:
			b.WriteString("warning: ")
		}
		if e.Function != "" {
			b.WriteString("in function ")
			b.WriteString(e.Function)
			b.WriteString(": ")
		}
		b.WriteString(e.Message)
		b.WriteByte('\n')
	}
	return b.String()
}

// Entries returns every accumulated diagnostic in recording order.
func (d *Diagnostics) Entries() []Diagnostic { return d.entries }
