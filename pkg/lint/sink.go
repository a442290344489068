package lint

import "github.com/leapstack-labs/capilint/pkg/core"

// Sink collects diagnostics in discovery order.
// A Sink is owned by a single file traversal and is not safe for concurrent use.
type Sink struct {
	items []Diagnostic
}

// Add appends diagnostics to the sink.
func (s *Sink) Add(diags ...Diagnostic) {
	s.items = append(s.items, diags...)
}

// Items returns the collected diagnostics.
func (s *Sink) Items() []Diagnostic {
	return s.items
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	return len(s.items)
}

// Summary counts diagnostics per severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Hints    int `json:"hints"`
}

// Total returns the number of counted diagnostics.
func (s Summary) Total() int {
	return s.Errors + s.Warnings + s.Infos + s.Hints
}

// Summarize counts diagnostics per severity.
func Summarize(diags []Diagnostic) Summary {
	var sum Summary
	for _, d := range diags {
		switch d.Severity {
		case core.SeverityError:
			sum.Errors++
		case core.SeverityWarning:
			sum.Warnings++
		case core.SeverityInfo:
			sum.Infos++
		case core.SeverityHint:
			sum.Hints++
		}
	}
	return sum
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == core.SeverityError {
			return true
		}
	}
	return false
}

// FilterBySeverity keeps diagnostics at or above min (error is the highest).
func FilterBySeverity(diags []Diagnostic, minSeverity core.Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity.AtLeast(minSeverity) {
			out = append(out, d)
		}
	}
	return out
}
