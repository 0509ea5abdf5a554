// Package rules defines the verification rules applied to packaged build
// artifacts, along with the severity and violation types they produce.
package rules

// Severity classifies how serious a violation is. High and medium findings
// fail the run; low and warning findings are informational.
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityWarning Severity = "warning"
)

// Fails reports whether a violation of this severity fails the run.
func (s Severity) Fails() bool {
	return s == SeverityHigh || s == SeverityMedium
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow, SeverityWarning:
		return true
	}
	return false
}

// Violation represents a single rule finding against one file.
type Violation struct {
	RuleName    string   `json:"rule_name"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	FilePath    string   `json:"file_path"`
	LineNumber  *int     `json:"line_number,omitempty"`
	MatchedText string   `json:"matched_text,omitempty"`
	Context     string   `json:"context,omitempty"`
}

// Rule is a named check over one build artifact. Implementations must be pure
// and safe to call concurrently: Evaluate must not mutate its inputs or any
// shared state. A rule may downgrade individual findings to SeverityWarning
// at evaluation time, but must never emit a severity above its declared one.
type Rule interface {
	// Name uniquely identifies the rule within a registry.
	Name() string
	// Description is a one-line summary shown in reports.
	Description() string
	// Severity is the rule's declared severity ceiling.
	Severity() Severity
	// AppliesTo returns the file-name glob patterns the rule runs against;
	// "*" matches every file.
	AppliesTo() []string
	// Evaluate inspects one file and returns zero or more violations.
	// cleaned is the comment-stripped text, raw the original file contents.
	Evaluate(cleaned, raw, path string) []Violation
}

// intPtr returns a pointer to v, for optional violation fields.
func intPtr(v int) *int {
	return &v
}
