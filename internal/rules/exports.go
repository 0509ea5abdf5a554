package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// globalRoots are the spellings a bundler may emit for the global object,
// including the single-letter aliases minifiers commonly assign to it.
var globalRoots = []string{"globalThis", "window", "self", "global", "g", "t", "e", "n", "r", "o"}

// ExportPresence verifies the bundle actually attaches the SDK entry point to
// some global-object spelling or to exports. A bundle that passes every other
// check but exports nothing is still unusable.
type ExportPresence struct {
	exportName string
	patterns   []*regexp.Regexp
	expected   []string
}

// NewExportPresence builds the rule for the given expected export name.
func NewExportPresence(exportName string) *ExportPresence {
	var pats []string
	var expected []string
	escaped := regexp.QuoteMeta(exportName)

	for _, root := range globalRoots {
		pats = append(pats,
			`\b`+root+`\.`+escaped+`\s*=`,
			`\b`+root+`\[["']`+escaped+`["']\]\s*=`,
		)
	}
	pats = append(pats,
		`\bexports\.`+escaped+`\s*=`,
		`\bmodule\.exports\.`+escaped+`\s*=`,
	)

	// Human-readable forms for the violation message.
	expected = append(expected,
		"globalThis."+exportName+" =",
		"window."+exportName+" =",
		`window["`+exportName+`"] =`,
		"exports."+exportName+" =",
	)

	return &ExportPresence{
		exportName: exportName,
		patterns:   compileAll(pats),
		expected:   expected,
	}
}

func (r *ExportPresence) Name() string        { return "export-presence" }
func (r *ExportPresence) Severity() Severity  { return SeverityHigh }
func (r *ExportPresence) AppliesTo() []string { return []string{"*"} }

func (r *ExportPresence) Description() string {
	return fmt.Sprintf("bundle must export %q on a global object or via exports", r.exportName)
}

// Evaluate returns one high violation when no assignment-shape pattern
// matches the cleaned text, and nothing otherwise.
func (r *ExportPresence) Evaluate(cleaned, _, path string) []Violation {
	for _, p := range r.patterns {
		if p.MatchString(cleaned) {
			return nil
		}
	}

	return []Violation{{
		RuleName: r.Name(),
		Severity: SeverityHigh,
		Message: fmt.Sprintf("no global export of %q found; expected one of: %s",
			r.exportName, strings.Join(r.expected, ", ")),
		FilePath: path,
	}}
}
