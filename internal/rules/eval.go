package rules

import (
	"fmt"
	"regexp"
)

// evalPatterns match direct dynamic-code-execution calls and dynamic function
// construction in the cleaned text.
var evalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`\bnew\s+Function\s*\(`),
}

// evalWhitelist marks safe usages: the match text quoted inside an error
// message, a named safety-check identifier, or a typeof probe. Checked
// against both the match's raw line and its raw context window.
var evalWhitelist = []*regexp.Regexp{
	regexp.MustCompile(`["` + "`" + `'][^"'` + "`" + `\n]*\beval\b[^"'` + "`" + `\n]*["` + "`" + `']`),
	regexp.MustCompile(`(?i)no[-_]?eval|eval[-_]?(disabled|blocked|check)`),
	regexp.MustCompile(`(?i)\b(forbidden|disallowed|not\s+(allowed|supported|permitted)|refus\w+|reject\w+)\b`),
	regexp.MustCompile(`(?i)safe(ty)?[-_]?(check|guard)`),
	regexp.MustCompile(`typeof\s+eval`),
}

// DynamicEval flags eval() and Function-constructor calls that survive the
// safe-usage whitelist.
type DynamicEval struct{}

// NewDynamicEval builds the dynamic-evaluation rule.
func NewDynamicEval() *DynamicEval { return &DynamicEval{} }

func (r *DynamicEval) Name() string        { return "no-dynamic-eval" }
func (r *DynamicEval) Severity() Severity  { return SeverityHigh }
func (r *DynamicEval) AppliesTo() []string { return []string{"*"} }

func (r *DynamicEval) Description() string {
	return "bundle must not contain eval() or dynamic Function construction"
}

func (r *DynamicEval) Evaluate(_, raw, path string) []Violation {
	var violations []Violation

	finder := newSiteFinder(raw)
	for _, pattern := range evalPatterns {
		for _, site := range finder.find(pattern) {
			if site.whitelisted(evalWhitelist) {
				continue
			}
			violations = append(violations, Violation{
				RuleName:    r.Name(),
				Severity:    SeverityHigh,
				Message:     fmt.Sprintf("dynamic code evaluation via %q", site.matched),
				FilePath:    path,
				LineNumber:  intPtr(site.lineNum),
				MatchedText: site.matched,
				Context:     site.line,
			})
		}
	}

	return violations
}
