package rules

import (
	"fmt"
	"regexp"
)

// defaultForbiddenDeps are Node-only modules that must never be referenced
// from bundles destined for the browser runtime.
var defaultForbiddenDeps = []string{
	"ws",
	"node-fetch",
	"fs",
	"child_process",
	"dotenv",
	"node:crypto",
	"node:http",
}

// depWhitelist marks safe references: the dependency name quoted inside an
// explanatory message, or guarded by an environment probe.
var depWhitelist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bnot\s+(available|supported|bundled)\b`),
	regexp.MustCompile(`(?i)\bbrowser\s+(build|bundle|environment)\b`),
	regexp.MustCompile(`(?i)\bunsupported\b|\bpolyfill\b`),
	regexp.MustCompile(`typeof\s+(window|process|require)`),
}

// ForbiddenDependency flags require/import references to excluded dependency
// names. It only applies to bundles built for the unprivileged browser
// runtime.
type ForbiddenDependency struct {
	deps     []string
	patterns []*regexp.Regexp
}

// NewForbiddenDependency builds the rule over the given dependency names;
// an empty list falls back to the default Node-only set.
func NewForbiddenDependency(deps []string) *ForbiddenDependency {
	if len(deps) == 0 {
		deps = defaultForbiddenDeps
	}

	var pats []string
	for _, d := range deps {
		escaped := regexp.QuoteMeta(d)
		pats = append(pats,
			`\brequire\s*\(\s*["']`+escaped+`["']\s*\)`,
			`\bfrom\s+["']`+escaped+`["']`,
			`\bimport\s*\(\s*["']`+escaped+`["']\s*\)`,
		)
	}

	return &ForbiddenDependency{deps: deps, patterns: compileAll(pats)}
}

func (r *ForbiddenDependency) Name() string        { return "forbidden-dependency" }
func (r *ForbiddenDependency) Severity() Severity  { return SeverityMedium }
func (r *ForbiddenDependency) AppliesTo() []string { return []string{"*browser*"} }

func (r *ForbiddenDependency) Description() string {
	return "browser bundle must not reference Node-only dependencies"
}

func (r *ForbiddenDependency) Evaluate(_, raw, path string) []Violation {
	var violations []Violation

	finder := newSiteFinder(raw)
	for _, pattern := range r.patterns {
		for _, site := range finder.find(pattern) {
			if site.whitelisted(depWhitelist) {
				continue
			}
			violations = append(violations, Violation{
				RuleName:    r.Name(),
				Severity:    SeverityMedium,
				Message:     fmt.Sprintf("reference to excluded dependency: %s", site.matched),
				FilePath:    path,
				LineNumber:  intPtr(site.lineNum),
				MatchedText: site.matched,
				Context:     site.line,
			})
		}
	}

	return violations
}
