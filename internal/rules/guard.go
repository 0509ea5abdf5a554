package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// guardPrimary are the guard method-name fragments a browser bundle is
// expected to carry verbatim.
var guardPrimary = []*regexp.Regexp{
	regexp.MustCompile(`\bsanitizeInput\b`),
	regexp.MustCompile(`\bvalidateOrigin\b`),
	regexp.MustCompile(`\ballowedOrigins\b`),
	regexp.MustCompile(`\benforceSecureTransport\b`),
}

// guardSecondary are looser fragments that survive most minifier string
// mangling. A hit here without a primary hit means the guards are probably
// present but renamed, which needs manual review rather than a hard failure.
var guardSecondary = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sanitize`),
	regexp.MustCompile(`(?i)allowed[-_]?origins?`),
	regexp.MustCompile(`(?i)origin\s*[!=]==?`),
	regexp.MustCompile(`https:`),
}

// SecurityGuard verifies a browser bundle retained its client-side security
// guards through bundling and minification.
type SecurityGuard struct{}

// NewSecurityGuard builds the security-guard presence rule.
func NewSecurityGuard() *SecurityGuard { return &SecurityGuard{} }

func (r *SecurityGuard) Name() string        { return "security-guard" }
func (r *SecurityGuard) Severity() Severity  { return SeverityHigh }
func (r *SecurityGuard) AppliesTo() []string { return []string{"*browser*"} }

func (r *SecurityGuard) Description() string {
	return "browser bundle must retain its security guard methods"
}

func (r *SecurityGuard) Evaluate(cleaned, _, path string) []Violation {
	for _, p := range guardPrimary {
		if p.MatchString(cleaned) {
			return nil
		}
	}

	// Primary set empty: fall back to the looser set before escalating.
	var partial []string
	for _, p := range guardSecondary {
		if p.MatchString(cleaned) {
			partial = append(partial, p.String())
		}
	}

	if len(partial) > 0 {
		// Downgrade, never upgrade: possible minification-induced mangling.
		return []Violation{{
			RuleName: r.Name(),
			Severity: SeverityWarning,
			Message: fmt.Sprintf("security guards not found verbatim but %d looser pattern(s) matched (%s); "+
				"possible minification mangling, review manually", len(partial), strings.Join(partial, ", ")),
			FilePath: path,
		}}
	}

	return []Violation{{
		RuleName: r.Name(),
		Severity: SeverityHigh,
		Message:  "no security guard present: expected sanitizeInput, validateOrigin, allowedOrigins, or enforceSecureTransport",
		FilePath: path,
	}}
}
