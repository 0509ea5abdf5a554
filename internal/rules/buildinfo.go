package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// buildTargetPlaceholder is the token the bundler must replace with the
// concrete build target at packaging time.
const buildTargetPlaceholder = "__BUILD_TARGET__"

// expectedBuildTargets enumerates the values the placeholder may be replaced
// with.
var expectedBuildTargets = []string{"browser", "node", "webworker", "universal"}

var buildTargetMarker = regexp.MustCompile(
	`buildTarget\s*[:=]\s*["'](` + strings.Join(expectedBuildTargets, "|") + `)["']`)

// BuildIdentity verifies the build-identity placeholder was substituted with
// one of the expected target values. Informational only: a missing marker
// never blocks a release on its own.
type BuildIdentity struct{}

// NewBuildIdentity builds the build-identity rule.
func NewBuildIdentity() *BuildIdentity { return &BuildIdentity{} }

func (r *BuildIdentity) Name() string        { return "build-identity" }
func (r *BuildIdentity) Severity() Severity  { return SeverityWarning }
func (r *BuildIdentity) AppliesTo() []string { return []string{"*"} }

func (r *BuildIdentity) Description() string {
	return "bundle should carry a substituted build-identity marker"
}

func (r *BuildIdentity) Evaluate(cleaned, _, path string) []Violation {
	if idx := strings.Index(cleaned, buildTargetPlaceholder); idx >= 0 {
		return []Violation{{
			RuleName:    r.Name(),
			Severity:    SeverityWarning,
			Message:     fmt.Sprintf("build-identity placeholder %s was not replaced", buildTargetPlaceholder),
			FilePath:    path,
			LineNumber:  intPtr(lineNumberAt(cleaned, idx)),
			MatchedText: buildTargetPlaceholder,
		}}
	}

	if !buildTargetMarker.MatchString(cleaned) {
		return []Violation{{
			RuleName: r.Name(),
			Severity: SeverityWarning,
			Message: fmt.Sprintf("no build-identity marker found; expected buildTarget set to one of: %s",
				strings.Join(expectedBuildTargets, ", ")),
			FilePath: path,
		}}
	}

	return nil
}
