package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/rules"
)

// remediationHints maps rule (and fault category) names to a one-line fix
// suggestion printed alongside failures.
var remediationHints = map[string]string{
	"export-presence":      "check the bundler's output/library settings; the SDK entry point must be attached to the global object",
	"no-dynamic-eval":      "remove eval()/new Function() call sites or move the offending text into a documented safe-usage context",
	"forbidden-dependency": "mark Node-only modules as external for the browser build or guard them behind an environment probe",
	"build-identity":       "make the build pipeline substitute the build-target placeholder before packaging",
	"security-guard":       "confirm the security guard methods were not tree-shaken out of the browser bundle",
	"read-fault":           "check file permissions and that the dist directory was fully written before verification",
}

// severityMarks are the console symbols per severity.
var severityMarks = map[rules.Severity]string{
	rules.SeverityHigh:    "✖",
	rules.SeverityMedium:  "✖",
	rules.SeverityLow:     "▲",
	rules.SeverityWarning: "▲",
}

// Printer renders finished reports to an injected writer.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintJSON emits the structured report document.
func (p *Printer) PrintJSON(rep *Report) error {
	encoded, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(encoded))
	return err
}

// PrintText emits the human-readable report: counts, violations grouped by
// file, and one remediation hint per distinct rule that produced findings.
//
//nolint:errcheck // writing to a console stream; errors are not recoverable
func (p *Printer) PrintText(rep *Report, strictWarnings bool) {
	fmt.Fprintf(p.out, "%s %s - bundle verification report %s\n", ToolName, ToolVersion, rep.ReportID)
	fmt.Fprintf(p.out, "checks passed: %d   failed: %d   warnings: %d   (%dms)\n\n",
		rep.PassedCount, rep.FailedCount, rep.WarningCount, rep.ElapsedMS)

	if len(rep.Violations) == 0 {
		fmt.Fprintln(p.out, "all rules passed")
		return
	}

	// Violations arrive sorted by (file, rule, line) from Finalize.
	currentFile := ""
	var hintOrder []string
	hinted := make(map[string]bool)
	for _, v := range rep.Violations {
		if v.FilePath != currentFile {
			currentFile = v.FilePath
			fmt.Fprintf(p.out, "%s\n", currentFile)
		}
		mark := severityMarks[v.Severity]
		loc := ""
		if v.LineNumber != nil {
			loc = fmt.Sprintf(":%d", *v.LineNumber)
		}
		fmt.Fprintf(p.out, "  %s [%s] %s%s: %s\n", mark, v.Severity, v.RuleName, loc, v.Message)
		if v.Context != "" {
			fmt.Fprintf(p.out, "      %s\n", strings.TrimSpace(truncate(v.Context, 120)))
		}
		if !hinted[v.RuleName] {
			hinted[v.RuleName] = true
			hintOrder = append(hintOrder, v.RuleName)
		}
	}

	fmt.Fprintln(p.out)
	for _, name := range hintOrder {
		if hint, ok := remediationHints[name]; ok {
			fmt.Fprintf(p.out, "hint (%s): %s\n", name, hint)
		}
	}

	if rep.Success(strictWarnings) {
		fmt.Fprintln(p.out, "\nresult: PASS (warnings only)")
	} else {
		fmt.Fprintln(p.out, "\nresult: FAIL")
	}
}

// truncate shortens s to at most n bytes plus an ellipsis, backing up to a
// rune boundary so multi-byte characters are never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
