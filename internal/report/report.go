// Package report aggregates rule findings into a single result document and
// renders it for humans or machines.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/rules"
)

// ToolName and ToolVersion identify the verifier in emitted reports.
const (
	ToolName    = "distcheck"
	ToolVersion = "1.2.0"
)

// Report is the aggregated outcome of one verification run. FailedCount
// counts high/medium violations, WarningCount counts low/warning ones, and
// PassedCount counts (file, rule) pairs that produced no findings.
type Report struct {
	ReportID     string            `json:"report_id"`
	Tool         string            `json:"tool"`
	Version      string            `json:"version"`
	PassedCount  int               `json:"passed_count"`
	FailedCount  int               `json:"failed_count"`
	WarningCount int               `json:"warning_count"`
	Violations   []rules.Violation `json:"violations"`
	ElapsedMS    int64             `json:"elapsed_ms"`
	GeneratedAt  string            `json:"generated_at"`
}

// New returns an empty report with a fresh identity.
func New() *Report {
	return &Report{
		ReportID:   uuid.NewString(),
		Tool:       ToolName,
		Version:    ToolVersion,
		Violations: []rules.Violation{},
	}
}

// Record adds the outcome of one (file, rule) evaluation. Callers must
// serialize access; the registry holds the aggregation mutex.
func (r *Report) Record(violations []rules.Violation) {
	if len(violations) == 0 {
		r.PassedCount++
		return
	}
	for _, v := range violations {
		if v.Severity.Fails() {
			r.FailedCount++
		} else {
			r.WarningCount++
		}
		r.Violations = append(r.Violations, v)
	}
}

// Finalize stamps the elapsed time and sorts violations by file path, rule
// name, then line so output is deterministic regardless of completion order.
func (r *Report) Finalize(elapsed time.Duration) {
	r.ElapsedMS = elapsed.Milliseconds()
	r.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	r.SortViolations()
}

// SortViolations restores deterministic ordering; callers that append
// violations after Finalize (e.g. read faults) re-sort through this.
func (r *Report) SortViolations() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.RuleName != b.RuleName {
			return a.RuleName < b.RuleName
		}
		return lineOf(a) < lineOf(b)
	})
}

// Success reports whether the run passed. Warnings only fail the run when
// the caller asked for strict mode.
func (r *Report) Success(strictWarnings bool) bool {
	if r.FailedCount > 0 {
		return false
	}
	if strictWarnings && r.WarningCount > 0 {
		return false
	}
	return true
}

// ExitCode maps the report outcome onto the process exit status.
func (r *Report) ExitCode(strictWarnings bool) int {
	if r.Success(strictWarnings) {
		return 0
	}
	return 1
}

func lineOf(v rules.Violation) int {
	if v.LineNumber == nil {
		return 0
	}
	return *v.LineNumber
}
