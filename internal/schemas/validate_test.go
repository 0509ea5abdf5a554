package schemas

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/report"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/rules"
)

func intPtr(v int) *int { return &v }

func TestResolveSchemaPath_FindsRepoSchema(t *testing.T) {
	// Running from internal/schemas, the repo schema is two levels up.
	path := ResolveSchemaPath(ReportSchemaFile)
	require.NotEmpty(t, path, "report schema must be locatable from the package directory")
}

func TestValidateReport_EmittedReportMatchesSchema(t *testing.T) {
	rep := report.New()
	rep.Record([]rules.Violation{{
		RuleName:    "no-dynamic-eval",
		Severity:    rules.SeverityHigh,
		Message:     "dynamic code evaluation",
		FilePath:    "dist/sdk.browser.js",
		LineNumber:  intPtr(3),
		MatchedText: "eval(",
		Context:     "eval(payload)",
	}})
	rep.Record(nil)
	rep.Finalize(7 * time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, report.NewPrinter(&buf).PrintJSON(rep))

	assert.NoError(t, ValidateReport(buf.Bytes()))
}

func TestValidateReport_RejectsBadSeverity(t *testing.T) {
	doc := map[string]any{
		"report_id":     "r1",
		"tool":          "distcheck",
		"version":       "1.2.0",
		"passed_count":  0,
		"failed_count":  1,
		"warning_count": 0,
		"elapsed_ms":    1,
		"generated_at":  "2026-01-01T00:00:00Z",
		"violations": []map[string]any{{
			"rule_name": "x",
			"severity":  "catastrophic",
			"message":   "m",
			"file_path": "f.js",
		}},
	}
	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	err = ValidateReport(encoded)
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestValidateReport_RejectsMissingCounts(t *testing.T) {
	encoded := []byte(`{"report_id": "r1", "tool": "distcheck", "version": "1.2.0"}`)
	assert.Error(t, ValidateReport(encoded))
}
