package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPresence_BothPatternsMatch(t *testing.T) {
	rule := NewExportPresence("Foo")
	cleaned := "globalThis.Foo = bar;\nexports.Foo = bar;"

	violations := rule.Evaluate(cleaned, cleaned, "sdk.browser.js")
	assert.Empty(t, violations)
}

func TestExportPresence_SingleMatchSuffices(t *testing.T) {
	testCases := []struct {
		name    string
		cleaned string
	}{
		{"global_this", "globalThis.Foo = factory();"},
		{"window_dot", "window.Foo = factory();"},
		{"window_bracket", `window["Foo"] = factory();`},
		{"window_bracket_single_quote", `window['Foo'] = factory();`},
		{"exports", "exports.Foo = factory();"},
		{"module_exports", "module.exports.Foo = factory();"},
		{"minified_root", "t.Foo=factory()"},
	}

	rule := NewExportPresence("Foo")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, rule.Evaluate(tc.cleaned, tc.cleaned, "sdk.js"))
		})
	}
}

func TestExportPresence_WrongNameFails(t *testing.T) {
	rule := NewExportPresence("Foo")
	cleaned := "window.WrongName = bar;"

	violations := rule.Evaluate(cleaned, cleaned, "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityHigh, violations[0].Severity)
	assert.Equal(t, "export-presence", violations[0].RuleName)
	assert.Contains(t, violations[0].Message, "Foo")
	assert.Contains(t, violations[0].Message, "globalThis.Foo =")
	assert.Equal(t, "sdk.js", violations[0].FilePath)
}

func TestExportPresence_EmptyInputFails(t *testing.T) {
	rule := NewExportPresence("Foo")
	violations := rule.Evaluate("", "", "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityHigh, violations[0].Severity)
}
