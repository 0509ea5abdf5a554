package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/scanner"
)

func TestDynamicEval_FlagsDirectCall(t *testing.T) {
	rule := NewDynamicEval()
	src := "function run(p) {\n  return eval(p);\n}"

	violations := rule.Evaluate(src, src, "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityHigh, violations[0].Severity)
	assert.Equal(t, "no-dynamic-eval", violations[0].RuleName)
	require.NotNil(t, violations[0].LineNumber)
	assert.Equal(t, 2, *violations[0].LineNumber)
	assert.Contains(t, violations[0].MatchedText, "eval")
}

func TestDynamicEval_FlagsFunctionConstructor(t *testing.T) {
	rule := NewDynamicEval()
	src := `const f = new Function("a", "return a");`

	violations := rule.Evaluate(src, src, "sdk.js")
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].MatchedText, "Function")
}

func TestDynamicEval_CommentedCallIsClean(t *testing.T) {
	// The call text lives in a comment; after stripping it is gone.
	raw := "// TODO: call eval() later\nconst x = 1;"
	cleaned := scanner.Strip(raw)

	rule := NewDynamicEval()
	assert.Empty(t, rule.Evaluate(cleaned, raw, "sdk.js"))
}

func TestDynamicEval_QuotedErrorMessageIsWhitelisted(t *testing.T) {
	raw := `const msg = "eval() is forbidden here";`
	cleaned := scanner.Strip(raw)

	rule := NewDynamicEval()
	assert.Empty(t, rule.Evaluate(cleaned, raw, "sdk.js"))
}

func TestDynamicEval_SafetyCheckIdentifierIsWhitelisted(t *testing.T) {
	raw := "function safetyCheck() { return typeof eval === 'function'; }\nif (noEval) eval(x);"
	cleaned := scanner.Strip(raw)

	rule := NewDynamicEval()
	assert.Empty(t, rule.Evaluate(cleaned, raw, "sdk.js"))
}

func TestDynamicEval_ContextWindowWhitelisting(t *testing.T) {
	// The whitelist phrase is on a different line but inside the 200-char
	// raw context window around the match.
	raw := "// this block is a safety-check for blocked dynamic code\n" +
		"eval(probe);"
	cleaned := scanner.Strip(raw)

	rule := NewDynamicEval()
	assert.Empty(t, rule.Evaluate(cleaned, raw, "sdk.js"))
}

func TestDynamicEval_FarAwayWhitelistDoesNotApply(t *testing.T) {
	// Same phrase, but pushed beyond the context radius.
	padding := strings.Repeat("var pad_pad_pad = 1;\n", 30) // well over 200 chars
	raw := "// safety-check lives here\n" + padding + "eval(probe);"
	cleaned := scanner.Strip(raw)

	rule := NewDynamicEval()
	violations := rule.Evaluate(cleaned, raw, "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityHigh, violations[0].Severity)
}

func TestDynamicEval_DistantCommentMentioningEvalDoesNotExcuse(t *testing.T) {
	// A comment hundreds of characters above the call repeats the matched
	// text and a whitelist phrase. The finding must be anchored at the real
	// call, far outside that comment's reach, and still flag.
	padding := strings.Repeat("var pad_pad_pad = 1;\n", 27) // well over 200 chars
	raw := "// eval() is not allowed in bundles\n" + padding + "eval(payload);\n"
	cleaned := scanner.Strip(raw)

	rule := NewDynamicEval()
	violations := rule.Evaluate(cleaned, raw, "sdk.browser.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityHigh, violations[0].Severity)
	require.NotNil(t, violations[0].LineNumber)
	assert.Equal(t, 29, *violations[0].LineNumber)
	assert.Equal(t, "eval(payload);", violations[0].Context)
}

func TestDynamicEval_MultipleFindingsReported(t *testing.T) {
	src := "eval(a);\n" + strings.Repeat("x();\n", 30) + "eval(b);"

	rule := NewDynamicEval()
	violations := rule.Evaluate(src, src, "sdk.js")
	require.Len(t, violations, 2)
	assert.Equal(t, 1, *violations[0].LineNumber)
	assert.Equal(t, 32, *violations[1].LineNumber)
}
