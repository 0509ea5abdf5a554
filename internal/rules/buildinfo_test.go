package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIdentity_SubstitutedMarkerPasses(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"colon_browser", `var cfg = { buildTarget: "browser" };`},
		{"assign_node", `this.buildTarget = 'node';`},
		{"minified", `buildTarget:"webworker"`},
	}

	rule := NewBuildIdentity()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, rule.Evaluate(tc.src, tc.src, "sdk.js"))
		})
	}
}

func TestBuildIdentity_UnreplacedPlaceholder(t *testing.T) {
	rule := NewBuildIdentity()
	src := "var x = 1;\nvar cfg = { buildTarget: \"__BUILD_TARGET__\" };"

	violations := rule.Evaluate(src, src, "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
	assert.Contains(t, violations[0].Message, "__BUILD_TARGET__")
	require.NotNil(t, violations[0].LineNumber)
	assert.Equal(t, 2, *violations[0].LineNumber)
}

func TestBuildIdentity_MissingMarker(t *testing.T) {
	rule := NewBuildIdentity()
	violations := rule.Evaluate("var x = 1;", "var x = 1;", "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
	assert.Contains(t, violations[0].Message, "browser")
}

func TestBuildIdentity_UnexpectedValueIsMissing(t *testing.T) {
	rule := NewBuildIdentity()
	src := `var cfg = { buildTarget: "toaster" };`
	violations := rule.Evaluate(src, src, "sdk.js")
	require.Len(t, violations, 1)
	assert.Equal(t, SeverityWarning, violations[0].Severity)
}

func TestBuildIdentity_NeverBlocks(t *testing.T) {
	rule := NewBuildIdentity()
	assert.Equal(t, SeverityWarning, rule.Severity())
	assert.False(t, rule.Severity().Fails())
}
