package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile("report.schema.json")
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestReportSchema_HasSchemaShape(t *testing.T) {
	data, err := os.ReadFile("report.schema.json")
	require.NoError(t, err)

	var schemaObj map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schemaObj))

	assert.Contains(t, schemaObj, "$schema")
	assert.Contains(t, schemaObj, "type")
	assert.Contains(t, schemaObj, "properties")
	assert.Contains(t, schemaObj, "$defs")

	props, ok := schemaObj["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, field := range []string{"report_id", "passed_count", "failed_count", "warning_count", "violations"} {
		assert.Contains(t, props, field)
	}
}
