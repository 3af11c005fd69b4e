package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"candidate_record.schema.json",
	"ranking_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "required")
		})
	}
}

func TestSchemaFiles_CompileAndRejectEmptyDocument(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err)

			err = schemas.ValidateJSONString(string(data), `{}`)
			require.Error(t, err)
			_, ok := err.(*schemas.ValidationError)
			assert.True(t, ok, "empty document should fail validation, not schema loading: %v", err)
		})
	}
}

func TestRankingResultSchema_EmptyBatch(t *testing.T) {
	data, err := os.ReadFile("ranking_result.schema.json")
	require.NoError(t, err)

	doc := `{
		"run_id": "0b4d5a3c-1f2e-4d6a-9b8c-7e6f5d4c3b2a",
		"job_skills": [],
		"ranked_candidates": [],
		"summary": {
			"total_candidates": 0,
			"top_scorer": null,
			"average_score": 0,
			"score_distribution": {"excellent(80+)": 0, "good(60-79)": 0, "average(40-59)": 0, "weak(<40)": 0}
		},
		"total_processed": 0,
		"failed_count": 2,
		"failed_files": ["a.pdf", "b.pdf"],
		"processing_time_seconds": 0.01
	}`
	assert.NoError(t, schemas.ValidateJSONString(string(data), doc))
}

func TestRankingResultSchema_RejectsDuplicateSkills(t *testing.T) {
	data, err := os.ReadFile("ranking_result.schema.json")
	require.NoError(t, err)

	doc := `{
		"run_id": "0b4d5a3c-1f2e-4d6a-9b8c-7e6f5d4c3b2a",
		"job_skills": ["python", "python"],
		"ranked_candidates": [],
		"summary": {
			"total_candidates": 0,
			"top_scorer": null,
			"average_score": 0,
			"score_distribution": {"excellent(80+)": 0, "good(60-79)": 0, "average(40-59)": 0, "weak(<40)": 0}
		},
		"total_processed": 0,
		"failed_count": 0,
		"failed_files": [],
		"processing_time_seconds": 0
	}`
	err = schemas.ValidateJSONString(string(data), doc)
	require.Error(t, err)
	validationErr, ok := err.(*schemas.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "job_skills", validationErr.Errors[0].Field)
}
