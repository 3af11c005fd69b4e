package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/types"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"years": {"type": "number", "minimum": 0}
	}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleRankingResult() types.RankingResult {
	top := "Alice Chen"
	return types.RankingResult{
		RunID:     "0b4d5a3c-1f2e-4d6a-9b8c-7e6f5d4c3b2a",
		JobSkills: []string{"docker", "python"},
		RankedCandidates: []types.RankedEntry{{
			Rank: 1,
			ScoredCandidate: types.ScoredCandidate{
				CandidateRecord: types.CandidateRecord{
					CandidateName:     &top,
					Email:             types.StringPtr("alice@example.com"),
					SkillsFound:       []string{"docker", "python", "react"},
					YearsOfExperience: 6.5,
					RelevantSkills:    []string{"docker", "python"},
					MissingSkills:     []string{},
					ExtractionSuccess: true,
				},
				Score: types.ScoreBreakdown{
					SkillScore:        100,
					ExperienceScore:   100,
					FinalScore:        100,
					SkillMatchPercent: 100,
					MatchedSkills:     []string{"docker", "python"},
					MissingSkills:     []string{},
					YearsOfExperience: 6.5,
					Education:         "Not specified",
				},
				GapAnalysis: "Alice Chen is an excellent fit.",
			},
		}},
		Summary: types.RankingSummary{
			TotalCandidates:   1,
			TopScorer:         &top,
			AverageScore:      100,
			ScoreDistribution: types.ScoreDistribution{Excellent: 1},
		},
		TotalProcessed:        1,
		FailedFiles:           []string{},
		ProcessingTimeSeconds: 0.12,
	}
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)
	jsonPath := writeTemp(t, "person.json", `{"name": "Jane", "years": 3}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)
	jsonPath := writeTemp(t, "person.json", `{"years": 3}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_InvalidJSON_WrongType(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)
	jsonPath := writeTemp(t, "person.json", `{"name": "Jane", "years": "three"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "years", validationErr.Errors[0].Field)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeTemp(t, "person.json", `{"name": "Jane"}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "nonexistent_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)

	err := ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "nonexistent_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	schemaPath := writeTemp(t, "person.schema.json", personSchema)
	malformed := writeTemp(t, "malformed.json", "{ invalid json }")

	err := ValidateJSON(schemaPath, malformed)
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateBytes_RankingResultSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath(RankingResultSchema)
	require.NotEmpty(t, schemaPath, "ranking result schema should be resolvable from the package directory")

	data, err := json.Marshal(sampleRankingResult())
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(schemaPath, data))
}

func TestValidateBytes_RankingResultSchema_RejectsBadScores(t *testing.T) {
	schemaPath := ResolveSchemaPath(RankingResultSchema)
	require.NotEmpty(t, schemaPath)

	doc := sampleRankingResult()
	doc.RankedCandidates[0].Score.FinalScore = 120
	doc.RankedCandidates[0].Rank = 0
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	err = ValidateBytes(schemaPath, data)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "ranked_candidates.0.rank")
	assert.Contains(t, fields, "ranked_candidates.0.score.final_score")
}

func TestValidateBytes_CandidateRecordSchema(t *testing.T) {
	schemaPath := ResolveSchemaPath(CandidateRecordSchema)
	require.NotEmpty(t, schemaPath)

	data, err := json.Marshal(types.NewFallbackRecord())
	require.NoError(t, err)
	assert.NoError(t, ValidateBytes(schemaPath, data))

	rec := sampleRankingResult().RankedCandidates[0].CandidateRecord
	rec.YearsOfExperience = 55
	data, err = json.Marshal(rec)
	require.NoError(t, err)
	assert.Error(t, ValidateBytes(schemaPath, data))
}

func TestValidateBytes_MissingSchema(t *testing.T) {
	err := ValidateBytes(filepath.Join(t.TempDir(), "missing.json"), []byte(`{}`))
	assert.ErrorContains(t, err, "schema file not found")
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. age: must be a number")
}

func TestValidateJSON_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := os.ErrNotExist
	err := &SchemaLoadError{Path: "x.json", Message: "boom", Cause: cause}
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "failed to load schema x.json: boom: file does not exist", err.Error())
}
