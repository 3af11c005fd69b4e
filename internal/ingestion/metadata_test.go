package ingestion

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Source:    "resumes/jane.pdf",
		Format:    FormatPDF,
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		PageCount: 2,
		Chars:     1500,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &unmarshaled))
	assert.Equal(t, *metadata, unmarshaled)
	assert.Contains(t, string(jsonBytes), `"format": "pdf"`)
}

func TestNewMetadata(t *testing.T) {
	content := strings.Repeat("résumé ", 20)
	m := NewMetadata(content, "a.txt", FormatText)

	assert.Equal(t, "a.txt", m.Source)
	assert.Equal(t, FormatText, m.Format)
	assert.Len(t, m.Hash, 64)
	assert.Equal(t, 140, m.Chars)
	assert.False(t, m.IsScanned)

	_, err := time.Parse(time.RFC3339, m.Timestamp)
	assert.NoError(t, err)
}

func TestNewMetadata_HashDependsOnContent(t *testing.T) {
	a := NewMetadata("Content 1", "x", FormatText)
	b := NewMetadata("Content 1", "y", FormatText)
	c := NewMetadata("Content 2", "x", FormatText)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}
