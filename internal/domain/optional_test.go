package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	var body struct {
		Genre  Optional[string] `json:"genre"`
		Year   Optional[int]    `json:"published_year"`
		Title  Optional[string] `json:"title"`
		Author Optional[int64]  `json:"author_id"`
	}

	err := json.Unmarshal([]byte(`{"genre": null, "published_year": 1967, "title": ""}`), &body)
	require.NoError(t, err)

	assert.True(t, body.Genre.IsNull())
	assert.True(t, body.Year.Set)
	require.NotNil(t, body.Year.Value)
	assert.Equal(t, 1967, *body.Year.Value)
	assert.True(t, body.Title.Set)
	assert.False(t, body.Title.IsNull())
	assert.False(t, body.Author.Set)
}

func TestOptional_UnmarshalJSONTypeMismatch(t *testing.T) {
	var body struct {
		Year Optional[int] `json:"published_year"`
	}
	err := json.Unmarshal([]byte(`{"published_year": "soon"}`), &body)
	assert.Error(t, err)
}

func TestFirstSet(t *testing.T) {
	assert.Equal(t, Some("a"), FirstSet(Some("a"), Some("b")))
	assert.Equal(t, Null[string](), FirstSet(Optional[string]{}, Null[string](), Some("b")))
	assert.False(t, FirstSet[string]().Set)
}
