package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectParse(t *testing.T) {
	v, err := JSON(`{"x":1}`)
	require.NoError(t, err)

	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), m["x"])
}

func TestFencedBlock(t *testing.T) {
	v, err := JSON("```json\n[{\"title\":\"a\",\"url\":\"b\"}]\n```")
	require.NoError(t, err)

	arr, ok := v.([]interface{})
	require.True(t, ok)
	require.Len(t, arr, 1)

	item := arr[0].(map[string]interface{})
	assert.Equal(t, "a", item["title"])
	assert.Equal(t, "b", item["url"])
}

func TestFencedBlockWithoutLanguageTag(t *testing.T) {
	v, err := JSON("Here you go:\n```\n{\"ok\":true}\n```\nanything else?")
	require.NoError(t, err)

	m := v.(map[string]interface{})
	assert.Equal(t, true, m["ok"])
}

func TestBoundaryFallback(t *testing.T) {
	v, err := JSON(`noise {"x":1} trailing`)
	require.NoError(t, err)

	m := v.(map[string]interface{})
	assert.Equal(t, float64(1), m["x"])
}

func TestBoundaryFallbackArray(t *testing.T) {
	v, err := JSON(`the model says: [1, 2, 3] which is the answer`)
	require.NoError(t, err)

	arr := v.([]interface{})
	assert.Len(t, arr, 3)
}

func TestNoJSONAtAll(t *testing.T) {
	_, err := JSON("not json at all")
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "not json at all", extErr.Raw)
}

func TestEarliestStrategyWins(t *testing.T) {
	// Direct parse succeeds, so the fenced block inside the string value
	// must not be considered.
	v, err := JSON(`{"note":"see [1,2] inside"}`)
	require.NoError(t, err)

	m := v.(map[string]interface{})
	assert.Equal(t, "see [1,2] inside", m["note"])
}

func TestBrokenFenceFallsThroughToBoundary(t *testing.T) {
	// The fenced interior is not valid JSON, but the bracket scan still
	// finds the object embedded in the surrounding prose.
	v, err := JSON("```json\nnot-valid\n```\nbut later {\"y\":2} appears")
	require.NoError(t, err)

	m := v.(map[string]interface{})
	assert.Equal(t, float64(2), m["y"])
}

func TestMismatchedBrackets(t *testing.T) {
	_, err := JSON("opens [ but never closes")
	assert.Error(t, err)
}
