package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(5, 0))
	assert.Equal(t, 3, TotalPages(20.5, 10))
	assert.Equal(t, 0, TotalPages(-7, 10))
	assert.Equal(t, math.MaxInt32, TotalPages(1e300, 10))
}

func TestPageResponseUnmarshal(t *testing.T) {
	t.Run("full envelope", func(t *testing.T) {
		var resp PageResponse
		require.NoError(t, json.Unmarshal([]byte(`{"data":[{"id":"a"},{"id":"b"}],"count":23}`), &resp))

		assert.Len(t, resp.Items(), 2)
		assert.Equal(t, 23.0, resp.Count)
		assert.True(t, resp.HasCount)
	})

	t.Run("missing data and count", func(t *testing.T) {
		var resp PageResponse
		require.NoError(t, json.Unmarshal([]byte(`{}`), &resp))

		assert.NotNil(t, resp.Items())
		assert.Empty(t, resp.Items())
		assert.Equal(t, 0.0, resp.Count)
		assert.False(t, resp.HasCount)
	})

	t.Run("null data", func(t *testing.T) {
		var resp PageResponse
		require.NoError(t, json.Unmarshal([]byte(`{"data":null,"count":0}`), &resp))

		assert.Empty(t, resp.Items())
		assert.True(t, resp.HasCount)
	})

	t.Run("numeric string count", func(t *testing.T) {
		var resp PageResponse
		require.NoError(t, json.Unmarshal([]byte(`{"data":[{"id":"a"}],"count":"23"}`), &resp))

		assert.Len(t, resp.Items(), 1)
		assert.Equal(t, 23.0, resp.Count)
		assert.True(t, resp.HasCount)
		assert.Equal(t, 3, TotalPages(resp.Count, 10))
	})

	t.Run("non-numeric count keeps data", func(t *testing.T) {
		for _, count := range []string{`"many"`, `"NaN"`, `true`, `{"n":1}`, `[1]`} {
			var resp PageResponse
			require.NoError(t, json.Unmarshal([]byte(`{"data":[{"id":"a"},{"id":"b"}],"count":`+count+`}`), &resp), count)

			assert.Len(t, resp.Items(), 2, count)
			assert.Equal(t, 0.0, resp.Count, count)
			assert.False(t, resp.HasCount, count)
		}
	})

	t.Run("fractional count", func(t *testing.T) {
		var resp PageResponse
		require.NoError(t, json.Unmarshal([]byte(`{"data":[],"count":20.5}`), &resp))

		assert.Equal(t, 3, TotalPages(resp.Count, 10))
	})

	t.Run("not json", func(t *testing.T) {
		var resp PageResponse
		assert.Error(t, json.Unmarshal([]byte(`<html>`), &resp))
	})
}

func TestPageResponseItemsOnNil(t *testing.T) {
	var resp *PageResponse
	assert.Equal(t, []Property{}, resp.Items())
}
