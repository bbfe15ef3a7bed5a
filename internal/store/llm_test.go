package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesTimestampedJSON(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "llm")
	cache := NewExchangeCache(dir)

	ts := time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC)
	path, err := cache.Save(LLMExchange{
		Timestamp: ts,
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-20250514",
		System:    "system prompt",
		Prompt:    "user prompt",
		Response:  `{"claims":[]}`,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-06-01T12-30-45.123.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got LLMExchange
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "anthropic", got.Provider)
	assert.Equal(t, "user prompt", got.Prompt)
	assert.Empty(t, got.Error)
}

func TestNilCacheIsNoop(t *testing.T) {
	t.Parallel()

	var cache *ExchangeCache
	path, err := cache.Save(LLMExchange{Timestamp: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, path)
}
