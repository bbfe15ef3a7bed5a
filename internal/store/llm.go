// Package store holds the on-disk debug cache of LLM exchanges.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// LLMExchange is a prompt/response pair recorded for debugging prompt
// changes and flaky replies.
type LLMExchange struct {
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	System    string    `json:"system"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Error     string    `json:"error,omitempty"`
}

// ExchangeCache writes exchanges as timestamped JSON files under one
// directory. A nil cache is valid and records nothing.
type ExchangeCache struct {
	dir string
}

// NewExchangeCache creates a cache rooted at dir.
func NewExchangeCache(dir string) *ExchangeCache {
	return &ExchangeCache{dir: dir}
}

// Save serializes the exchange to a timestamped file and returns its path.
func (c *ExchangeCache) Save(exchange LLMExchange) (string, error) {
	if c == nil {
		return "", nil
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", err
	}

	// Dashes instead of colons for filesystem compatibility.
	name := exchange.Timestamp.Format("2006-01-02T15-04-05.000") + ".json"
	path := filepath.Join(c.dir, name)

	data, err := json.MarshalIndent(exchange, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
