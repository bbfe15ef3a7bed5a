// Package classify turns post text into structured misinformation claims by
// way of an external LLM.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/classify/providers"
	"github.com/claimsift/claimsift/internal/config"
	"github.com/claimsift/claimsift/internal/store"
	"github.com/claimsift/claimsift/internal/types"
)

// parseErrorMsg is surfaced when the model's reply is not valid JSON; the
// raw reply is kept in the summary so the user still sees something.
const parseErrorMsg = "The model returned a response that could not be parsed as structured data. The raw response is shown in 'summary'."

// Provider is a minimal single-turn LLM client.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewProvider builds the provider named in the config.
func NewProvider(cfg config.ClassifyConfig, cache *store.ExchangeCache, logger *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return providers.NewAnthropic(cfg.APIKey, cfg.Model, cfg.MaxTokens, cache, logger), nil
	case config.ProviderOpenAI:
		return providers.NewOpenAI(cfg.APIKey, cfg.Model, cfg.MaxTokens, cache, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}

// Extractor sends post text to the LLM and parses the structured reply.
type Extractor struct {
	provider Provider
	log      *zap.Logger
}

// NewExtractor creates an extractor over the provider.
func NewExtractor(provider Provider, logger *zap.Logger) *Extractor {
	return &Extractor{provider: provider, log: logger}
}

// ExtractAndClassify runs one analysis turn. It never returns a Go error:
// provider failures and unparseable replies both come back as a well-formed
// AnalysisResult with the Error field set.
func (e *Extractor) ExtractAndClassify(ctx context.Context, text, url string) types.AnalysisResult {
	reply, err := e.provider.Complete(ctx, systemPrompt, buildUserMessage(text, url))
	if err != nil {
		e.log.Warn("classification call failed", zap.Error(err))
		return types.AnalysisResult{
			Claims: []types.Claim{},
			Error:  fmt.Sprintf("Claim extraction failed: %v", err),
		}
	}
	return parseReply(reply)
}

// parseReply decodes the model's JSON, tolerating a wrapping markdown code
// fence. A reply that cannot be decoded degrades to an empty claim list
// with the raw text as summary.
func parseReply(raw string) types.AnalysisResult {
	raw = strings.TrimSpace(raw)

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(stripFences(raw)), &result); err != nil {
		return types.AnalysisResult{
			Claims:  []types.Claim{},
			Summary: raw,
			Error:   parseErrorMsg,
		}
	}
	if result.Claims == nil {
		result.Claims = []types.Claim{}
	}
	return result
}

// stripFences removes a wrapping code fence: the opening line (with any
// language tag) and the trailing fence.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
