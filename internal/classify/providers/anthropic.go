// Package providers contains the LLM backends used for claim extraction.
package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/config"
	"github.com/claimsift/claimsift/internal/store"
)

// Anthropic completes prompts against Anthropic's Messages API.
type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	cache     *store.ExchangeCache
	log       *zap.Logger
}

// NewAnthropic creates an Anthropic-backed provider. cache may be nil.
func NewAnthropic(apiKey, model string, maxTokens int, cache *store.ExchangeCache, log *zap.Logger) *Anthropic {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Anthropic{
		client:    &client,
		model:     model,
		maxTokens: int64(maxTokens),
		cache:     cache,
		log:       log,
	}
}

// Name returns the provider identifier used in config and cached exchanges.
func (p *Anthropic) Name() string { return config.ProviderAnthropic }

// Complete sends the system and user prompts and returns the raw reply text.
func (p *Anthropic) Complete(ctx context.Context, system, user string) (string, error) {
	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		p.saveExchange(system, user, "", err)
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	var reply string
	for _, block := range message.Content {
		if block.Type == "text" {
			reply = block.Text
			break
		}
	}

	p.saveExchange(system, user, reply, nil)

	if reply == "" {
		return "", fmt.Errorf("Claude returned empty response")
	}
	return reply, nil
}

func (p *Anthropic) saveExchange(system, user, reply string, callErr error) {
	if p.cache == nil {
		return
	}
	exchange := store.LLMExchange{
		Timestamp: time.Now(),
		Provider:  p.Name(),
		Model:     p.model,
		System:    system,
		Prompt:    user,
		Response:  reply,
	}
	if callErr != nil {
		exchange.Error = callErr.Error()
	}
	if path, err := p.cache.Save(exchange); err != nil {
		p.log.Warn("failed to cache LLM exchange", zap.Error(err))
	} else {
		p.log.Debug("cached LLM exchange", zap.String("path", path))
	}
}
