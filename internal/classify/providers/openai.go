package providers

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/config"
	"github.com/claimsift/claimsift/internal/store"
)

// OpenAI completes prompts against OpenAI's chat completions API.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	cache     *store.ExchangeCache
	log       *zap.Logger
}

// NewOpenAI creates an OpenAI-backed provider. cache may be nil.
func NewOpenAI(apiKey, model string, maxTokens int, cache *store.ExchangeCache, log *zap.Logger) *OpenAI {
	return &OpenAI{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
		cache:     cache,
		log:       log,
	}
}

// Name returns the provider identifier used in config and cached exchanges.
func (p *OpenAI) Name() string { return config.ProviderOpenAI }

// Complete sends the system and user prompts and returns the raw reply text.
func (p *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		p.saveExchange(system, user, "", err)
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		p.saveExchange(system, user, "", nil)
		return "", fmt.Errorf("OpenAI returned empty response")
	}
	reply := resp.Choices[0].Message.Content

	p.saveExchange(system, user, reply, nil)
	return reply, nil
}

func (p *OpenAI) saveExchange(system, user, reply string, callErr error) {
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
