// Package llmclient implements the model gateway against any
// OpenAI-compatible chat-completions endpoint.
package llmclient

import (
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"bot-gpt/services/chat-api/internal/domain/llm"
	"bot-gpt/services/chat-api/internal/infrastructure/logger"
	"bot-gpt/services/chat-api/internal/utils/httpclients"
	chatclient "bot-gpt/services/chat-api/internal/utils/httpclients/chat"
)

const systemInstruction = "You are an assistant. Answer concisely."

const (
	unconfiguredText = "Model provider not configured."
	unreachableText  = "Sorry, I'm having trouble reaching the model right now."
)

// Config carries the provider settings the gateway needs. ProviderURL is
// the full chat-completions endpoint URL.
type Config struct {
	ProviderURL string
	APIKey      string
	Model       string
	Timeout     time.Duration
}

// OpenAIGateway makes one best-effort chat-completion call per request.
// Provider failures are absorbed into degraded results so callers never
// see the provider's errors.
type OpenAIGateway struct {
	cfg    Config
	client *chatclient.ChatCompletionClient
}

var _ llm.Gateway = (*OpenAIGateway)(nil)

func NewOpenAIGateway(cfg Config) *OpenAIGateway {
	client := httpclients.NewClient("ModelProviderClient")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &OpenAIGateway{
		cfg:    cfg,
		client: chatclient.NewChatCompletionClient(client, "ModelProviderClient", cfg.ProviderURL),
	}
}

// CallModel translates the context window into a chat-completion request.
// When the provider is not configured it returns the canned placeholder
// without any network activity.
func (g *OpenAIGateway) CallModel(ctx context.Context, call llm.Call) (*llm.Result, error) {
	if strings.TrimSpace(g.cfg.ProviderURL) == "" || strings.TrimSpace(g.cfg.Model) == "" {
		return &llm.Result{
			Text: unconfiguredText,
			Meta: map[string]any{"error": "missing_provider"},
		}, nil
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(call.Messages)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemInstruction,
	})

	if call.Mode == "grounded" && len(call.DocumentRefs) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "[DOCUMENTS]\n" + strings.Join(call.DocumentRefs, "\n"),
		})
	}

	for _, m := range call.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, g.cfg.APIKey, openai.ChatCompletionRequest{
		Model:    g.cfg.Model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().
			Err(err).
			Str("conversation_id", call.ConversationID).
			Str("model", g.cfg.Model).
			Msg("model provider call failed")
		return &llm.Result{
			Text: unreachableText,
			Meta: map[string]any{"error": true, "details": err.Error()},
		}, nil
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	return &llm.Result{
		Text:           text,
		Meta:           map[string]any{"providerResponse": resp},
		TokensEstimate: resp.Usage.CompletionTokens,
	}, nil
}
