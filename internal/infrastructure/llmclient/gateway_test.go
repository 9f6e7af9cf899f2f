package llmclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"

	"bot-gpt/services/chat-api/internal/domain/llm"
	"bot-gpt/services/chat-api/internal/infrastructure/llmclient"
)

func TestCallModelMissingProvider(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	tests := []struct {
		name string
		cfg  llmclient.Config
	}{
		{"no url", llmclient.Config{Model: "test-model"}},
		{"no model", llmclient.Config{ProviderURL: server.URL}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := llmclient.NewOpenAIGateway(tt.cfg)

			result, err := gateway.CallModel(context.Background(), llm.Call{
				Messages: []llm.ContextMessage{{Role: "user", Text: "hi"}},
			})
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if result.Text != "Model provider not configured." {
				t.Errorf("text = %q", result.Text)
			}
			if result.Meta["error"] != "missing_provider" {
				t.Errorf("meta = %v, want missing_provider", result.Meta)
			}
		})
	}

	if hits != 0 {
		t.Errorf("unconfigured gateway made %d network calls", hits)
	}
}

func TestCallModelSuccess(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "the reply"}},
			},
			Usage: openai.Usage{CompletionTokens: 7},
		})
	}))
	defer server.Close()

	gateway := llmclient.NewOpenAIGateway(llmclient.Config{
		ProviderURL: server.URL,
		APIKey:      "secret",
		Model:       "test-model",
	})

	result, err := gateway.CallModel(context.Background(), llm.Call{
		ConversationID: "conv_abc",
		Mode:           "grounded",
		DocumentRefs:   []string{"doc-1", "doc-2"},
		Messages: []llm.ContextMessage{
			{Role: "user", Text: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}

	if result.Text != "the reply" {
		t.Errorf("text = %q", result.Text)
	}
	if result.TokensEstimate != 7 {
		t.Errorf("tokens = %d, want 7", result.TokensEstimate)
	}
	if _, ok := result.Meta["providerResponse"]; !ok {
		t.Errorf("meta = %v, want providerResponse", result.Meta)
	}

	// System instruction, documents block, then the context window.
	if len(received.Messages) != 3 {
		t.Fatalf("provider received %d messages, want 3", len(received.Messages))
	}
	if received.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", received.Messages[0].Role)
	}
	if received.Messages[1].Content != "[DOCUMENTS]\ndoc-1\ndoc-2" {
		t.Errorf("documents block = %q", received.Messages[1].Content)
	}
	if received.Messages[2].Content != "hello" {
		t.Errorf("context message = %q", received.Messages[2].Content)
	}
	if received.Model != "test-model" {
		t.Errorf("model = %q", received.Model)
	}
}

func TestCallModelProviderErrorIsAbsorbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream on fire", http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := llmclient.NewOpenAIGateway(llmclient.Config{
		ProviderURL: server.URL,
		Model:       "test-model",
	})

	result, err := gateway.CallModel(context.Background(), llm.Call{
		Messages: []llm.ContextMessage{{Role: "user", Text: "hi"}},
	})
	if err != nil {
		t.Fatalf("provider failure must not surface as error, got %v", err)
	}
	if result.Text != "Sorry, I'm having trouble reaching the model right now." {
		t.Errorf("text = %q", result.Text)
	}
	if flagged, _ := result.Meta["error"].(bool); !flagged {
		t.Errorf("meta = %v, want error flag", result.Meta)
	}
	if result.Meta["details"] == nil {
		t.Errorf("meta = %v, want failure details", result.Meta)
	}
}
