// Package llm defines the boundary between conversation logic and the
// external model provider.
package llm

import "context"

// ContextMessage is one role-tagged entry of the model context window.
// Role uses the wire values "user", "assistant" and "system".
type ContextMessage struct {
	Role string
	Text string
}

// Call carries everything needed for a single chat-completion request.
type Call struct {
	ConversationID string
	Messages       []ContextMessage
	Mode           string
	DocumentRefs   []string
}

// Result is the normalized outcome of a model call. A degraded provider
// (unconfigured, unreachable, errored) still yields a Result; Meta carries
// the raw provider payload or error details.
type Result struct {
	Text           string
	Meta           map[string]any
	TokensEstimate int
}

// Gateway translates internal message context into a provider
// chat-completion call and normalizes its response. Implementations make a
// single best-effort attempt per call with no retries.
type Gateway interface {
	CallModel(ctx context.Context, call Call) (*Result, error)
}
