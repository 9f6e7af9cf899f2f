package conversation

import (
	"context"
	"strings"
	"time"

	"bot-gpt/services/chat-api/internal/domain/llm"
	"bot-gpt/services/chat-api/internal/domain/query"
	"bot-gpt/services/chat-api/internal/domain/user"
	"bot-gpt/services/chat-api/internal/infrastructure/logger"
	"bot-gpt/services/chat-api/internal/utils/idgen"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

// contextWindowSize is the number of most recent messages sent to the model.
const contextWindowSize = 20

const (
	// fallbackReplyText substitutes the assistant reply when the gateway
	// fails outright. Gateway failures never propagate to the caller.
	fallbackReplyText = "Sorry, I'm having trouble reaching the model right now. Please try again later."
	emptyReplyText    = "Sorry, no response."
)

// Service handles business logic for conversations and their messages.
type Service struct {
	repo    Repository
	users   user.Repository
	gateway llm.Gateway
}

// NewService creates a new conversation service.
func NewService(repo Repository, users user.Repository, gateway llm.Gateway) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		gateway: gateway,
	}
}

// CreateInput represents the input for creating a conversation.
type CreateInput struct {
	UserEmail    string
	FirstMessage string
	Mode         Mode
	DocumentRefs []string
}

// Page is one window of the global conversation listing.
type Page struct {
	Items   []*Conversation
	Page    int
	Limit   int
	Total   int64
	HasMore bool
}

// Create starts a conversation with the caller's first message and the
// assistant's reply. Exactly two messages are created: the user message,
// then the assistant message built from the gateway result.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Conversation, []*Message, error) {
	if strings.TrimSpace(input.UserEmail) == "" {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "user_email is required", nil, "9e1a2b3c-4d5e-4f6a-7b8c-9d0e1f2a3b4c")
	}
	if strings.TrimSpace(input.FirstMessage) == "" {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "first_message is required and must be a non-empty string", nil, "0f1e2d3c-4b5a-4968-8776-5a4b3c2d1e0f")
	}

	mode := input.Mode
	if mode == "" {
		mode = ModeOpen
	}
	if mode != ModeOpen && mode != ModeGrounded {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "mode must be one of open|grounded", nil, "6d5c4b3a-2918-4076-b5a4-c3d2e1f0a9b8")
	}

	// A missing user is a validation failure here, not a 404: the email is
	// part of the request payload being validated.
	owner, err := s.users.FindByEmail(ctx, user.NormalizeEmail(input.UserEmail))
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve user")
	}
	if owner == nil {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "user not found for provided email", nil, "8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d")
	}

	publicID, err := idgen.GenerateSecureID("conv", 16)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate conversation ID")
	}

	conv := NewConversation(publicID, owner.ID, input.FirstMessage, mode, input.DocumentRefs)
	conv.UserPublicID = owner.PublicID
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}

	userMsg, err := s.appendMessage(ctx, conv, RoleUser, input.FirstMessage, nil, 0)
	if err != nil {
		return nil, nil, err
	}

	result := s.invokeGateway(ctx, llm.Call{
		ConversationID: conv.PublicID,
		Messages:       []llm.ContextMessage{{Role: string(RoleUser), Text: input.FirstMessage}},
		Mode:           string(mode),
		DocumentRefs:   conv.DocumentRefs,
	})

	assistantMsg, err := s.appendAssistantMessage(ctx, conv, result)
	if err != nil {
		return nil, nil, err
	}

	return conv, []*Message{userMsg, assistantMsg}, nil
}

// List returns non-deleted conversations sorted by updatedAt descending.
// Page and limit are clamped regardless of caller input.
func (s *Service) List(ctx context.Context, pagination query.Pagination) (*Page, error) {
	p := query.Normalize(pagination.Page, pagination.Limit)

	items, err := s.repo.FindActive(ctx, p)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	total, err := s.repo.CountActive(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count conversations")
	}

	return &Page{
		Items:   items,
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: int64(p.Offset()+len(items)) < total,
	}, nil
}

// ListForUser returns all of a user's non-deleted conversations, newest
// activity first.
func (s *Service) ListForUser(ctx context.Context, email string) (*user.User, []*Conversation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "email required", nil, "5b6c7d8e-9f0a-41b2-83c4-d5e6f7a8b9c0")
	}

	owner, err := s.users.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve user")
	}
	if owner == nil {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "2c3d4e5f-6a7b-48c9-90d1-e2f3a4b5c6d7")
	}

	items, err := s.repo.FindActiveByUserID(ctx, owner.ID)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}

	return owner, items, nil
}

// Get returns a conversation and all its messages in creation order after
// verifying that userEmail resolves to the owner.
func (s *Service) Get(ctx context.Context, publicID, userEmail string) (*Conversation, []*Message, error) {
	conv, _, err := s.resolveOwned(ctx, publicID, userEmail)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.repo.FindMessages(ctx, conv.ID)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load messages")
	}

	return conv, messages, nil
}

// AddMessage appends the caller's message, obtains the assistant reply for
// the recent context window, and returns both messages.
func (s *Service) AddMessage(ctx context.Context, publicID, userEmail string, role Role, text string) ([]*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "text is required and must be non-empty", nil, "4a5b6c7d-8e9f-40a1-b2c3-d4e5f6a7b8c9")
	}
	if role == "" {
		role = RoleUser
	}
	if !ValidRole(role) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "role must be one of user|assistant|system", nil, "b8c9d0e1-f2a3-44b5-96c7-d8e9f0a1b2c3")
	}

	conv, _, err := s.resolveOwned(ctx, publicID, userEmail)
	if err != nil {
		return nil, err
	}

	msg, err := s.appendMessage(ctx, conv, role, text, nil, 0)
	if err != nil {
		return nil, err
	}

	window, err := s.contextWindow(ctx, conv, role, text)
	if err != nil {
		return nil, err
	}

	result := s.invokeGateway(ctx, llm.Call{
		ConversationID: conv.PublicID,
		Messages:       window,
		Mode:           string(conv.Mode),
		DocumentRefs:   conv.DocumentRefs,
	})

	assistantMsg, err := s.appendAssistantMessage(ctx, conv, result)
	if err != nil {
		return nil, err
	}

	conv.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, conv); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to touch conversation")
	}

	return []*Message{msg, assistantMsg}, nil
}

// Delete marks a conversation deleted. Messages are kept; there is no
// physical removal.
func (s *Service) Delete(ctx context.Context, publicID, userEmail string) error {
	conv, _, err := s.resolveOwned(ctx, publicID, userEmail)
	if err != nil {
		return err
	}

	conv.Status = StatusDeleted
	if err := s.repo.Update(ctx, conv); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete conversation")
	}
	return nil
}

// resolveOwned runs the shared validation and ownership chain: well-formed
// id, present email, existing user and conversation, matching owner.
// Soft-deleted conversations are treated as not found.
func (s *Service) resolveOwned(ctx context.Context, publicID, userEmail string) (*Conversation, *user.User, error) {
	if !idgen.ValidateIDFormat(publicID, "conv") {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "invalid conversation id", nil, "e1f2a3b4-c5d6-47e8-89f0-a1b2c3d4e5f6")
	}
	if strings.TrimSpace(userEmail) == "" {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "user_email is required", nil, "f0a1b2c3-d4e5-46f7-98a9-b0c1d2e3f4a5")
	}

	owner, err := s.users.FindByEmail(ctx, user.NormalizeEmail(userEmail))
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve user")
	}
	if owner == nil {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "a7b8c9d0-e1f2-43a4-85b6-c7d8e9f0a1b2")
	}

	conv, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
	}
	if conv == nil || conv.Status == StatusDeleted {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "c3d4e5f6-a7b8-49c0-91d2-e3f4a5b6c7d8")
	}

	// Ownership is an equality check over opaque identifiers.
	if conv.UserID != owner.ID {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "forbidden: user does not own this conversation", nil, "d9e0f1a2-b3c4-45d6-87e8-f9a0b1c2d3e4")
	}

	return conv, owner, nil
}

// contextWindow builds the model context: the most recent messages in
// ascending order, with the triggering message guaranteed to be last even
// when it fell outside the window.
func (s *Service) contextWindow(ctx context.Context, conv *Conversation, role Role, text string) ([]llm.ContextMessage, error) {
	recent, err := s.repo.FindRecentMessages(ctx, conv.ID, contextWindowSize)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load recent messages")
	}

	window := make([]llm.ContextMessage, 0, len(recent)+1)
	for i := len(recent) - 1; i >= 0; i-- {
		window = append(window, llm.ContextMessage{Role: string(recent[i].Role), Text: recent[i].Text})
	}

	if len(window) == 0 || window[len(window)-1].Text != text {
		window = append(window, llm.ContextMessage{Role: string(role), Text: text})
	}

	return window, nil
}

// invokeGateway calls the model gateway and converts any failure into the
// canned degraded result. This boundary never propagates an error.
func (s *Service) invokeGateway(ctx context.Context, call llm.Call) *llm.Result {
	result, err := s.gateway.CallModel(ctx, call)
	if err != nil || result == nil {
		log := logger.GetLogger()
		log.Error().Err(err).Str("conversation_id", call.ConversationID).Msg("model gateway call failed")
		return &llm.Result{
			Text: fallbackReplyText,
			Meta: map[string]any{"error": true},
		}
	}
	return result
}

func (s *Service) appendMessage(ctx context.Context, conv *Conversation, role Role, text string, meta map[string]any, tokens int) (*Message, error) {
	publicID, err := idgen.GenerateSecureID("msg", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate message ID")
	}

	msg := &Message{
		PublicID:       publicID,
		ConversationID: conv.ID,
		Role:           role,
		Text:           text,
		Meta:           meta,
		Tokens:         tokens,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create message")
	}
	return msg, nil
}

func (s *Service) appendAssistantMessage(ctx context.Context, conv *Conversation, result *llm.Result) (*Message, error) {
	text := result.Text
	if text == "" {
		text = emptyReplyText
	}
	meta := result.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return s.appendMessage(ctx, conv, RoleAssistant, text, meta, result.TokensEstimate)
}
