package conversationhandler

import (
	"context"

	"bot-gpt/services/chat-api/internal/domain/conversation"
	"bot-gpt/services/chat-api/internal/domain/query"
	conversationrequests "bot-gpt/services/chat-api/internal/interfaces/httpserver/requests/conversation"
	conversationresponses "bot-gpt/services/chat-api/internal/interfaces/httpserver/responses/conversation"
	userresponses "bot-gpt/services/chat-api/internal/interfaces/httpserver/responses/user"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

// ConversationHandler handles conversation-related HTTP requests
type ConversationHandler struct {
	conversationService *conversation.Service
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationService *conversation.Service) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// CreateConversation starts a conversation from the caller's first message.
func (h *ConversationHandler) CreateConversation(
	ctx context.Context,
	req conversationrequests.CreateConversationRequest,
) (*conversationresponses.ConversationWithMessagesResponse, error) {
	conv, msgs, err := h.conversationService.Create(ctx, conversation.CreateInput{
		UserEmail:    req.UserEmail,
		FirstMessage: req.FirstMessage,
		Mode:         conversation.Mode(req.Mode),
		DocumentRefs: req.DocumentRefs,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create conversation")
	}

	return conversationresponses.NewConversationWithMessagesResponse(conv, msgs), nil
}

// ListConversations returns one page of the global listing.
func (h *ConversationHandler) ListConversations(
	ctx context.Context,
	pagination query.Pagination,
) (*conversationresponses.ConversationListResponse, error) {
	page, err := h.conversationService.List(ctx, pagination)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}

	return conversationresponses.NewConversationListResponse(page), nil
}

// ListConversationsForUser returns all of one user's conversations.
func (h *ConversationHandler) ListConversationsForUser(
	ctx context.Context,
	email string,
) (*conversationresponses.UserConversationListResponse, error) {
	owner, items, err := h.conversationService.ListForUser(ctx, email)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list conversations")
	}

	resp := &conversationresponses.UserConversationListResponse{
		User:  userresponses.NewUser(owner),
		Total: len(items),
		Items: make([]conversationresponses.Conversation, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, conversationresponses.NewConversation(item))
	}
	return resp, nil
}

// GetConversation returns a conversation and its full message history.
func (h *ConversationHandler) GetConversation(
	ctx context.Context,
	conversationID string,
	userEmail string,
) (*conversationresponses.ConversationWithMessagesResponse, error) {
	conv, msgs, err := h.conversationService.Get(ctx, conversationID, userEmail)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get conversation")
	}

	return conversationresponses.NewConversationWithMessagesResponse(conv, msgs), nil
}

// AddMessage appends the caller's message and the assistant reply.
func (h *ConversationHandler) AddMessage(
	ctx context.Context,
	conversationID string,
	req conversationrequests.AddMessageRequest,
) (*conversationresponses.MessagesResponse, error) {
	msgs, err := h.conversationService.AddMessage(ctx, conversationID, req.UserEmail, conversation.Role(req.Role), req.Text)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to add message")
	}

	return conversationresponses.NewMessagesResponse(msgs, conversationID), nil
}

// DeleteConversation soft-deletes a conversation.
func (h *ConversationHandler) DeleteConversation(
	ctx context.Context,
	conversationID string,
	userEmail string,
) error {
	if err := h.conversationService.Delete(ctx, conversationID, userEmail); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to delete conversation")
	}
	return nil
}
