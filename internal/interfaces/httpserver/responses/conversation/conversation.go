package conversation

import (
	"time"

	domainconversation "bot-gpt/services/chat-api/internal/domain/conversation"
	userresponses "bot-gpt/services/chat-api/internal/interfaces/httpserver/responses/user"
	"bot-gpt/services/chat-api/internal/utils/functional"
)

// Conversation is the public representation of a conversation record.
type Conversation struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Mode         string    `json:"mode"`
	DocumentRefs []string  `json:"documentRefs"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewConversation(c *domainconversation.Conversation) Conversation {
	return Conversation{
		ID:           c.PublicID,
		UserID:       c.UserPublicID,
		Title:        c.Title,
		Mode:         string(c.Mode),
		DocumentRefs: c.DocumentRefs,
		State:        string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// Message is the public representation of a message record.
type Message struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversationId"`
	Role           string         `json:"role"`
	Text           string         `json:"text"`
	Meta           map[string]any `json:"meta,omitempty"`
	Tokens         int            `json:"tokens"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func NewMessage(m *domainconversation.Message, conversationPublicID string) Message {
	return Message{
		ID:             m.PublicID,
		ConversationID: conversationPublicID,
		Role:           string(m.Role),
		Text:           m.Text,
		Meta:           m.Meta,
		Tokens:         m.Tokens,
		CreatedAt:      m.CreatedAt,
	}
}

func NewMessages(msgs []*domainconversation.Message, conversationPublicID string) []Message {
	return functional.Map(msgs, func(m *domainconversation.Message) Message {
		return NewMessage(m, conversationPublicID)
	})
}

// ConversationWithMessagesResponse wraps a conversation together with its
// messages, used by both create and single-conversation fetch.
type ConversationWithMessagesResponse struct {
	Conversation Conversation `json:"conversation"`
	Messages     []Message    `json:"messages"`
}

func NewConversationWithMessagesResponse(c *domainconversation.Conversation, msgs []*domainconversation.Message) *ConversationWithMessagesResponse {
	return &ConversationWithMessagesResponse{
		Conversation: NewConversation(c),
		Messages:     NewMessages(msgs, c.PublicID),
	}
}

// MessagesResponse wraps the two messages produced by an append.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

func NewMessagesResponse(msgs []*domainconversation.Message, conversationPublicID string) *MessagesResponse {
	return &MessagesResponse{Messages: NewMessages(msgs, conversationPublicID)}
}

// ConversationListResponse is the paginated global listing.
type ConversationListResponse struct {
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"hasMore"`
	Items   []Conversation `json:"items"`
}

func NewConversationListResponse(page *domainconversation.Page) *ConversationListResponse {
	return &ConversationListResponse{
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   page.Total,
		HasMore: page.HasMore,
		Items:   functional.Map(page.Items, NewConversation),
	}
}

// UserConversationListResponse is the per-user listing.
type UserConversationListResponse struct {
	User  userresponses.User `json:"user"`
	Total int                `json:"total"`
	Items []Conversation     `json:"items"`
}
