package conversation

import (
	"context"
	"time"

	"bot-gpt/services/chat-api/internal/domain/query"
)

// ===============================================
// Conversation Types
// ===============================================

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
	StatusDeleted  Status = "deleted"
)

// Mode controls how replies are produced: free-form or grounded on the
// conversation's document references.
type Mode string

const (
	ModeOpen     Mode = "open"
	ModeGrounded Mode = "grounded"
)

// TitleMaxRunes is the length the first user message is cut to for the title.
const TitleMaxRunes = 80

// ===============================================
// Conversation Structure
// ===============================================

type Conversation struct {
	ID           uint
	PublicID     string
	UserID       uint
	UserPublicID string
	Title        string
	Mode         Mode
	DocumentRefs []string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ===============================================
// Conversation Repository
// ===============================================

type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	// FindByPublicID returns (nil, nil) when no conversation matches.
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	// FindActive lists non-deleted conversations sorted by updatedAt descending.
	FindActive(ctx context.Context, pagination query.Pagination) ([]*Conversation, error)
	CountActive(ctx context.Context) (int64, error)
	// FindActiveByUserID lists a user's non-deleted conversations, updatedAt descending.
	FindActiveByUserID(ctx context.Context, userID uint) ([]*Conversation, error)
	Update(ctx context.Context, conv *Conversation) error

	// Message operations. Messages are append-only.
	AddMessage(ctx context.Context, msg *Message) error
	// FindMessages returns all messages of a conversation, createdAt ascending.
	FindMessages(ctx context.Context, conversationID uint) ([]*Message, error)
	// FindRecentMessages returns at most limit messages, createdAt descending.
	FindRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*Message, error)
}

// ===============================================
// Factory Functions
// ===============================================

// NewConversation creates an active conversation owned by the given user.
// The title is derived from the first message, cut to TitleMaxRunes runes.
func NewConversation(publicID string, userID uint, firstMessage string, mode Mode, documentRefs []string) *Conversation {
	if documentRefs == nil {
		documentRefs = []string{}
	}
	now := time.Now()

	return &Conversation{
		PublicID:     publicID,
		UserID:       userID,
		Title:        TitleFrom(firstMessage),
		Mode:         mode,
		DocumentRefs: documentRefs,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TitleFrom derives a conversation title from the first message text.
func TitleFrom(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= TitleMaxRunes {
		return firstMessage
	}
	return string(runes[:TitleMaxRunes])
}
