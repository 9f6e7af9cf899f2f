package dbschema

import (
	"gorm.io/datatypes"

	"bot-gpt/services/chat-api/internal/domain/conversation"
	"bot-gpt/services/chat-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Message represents the database schema for conversation messages.
// Rows are append-only; ordering is by created_at ascending.
type Message struct {
	BaseModel
	PublicID       string            `gorm:"type:varchar(50);uniqueIndex;not null"`
	ConversationID uint              `gorm:"index:idx_message_conversation_created;not null"`
	Conversation   Conversation      `gorm:"foreignKey:ConversationID"`
	Role           conversation.Role `gorm:"type:varchar(20);not null"`
	Text           string            `gorm:"type:text;not null"`
	Meta           datatypes.JSONMap `gorm:"type:jsonb"`
	Tokens         int               `gorm:"not null;default:0"`
}

// NewSchemaMessage converts a domain message into a schema instance.
func NewSchemaMessage(m *conversation.Message) *Message {
	if m == nil {
		return nil
	}

	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Text:           m.Text,
		Meta:           datatypes.JSONMap(m.Meta),
		Tokens:         m.Tokens,
	}
}

// EtoD converts a schema message back to the domain representation.
func (m *Message) EtoD() *conversation.Message {
	if m == nil {
		return nil
	}

	return &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           m.Role,
		Text:           m.Text,
		Meta:           map[string]any(m.Meta),
		Tokens:         m.Tokens,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
