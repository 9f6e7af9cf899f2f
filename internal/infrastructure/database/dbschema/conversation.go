package dbschema

import (
	"database/sql/driver"
	"encoding/json"

	"bot-gpt/services/chat-api/internal/domain/conversation"
	"bot-gpt/services/chat-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	BaseModel
	PublicID     string              `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID       uint                `gorm:"index:idx_conversation_user_status;not null"`
	User         User                `gorm:"foreignKey:UserID"`
	Title        string              `gorm:"type:varchar(256);not null"`
	Mode         conversation.Mode   `gorm:"type:varchar(20);not null;default:'open'"`
	DocumentRefs JSONStringList      `gorm:"type:jsonb"`
	Status       conversation.Status `gorm:"type:varchar(20);index:idx_conversation_user_status;not null;default:'active'"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// NewSchemaConversation converts a domain conversation into a schema instance.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	if c == nil {
		return nil
	}

	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:     c.PublicID,
		UserID:       c.UserID,
		Title:        c.Title,
		Mode:         c.Mode,
		DocumentRefs: JSONStringList(c.DocumentRefs),
		Status:       c.Status,
	}
}

// EtoD converts a schema conversation back to the domain representation.
// UserPublicID is filled from the preloaded User association when present.
func (c *Conversation) EtoD() *conversation.Conversation {
	if c == nil {
		return nil
	}

	refs := []string(c.DocumentRefs)
	if refs == nil {
		refs = []string{}
	}

	return &conversation.Conversation{
		ID:           c.ID,
		PublicID:     c.PublicID,
		UserID:       c.UserID,
		UserPublicID: c.User.PublicID,
		Title:        c.Title,
		Mode:         c.Mode,
		DocumentRefs: refs,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// JSONStringList is a custom type for []string stored as JSON
type JSONStringList []string

func (j JSONStringList) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(j)
}

func (j *JSONStringList) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}
