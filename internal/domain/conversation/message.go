package conversation

import "time"

// Role tags who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single entry in a conversation. Messages are never updated
// or deleted once created; ordering is by creation time ascending.
type Message struct {
	ID             uint
	PublicID       string
	ConversationID uint
	Role           Role
	Text           string
	// Meta carries provider-defined structured data (raw provider response,
	// error flags). There is no fixed schema beyond being JSON-serializable.
	Meta      map[string]any
	Tokens    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole reports whether r is one of the accepted message roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}
