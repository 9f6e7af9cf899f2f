package conversation

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"bot-gpt/services/chat-api/internal/domain/query"
)

// CreateConversationRequest is the payload for starting a conversation.
type CreateConversationRequest struct {
	UserEmail    string   `json:"user_email"`
	FirstMessage string   `json:"first_message"`
	Mode         string   `json:"mode"`
	DocumentRefs []string `json:"documentRefs"`
}

// AddMessageRequest is the payload for appending a message.
type AddMessageRequest struct {
	UserEmail string `json:"user_email"`
	Role      string `json:"role"`
	Text      string `json:"text"`
}

// DeleteConversationRequest identifies the caller for a soft delete.
type DeleteConversationRequest struct {
	UserEmail string `json:"user_email"`
}

// ParsePagination reads page and limit query parameters. Malformed values
// fall back to zero and are clamped to the defaults downstream.
func ParsePagination(c *gin.Context) query.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return query.Normalize(page, limit)
}
