package dbschema

import (
	"bot-gpt/services/chat-api/internal/domain/user"
	"bot-gpt/services/chat-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted user schema. Email is the identity key and
// is stored normalized (lower-cased, trimmed).
type User struct {
	BaseModel
	PublicID string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name     *string `gorm:"type:varchar(255)"`
	Email    string  `gorm:"type:varchar(320);uniqueIndex:ux_users_email;not null"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID: u.PublicID,
		Name:     u.Name,
		Email:    u.Email,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:        u.ID,
		PublicID:  u.PublicID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
