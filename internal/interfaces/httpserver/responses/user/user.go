package user

import (
	"time"

	domainuser "bot-gpt/services/chat-api/internal/domain/user"
)

// User is the public representation of a user record.
type User struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUser(u *domainuser.User) User {
	return User{
		ID:        u.PublicID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// CreateUserResponse is returned on successful registration.
type CreateUserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

func NewCreateUserResponse(u *domainuser.User) *CreateUserResponse {
	return &CreateUserResponse{
		Message: "User created",
		User:    NewUser(u),
	}
}

// ConflictResponse carries the existing record when the email is taken.
type ConflictResponse struct {
	Error string `json:"error"`
	User  User   `json:"user"`
}

func NewConflictResponse(existing *domainuser.User) *ConflictResponse {
	return &ConflictResponse{
		Error: "Email already registered",
		User:  NewUser(existing),
	}
}

// GetUserResponse wraps a single user lookup.
type GetUserResponse struct {
	User User `json:"user"`
}

func NewGetUserResponse(u *domainuser.User) *GetUserResponse {
	return &GetUserResponse{User: NewUser(u)}
}
