package user

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
}
