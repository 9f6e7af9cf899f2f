package userhandler

import (
	"context"

	"bot-gpt/services/chat-api/internal/domain/user"
	userrequests "bot-gpt/services/chat-api/internal/interfaces/httpserver/requests/user"
	userresponses "bot-gpt/services/chat-api/internal/interfaces/httpserver/responses/user"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a user. On a duplicate email it returns the existing
// record together with the conflict error so the route can shape a 409 body.
func (h *UserHandler) CreateUser(
	ctx context.Context,
	req userrequests.CreateUserRequest,
) (*user.User, error) {
	usr, err := h.userService.Create(ctx, req.Name, req.Email)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			return usr, err
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to create user")
	}
	return usr, nil
}

// GetUserByEmail resolves a single user record.
func (h *UserHandler) GetUserByEmail(
	ctx context.Context,
	email string,
) (*userresponses.GetUserResponse, error) {
	usr, err := h.userService.GetByEmail(ctx, email)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get user")
	}
	return userresponses.NewGetUserResponse(usr), nil
}
