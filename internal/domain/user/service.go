package user

import (
	"context"

	"bot-gpt/services/chat-api/internal/utils/idgen"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

// Service persists and resolves users by email.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user for the given email. The email is normalized
// before lookup. When a user with that email already exists, the existing
// record is returned together with a conflict error; no update is performed.
func (s *Service) Create(ctx context.Context, name *string, email string) (*User, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "email is required", nil, "7c2f1e84-9a3b-4e5d-8f60-1b2c3d4e5f6a")
	}

	existing, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}
	if existing != nil {
		return existing, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "user already exists", nil, "d4e9b0a1-2c3f-4b5a-9e8d-7f6a5b4c3d2e")
	}

	publicID, err := idgen.GenerateSecureID("user", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate user ID")
	}

	usr := &User{
		PublicID: publicID,
		Name:     name,
		Email:    normalized,
	}
	if err := s.repo.Create(ctx, usr); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create user")
	}

	return usr, nil
}

// GetByEmail resolves a user by normalized email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "email is required", nil, "3a8b7c6d-5e4f-4a3b-2c1d-0e9f8a7b6c5d")
	}

	usr, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up user")
	}
	if usr == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "user not found", nil, "1f2e3d4c-5b6a-4978-8899-aabbccddeeff")
	}

	return usr, nil
}
