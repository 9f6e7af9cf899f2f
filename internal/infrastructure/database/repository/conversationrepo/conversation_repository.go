package conversationrepo

import (
	"context"

	"gorm.io/gorm"

	"bot-gpt/services/chat-api/internal/domain/conversation"
	"bot-gpt/services/chat-api/internal/domain/query"
	"bot-gpt/services/chat-api/internal/infrastructure/database/dbschema"
	"bot-gpt/services/chat-api/internal/utils/functional"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

type ConversationGormRepository struct {
	db *gorm.DB
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *gorm.DB) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	if err := repo.db.WithContext(ctx).Omit("User").Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"2a4c6e8f-0b1d-43e5-97a9-b0c2d4e6f8a1",
		)
	}

	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ConversationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Preload("User").
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation by public ID",
			err,
			"5b7d9f1a-3c5e-47a9-8b0d-2e4f6a8c0e2b",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) FindActive(ctx context.Context, pagination query.Pagination) ([]*conversation.Conversation, error) {
	var entities []*dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Preload("User").
		Where("status <> ?", conversation.StatusDeleted).
		Order("updated_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations",
			err,
			"8d0f2a4b-6c8e-49b1-a3c5-d7e9f1a3b5c7",
		)
	}
	return functional.Map(entities, func(e *dbschema.Conversation) *conversation.Conversation {
		return e.EtoD()
	}), nil
}

func (repo *ConversationGormRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("status <> ?", conversation.StatusDeleted).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count conversations",
			err,
			"0c2e4a6b-8d0f-41c3-95e7-f9a1b3c5d7e9",
		)
	}
	return count, nil
}

func (repo *ConversationGormRepository) FindActiveByUserID(ctx context.Context, userID uint) ([]*conversation.Conversation, error) {
	var entities []*dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND status <> ?", userID, conversation.StatusDeleted).
		Order("updated_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations by user",
			err,
			"3e5a7c9d-1f3b-45d7-89a1-b3c5d7e9f0a2",
		)
	}
	return functional.Map(entities, func(e *dbschema.Conversation) *conversation.Conversation {
		return e.EtoD()
	}), nil
}

func (repo *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", entity.ID).
		Updates(map[string]any{
			"title":         entity.Title,
			"mode":          entity.Mode,
			"document_refs": entity.DocumentRefs,
			"status":        entity.Status,
			"updated_at":    entity.UpdatedAt,
		}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation",
			err,
			"6a8c0e2f-4b6d-48e9-b1c3-d5e7f9a1b3c5",
		)
	}
	return nil
}

func (repo *ConversationGormRepository) AddMessage(ctx context.Context, msg *conversation.Message) error {
	entity := dbschema.NewSchemaMessage(msg)
	if err := repo.db.WithContext(ctx).Omit("Conversation").Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"9b1d3f5a-7c9e-40b2-84d6-e8f0a2b4c6d8",
		)
	}

	msg.ID = entity.ID
	msg.CreatedAt = entity.CreatedAt
	msg.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ConversationGormRepository) FindMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	var entities []*dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"c3d5e7f9-0a2b-44c6-98d0-e2f4a6b8c0d2",
		)
	}
	return functional.Map(entities, func(e *dbschema.Message) *conversation.Message {
		return e.EtoD()
	}), nil
}

func (repo *ConversationGormRepository) FindRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*conversation.Message, error) {
	var entities []*dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list recent messages",
			err,
			"f6a8b0c2-d4e6-48f0-a2b4-c6d8e0f2a4b6",
		)
	}
	return functional.Map(entities, func(e *dbschema.Message) *conversation.Message {
		return e.EtoD()
	}), nil
}
