package conversation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bot-gpt/services/chat-api/internal/domain/conversation"
	"bot-gpt/services/chat-api/internal/domain/llm"
	"bot-gpt/services/chat-api/internal/domain/query"
	"bot-gpt/services/chat-api/internal/domain/user"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

// mockUserRepository is an in-memory user.Repository for testing.
type mockUserRepository struct {
	users  map[string]*user.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*user.User), nextID: 1}
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.users[email], nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// mockConversationRepository is an in-memory conversation.Repository.
type mockConversationRepository struct {
	conversations map[uint]*conversation.Conversation
	messages      map[uint][]*conversation.Message
	nextID        uint
	clock         time.Time
}

func newMockConversationRepository() *mockConversationRepository {
	return &mockConversationRepository{
		conversations: make(map[uint]*conversation.Conversation),
		messages:      make(map[uint][]*conversation.Message),
		nextID:        1,
		clock:         time.Now(),
	}
}

func (m *mockConversationRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Millisecond)
	return m.clock
}

func (m *mockConversationRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	conv.ID = m.nextID
	m.nextID++
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockConversationRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	for _, conv := range m.conversations {
		if conv.PublicID == publicID {
			return conv, nil
		}
	}
	return nil, nil
}

func (m *mockConversationRepository) FindActive(ctx context.Context, pagination query.Pagination) ([]*conversation.Conversation, error) {
	active := m.active()
	offset := pagination.Offset()
	if offset >= len(active) {
		return nil, nil
	}
	end := offset + pagination.Limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], nil
}

func (m *mockConversationRepository) CountActive(ctx context.Context) (int64, error) {
	return int64(len(m.active())), nil
}

func (m *mockConversationRepository) FindActiveByUserID(ctx context.Context, userID uint) ([]*conversation.Conversation, error) {
	var out []*conversation.Conversation
	for _, conv := range m.active() {
		if conv.UserID == userID {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (m *mockConversationRepository) active() []*conversation.Conversation {
	var out []*conversation.Conversation
	for id := uint(1); id < m.nextID; id++ {
		conv, ok := m.conversations[id]
		if ok && conv.Status != conversation.StatusDeleted {
			out = append(out, conv)
		}
	}
	return out
}

func (m *mockConversationRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	m.conversations[conv.ID] = conv
	return nil
}

func (m *mockConversationRepository) AddMessage(ctx context.Context, msg *conversation.Message) error {
	msg.ID = m.nextID
	m.nextID++
	msg.CreatedAt = m.tick()
	msg.UpdatedAt = msg.CreatedAt
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], msg)
	return nil
}

func (m *mockConversationRepository) FindMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error) {
	return m.messages[conversationID], nil
}

func (m *mockConversationRepository) FindRecentMessages(ctx context.Context, conversationID uint, limit int) ([]*conversation.Message, error) {
	msgs := m.messages[conversationID]
	var out []*conversation.Message
	for i := len(msgs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, msgs[i])
	}
	return out, nil
}

// mockGateway records calls and returns a configurable result.
type mockGateway struct {
	result   *llm.Result
	err      error
	lastCall *llm.Call
	calls    int
}

func (m *mockGateway) CallModel(ctx context.Context, call llm.Call) (*llm.Result, error) {
	m.calls++
	m.lastCall = &call
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &llm.Result{Text: "assistant reply", Meta: map[string]any{}, TokensEstimate: 3}, nil
}

type fixture struct {
	users    *mockUserRepository
	repo     *mockConversationRepository
	gateway  *mockGateway
	service  *conversation.Service
	ownerCtx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := newMockUserRepository()
	repo := newMockConversationRepository()
	gateway := &mockGateway{}
	svc := conversation.NewService(repo, users, gateway)

	if err := users.Create(context.Background(), &user.User{PublicID: "user_owner", Email: "owner@example.com"}); err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	if err := users.Create(context.Background(), &user.User{PublicID: "user_other", Email: "other@example.com"}); err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	return &fixture{
		users:    users,
		repo:     repo,
		gateway:  gateway,
		service:  svc,
		ownerCtx: context.Background(),
	}
}

func (f *fixture) createConversation(t *testing.T, firstMessage string) *conversation.Conversation {
	t.Helper()
	conv, msgs, err := f.service.Create(f.ownerCtx, conversation.CreateInput{
		UserEmail:    "owner@example.com",
		FirstMessage: firstMessage,
	})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	return conv
}

func TestCreateProducesUserAndAssistantMessages(t *testing.T) {
	f := newFixture(t)

	conv, msgs, err := f.service.Create(f.ownerCtx, conversation.CreateInput{
		UserEmail:    "Owner@Example.com",
		FirstMessage: "Hello there, how are you?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if conv.Title != "Hello there, how are you?" {
		t.Errorf("title = %q, want first message", conv.Title)
	}
	if conv.Status != conversation.StatusActive {
		t.Errorf("status = %q, want active", conv.Status)
	}
	if conv.Mode != conversation.ModeOpen {
		t.Errorf("mode = %q, want open default", conv.Mode)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != conversation.RoleUser || msgs[0].Text != "Hello there, how are you?" {
		t.Errorf("first message = %s %q, want user message", msgs[0].Role, msgs[0].Text)
	}
	if msgs[1].Role != conversation.RoleAssistant || msgs[1].Text != "assistant reply" {
		t.Errorf("second message = %s %q, want assistant reply", msgs[1].Role, msgs[1].Text)
	}
	if msgs[1].Tokens != 3 {
		t.Errorf("assistant tokens = %d, want 3", msgs[1].Tokens)
	}
	if f.gateway.lastCall == nil || len(f.gateway.lastCall.Messages) != 1 {
		t.Fatalf("gateway should receive the single-message context")
	}
}

func TestCreateTruncatesTitle(t *testing.T) {
	f := newFixture(t)

	long := strings.Repeat("x", 200)
	conv := f.createConversation(t, long)

	if got := len([]rune(conv.Title)); got != conversation.TitleMaxRunes {
		t.Errorf("title length = %d, want %d", got, conversation.TitleMaxRunes)
	}
	if !strings.HasPrefix(long, conv.Title) {
		t.Errorf("title is not a prefix of the first message")
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input conversation.CreateInput
	}{
		{"missing email", conversation.CreateInput{FirstMessage: "hi"}},
		{"blank first message", conversation.CreateInput{UserEmail: "owner@example.com", FirstMessage: "   "}},
		{"unknown user", conversation.CreateInput{UserEmail: "nobody@example.com", FirstMessage: "hi"}},
		{"bad mode", conversation.CreateInput{UserEmail: "owner@example.com", FirstMessage: "hi", Mode: "turbo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.service.Create(f.ownerCtx, tt.input)
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
	if f.gateway.calls != 0 {
		t.Errorf("gateway called %d times during failed validation", f.gateway.calls)
	}
}

func TestAddMessageWindowEndsWithTrigger(t *testing.T) {
	f := newFixture(t)
	conv := f.createConversation(t, "first")

	// Grow history well past the window size.
	for i := 0; i < 15; i++ {
		if _, err := f.service.AddMessage(f.ownerCtx, conv.PublicID, "owner@example.com", conversation.RoleUser, "filler"); err != nil {
			t.Fatalf("add filler message: %v", err)
		}
	}

	if _, err := f.service.AddMessage(f.ownerCtx, conv.PublicID, "owner@example.com", conversation.RoleUser, "the trigger"); err != nil {
		t.Fatalf("add trigger message: %v", err)
	}

	call := f.gateway.lastCall
	if call == nil {
		t.Fatal("gateway never called")
	}
	if len(call.Messages) > 21 {
		t.Errorf("context window has %d entries, want at most 21", len(call.Messages))
	}
	last := call.Messages[len(call.Messages)-1]
	if last.Text != "the trigger" {
		t.Errorf("window ends with %q, want the triggering message", last.Text)
	}
}

func TestAddMessageTouchesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	conv := f.createConversation(t, "first")
	before := conv.UpdatedAt

	if _, err := f.service.AddMessage(f.ownerCtx, conv.PublicID, "owner@example.com", "", "next"); err != nil {
		t.Fatalf("add message: %v", err)
	}

	stored := f.repo.conversations[conv.ID]
	if stored.UpdatedAt.Before(before) {
		t.Errorf("updatedAt moved backwards: %v -> %v", before, stored.UpdatedAt)
	}
}

func TestAddMessageAppendsCallerAndAssistant(t *testing.T) {
	f := newFixture(t)
	conv := f.createConversation(t, "first")

	msgs, err := f.service.AddMessage(f.ownerCtx, conv.PublicID, "owner@example.com", "", "follow up")
	if err != nil {
		t.Fatalf("add message: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != conversation.RoleUser || msgs[1].Role != conversation.RoleAssistant {
		t.Errorf("roles = %s, %s; want user then assistant", msgs[0].Role, msgs[1].Role)
	}

	stored, _ := f.repo.FindMessages(f.ownerCtx, conv.ID)
	if len(stored) != 4 {
		t.Errorf("stored %d messages, want 4 after create plus append", len(stored))
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	f := newFixture(t)
	conv := f.createConversation(t, "mine")

	t.Run("get", func(t *testing.T) {
		_, _, err := f.service.Get(f.ownerCtx, conv.PublicID, "other@example.com")
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("err = %v, want forbidden", err)
		}
	})
	t.Run("add message", func(t *testing.T) {
		_, err := f.service.AddMessage(f.ownerCtx, conv.PublicID, "other@example.com", "", "hi")
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("err = %v, want forbidden", err)
		}
	})
	t.Run("delete", func(t *testing.T) {
		err := f.service.Delete(f.ownerCtx, conv.PublicID, "other@example.com")
		if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
			t.Errorf("err = %v, want forbidden", err)
		}
	})
}

func TestDeletedConversationIsNotFetchable(t *testing.T) {
	f := newFixture(t)
	conv := f.createConversation(t, "to delete")

	if err := f.service.Delete(f.ownerCtx, conv.PublicID, "owner@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, _, err := f.service.Get(f.ownerCtx, conv.PublicID, "owner@example.com")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("err = %v, want not found after soft delete", err)
	}

	page, err := f.service.List(f.ownerCtx, query.Pagination{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("total = %d, want deleted conversations excluded", page.Total)
	}
}

func TestInvalidConversationIDIsValidation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.service.Get(f.ownerCtx, "not-a-conversation-id", "owner@example.com")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("err = %v, want validation for malformed id", err)
	}
}

func TestGatewayFailureNeverPropagates(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("provider exploded")

	conv, msgs, err := f.service.Create(f.ownerCtx, conversation.CreateInput{
		UserEmail:    "owner@example.com",
		FirstMessage: "hello",
	})
	if err != nil {
		t.Fatalf("create should absorb gateway failure, got %v", err)
	}
	if conv == nil || len(msgs) != 2 {
		t.Fatalf("expected conversation with 2 messages despite gateway failure")
	}

	assistant := msgs[1]
	if !strings.Contains(assistant.Text, "trouble reaching the model") {
		t.Errorf("assistant text = %q, want canned apology", assistant.Text)
	}
	if flagged, _ := assistant.Meta["error"].(bool); !flagged {
		t.Errorf("assistant meta = %v, want error flag", assistant.Meta)
	}
}

func TestEmptyGatewayTextGetsPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.gateway.result = &llm.Result{Text: "", Meta: map[string]any{}}

	_, msgs, err := f.service.Create(f.ownerCtx, conversation.CreateInput{
		UserEmail:    "owner@example.com",
		FirstMessage: "hello",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if msgs[1].Text != "Sorry, no response." {
		t.Errorf("assistant text = %q, want empty-reply placeholder", msgs[1].Text)
	}
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.createConversation(t, "conversation")
	}

	page, err := f.service.List(f.ownerCtx, query.Pagination{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 5 || !page.HasMore {
		t.Errorf("page 1: items=%d total=%d hasMore=%v, want 2/5/true", len(page.Items), page.Total, page.HasMore)
	}

	page, err = f.service.List(f.ownerCtx, query.Pagination{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.HasMore {
		t.Errorf("page 3: items=%d hasMore=%v, want 1/false", len(page.Items), page.HasMore)
	}
}

func TestListForUserExcludesOthers(t *testing.T) {
	f := newFixture(t)
	f.createConversation(t, "owned")

	owner, items, err := f.service.ListForUser(f.ownerCtx, "owner@example.com")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if owner.Email != "owner@example.com" || len(items) != 1 {
		t.Errorf("got %d conversations for %s, want 1", len(items), owner.Email)
	}

	_, _, err = f.service.ListForUser(f.ownerCtx, "nobody@example.com")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("err = %v, want not found for unknown user", err)
	}
}
