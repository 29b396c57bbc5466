package services

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"TodoAPI/mocks"
	"TodoAPI/models"
	"TodoAPI/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newChatFixture wires an assistant whose conversation bookkeeping always succeeds.
func newChatFixture(t *testing.T) (AssistantService, *mocks.TaskRepositoryMock, *mocks.ConversationRepositoryMock) {
	t.Helper()
	tasks := new(mocks.TaskRepositoryMock)
	convs := new(mocks.ConversationRepositoryMock)

	convs.On("Create", mock.Anything, mock.AnythingOfType("*models.Conversation")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Conversation).ID = "c-new"
	})
	convs.On("AddMessage", mock.Anything, mock.AnythingOfType("*models.Message")).Return(nil)
	convs.On("Touch", mock.Anything, "c-new", mock.AnythingOfType("time.Time")).Return(nil)

	return NewAssistantService(tasks, convs, nil, nil, nil), tasks, convs
}

func oldestFirst(titles ...string) []models.Task {
	out := make([]models.Task, 0, len(titles))
	for i, title := range titles {
		out = append(out, models.Task{ID: uint(i + 1), UserID: "u1", Title: title, Status: models.StatusPending})
	}
	return out
}

func TestAssistant_Chat_EmptyMessage(t *testing.T) {
	svc, _, convs := newChatFixture(t)

	_, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	convs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssistant_Chat_CreatesTask(t *testing.T) {
	// GIVEN
	svc, tasks, convs := newChatFixture(t)
	tasks.On("Create", mock.Anything, mock.AnythingOfType("*models.Task")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Task).ID = 42
	})

	// WHEN
	out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "Add a task to buy groceries"})

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "✓ Task created successfully: 'Buy Groceries'", out.Response)
	assert.True(t, out.TaskCreated)
	require.NotNil(t, out.TaskID)
	assert.Equal(t, uint(42), *out.TaskID)
	assert.Equal(t, "c-new", out.ConversationID)
	assert.Equal(t, "u1", out.UserID)
	assert.Equal(t, "Add a task to buy groceries", out.Message)

	created := tasks.Calls[0].Arguments.Get(1).(*models.Task)
	assert.Equal(t, "Buy Groceries", created.Title)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Task created via AI assistant", *created.Description)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.Equal(t, models.StatusPending, created.Status)

	// user turn then assistant turn
	convs.AssertNumberOfCalls(t, "AddMessage", 2)
	var roles []string
	for _, c := range convs.Calls {
		if c.Method == "AddMessage" {
			roles = append(roles, c.Arguments.Get(1).(*models.Message).Role)
		}
	}
	assert.Equal(t, []string{models.RoleUser, models.RoleAssistant}, roles)
	convs.AssertCalled(t, "Touch", mock.Anything, "c-new", mock.AnythingOfType("time.Time"))
}

func TestAssistant_Chat_ListsNewestFive(t *testing.T) {
	svc, tasks, _ := newChatFixture(t)
	newest := make([]models.Task, 0, 6)
	for i := 6; i >= 1; i-- {
		newest = append(newest, models.Task{ID: uint(i), Title: fmt.Sprintf("t%d", i), Completed: i == 5})
	}
	tasks.On("List", mock.Anything, "u1", models.TaskListQuery{}).Return(newest, nil)

	out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "show my tasks"})
	require.NoError(t, err)
	want := "Here are your tasks:\n1. t6 - ○\n2. t5 - ✓\n3. t4 - ○\n4. t3 - ○\n5. t2 - ○"
	assert.Equal(t, want, out.Response)
	assert.False(t, out.TaskCreated)
	assert.Nil(t, out.TaskID)
}

func TestAssistant_Chat_ListEmpty(t *testing.T) {
	svc, tasks, _ := newChatFixture(t)
	tasks.On("List", mock.Anything, "u1", models.TaskListQuery{}).Return([]models.Task{}, nil)

	out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "list"})
	require.NoError(t, err)
	assert.Equal(t, "You don't have any tasks yet. Want to add one?", out.Response)
}

func TestAssistant_Chat_CompleteByOrdinal(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		updated bool
	}{
		{"second task", "mark task #2 as completed", "✓ Marked task #2 'walk dog' as completed!", true},
		{"out of range", "complete task 9", "Task #9 not found.", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			svc, tasks, _ := newChatFixture(t)
			tasks.On("ListOldestFirst", mock.Anything, "u1").Return(oldestFirst("pay rent", "walk dog"), nil)
			tasks.On("Update", mock.Anything, mock.AnythingOfType("*models.Task")).Return(nil)

			out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: tc.message})
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Response)

			if !tc.updated {
				tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			saved := tasks.Calls[1].Arguments.Get(1).(*models.Task)
			assert.Equal(t, uint(2), saved.ID)
			assert.True(t, saved.Completed)
			assert.Equal(t, models.StatusCompleted, saved.Status)
		})
	}
}

func TestAssistant_Chat_DeleteByOrdinal(t *testing.T) {
	svc, tasks, _ := newChatFixture(t)
	tasks.On("ListOldestFirst", mock.Anything, "u1").Return(oldestFirst("pay rent", "walk dog"), nil)
	tasks.On("Delete", mock.Anything, "u1", uint(1)).Return(nil)

	out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "delete task 1"})
	require.NoError(t, err)
	assert.Equal(t, "✓ Deleted task #1 'pay rent'", out.Response)

	out, err = svc.Chat(ctx, "u1", models.ChatRequest{Message: "remove task #4"})
	require.NoError(t, err)
	assert.Equal(t, "Task #4 not found. You have 2 task(s).", out.Response)
	tasks.AssertNumberOfCalls(t, "Delete", 1)
}

func TestAssistant_Chat_GreetingAndFallback(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "Hey assistant"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Response, "Hello! I'm your AI assistant."))

	out, err = svc.Chat(ctx, "u1", models.ChatRequest{Message: "What's the weather"})
	require.NoError(t, err)
	assert.Equal(t, "I understand: 'What's the weather'. Try saying: 'Add a task to buy groceries' or 'Show my tasks'", out.Response)
}

func TestAssistant_Chat_ExistingConversation(t *testing.T) {
	tasks := new(mocks.TaskRepositoryMock)
	convs := new(mocks.ConversationRepositoryMock)
	convs.On("FindByID", mock.Anything, "u1", "c-old").Return(&models.Conversation{ID: "c-old", UserID: "u1"}, nil)
	convs.On("AddMessage", mock.Anything, mock.Anything).Return(nil)
	convs.On("Touch", mock.Anything, "c-old", mock.Anything).Return(nil)
	svc := NewAssistantService(tasks, convs, nil, nil, nil)

	out, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "hello", ConversationID: "c-old"})
	require.NoError(t, err)
	assert.Equal(t, "c-old", out.ConversationID)
	convs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssistant_Chat_ForeignConversation(t *testing.T) {
	tasks := new(mocks.TaskRepositoryMock)
	convs := new(mocks.ConversationRepositoryMock)
	convs.On("FindByID", mock.Anything, "u2", "c-old").Return(nil, repositories.ErrNotFound)
	svc := NewAssistantService(tasks, convs, nil, nil, nil)

	_, err := svc.Chat(ctx, "u2", models.ChatRequest{Message: "hello", ConversationID: "c-old"})
	assert.ErrorIs(t, err, ErrConversationNotFound)
	convs.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything)
}

func TestAssistant_Chat_InvalidatesTaskListCache(t *testing.T) {
	tasks := new(mocks.TaskRepositoryMock)
	convs := new(mocks.ConversationRepositoryMock)
	rdb, rmock := mocks.NewRedisMock()
	convs.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Conversation).ID = "c1"
	})
	convs.On("AddMessage", mock.Anything, mock.Anything).Return(nil)
	convs.On("Touch", mock.Anything, "c1", mock.Anything).Return(nil)
	tasks.On("Create", mock.Anything, mock.Anything).Return(nil)
	rmock.ExpectDel("tasks:u1").SetVal(1)

	svc := NewAssistantService(tasks, convs, rdb, nil, nil)
	_, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "new task water plants"})
	require.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestAssistant_Chat_ReplyAfterUserTurn(t *testing.T) {
	// GIVEN a clock that does not move between the two turns
	svc, _, convs := newChatFixture(t)
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.(*assistantService).now = func() time.Time { return frozen }

	// WHEN
	_, err := svc.Chat(ctx, "u1", models.ChatRequest{Message: "hello"})
	require.NoError(t, err)

	// THEN
	var stamps []time.Time
	for _, c := range convs.Calls {
		if c.Method == "AddMessage" {
			stamps = append(stamps, c.Arguments.Get(1).(*models.Message).Timestamp)
		}
	}
	require.Len(t, stamps, 2)
	assert.Equal(t, frozen, stamps[0])
	assert.Equal(t, frozen.Add(time.Millisecond), stamps[1])
	convs.AssertCalled(t, "Touch", mock.Anything, "c-new", frozen.Add(time.Millisecond))
}

func TestReplyTime(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(time.Millisecond), replyTime(base, base))
	assert.Equal(t, base.Add(time.Millisecond), replyTime(base, base.Add(300*time.Microsecond)))
	assert.Equal(t, base.Add(time.Second), replyTime(base, base.Add(time.Second)))
}

func TestAssistant_ListConversations_Paging(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantOffset  int
		wantLimit   int
		returned    int
		total       int64
		wantHasMore bool
	}{
		{"defaults", 0, 0, 0, 20, 20, 45, true},
		{"clamped limit", 2, 500, 100, 100, 10, 110, false},
		{"last page", 3, 20, 40, 20, 5, 45, false},
		{"page past int range", math.MaxInt, 100, (math.MaxInt/100 - 1) * 100, 100, 0, 45, false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			convs := new(mocks.ConversationRepositoryMock)
			items := make([]models.Conversation, tc.returned)
			convs.On("ListByUser", mock.Anything, "u1", tc.wantOffset, tc.wantLimit).Return(items, tc.total, nil)
			svc := NewAssistantService(nil, convs, nil, nil, nil)

			out, err := svc.ListConversations(ctx, "u1", tc.page, tc.limit)
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, out.Limit)
			assert.GreaterOrEqual(t, out.Page, 1)
			assert.Equal(t, tc.total, out.Total)
			assert.Equal(t, tc.wantHasMore, out.HasMore)
			convs.AssertExpectations(t)
		})
	}
}

func TestAssistant_ListMessages(t *testing.T) {
	convs := new(mocks.ConversationRepositoryMock)
	convs.On("FindByID", mock.Anything, "u1", "c1").Return(&models.Conversation{ID: "c1"}, nil)
	convs.On("FindByID", mock.Anything, "u1", "c2").Return(nil, repositories.ErrNotFound)
	msgs := []models.Message{{ID: "m1", Timestamp: time.Now()}}
	convs.On("ListMessages", mock.Anything, "c1", 200).Return(msgs, nil)
	convs.On("ListMessages", mock.Anything, "c1", 50).Return(msgs, nil)
	svc := NewAssistantService(nil, convs, nil, nil, nil)

	got, err := svc.ListMessages(ctx, "u1", "c1", 1000)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListMessages(ctx, "u1", "c1", 0)
	require.NoError(t, err)

	_, err = svc.ListMessages(ctx, "u1", "c2", 10)
	assert.ErrorIs(t, err, ErrConversationNotFound)
	convs.AssertExpectations(t)
}
