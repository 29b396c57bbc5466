package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"TodoAPI/core"
	"TodoAPI/logger"
	"TodoAPI/models"
	"TodoAPI/repositories"
	"TodoAPI/utils/redislog"

	"github.com/redis/go-redis/v9"
)

// Paging bounds for conversation and message listings.
const (
	DefaultConversationLimit = 20
	MaxConversationLimit     = 100
	DefaultMessageLimit      = 50
	MaxMessageLimit          = 200

	listPreviewSize   = 5
	conversationTitle = 60 // runes of the first message used as title
)

// Fixed assistant replies.
const (
	replyGreeting = "Hello! I'm your AI assistant. Tell me to 'add a task to buy groceries' or 'show my tasks'!"
	replyNoTasks  = "You don't have any tasks yet. Want to add one?"
	aiDescription = "Task created via AI assistant"
)

// AssistantService runs the rule-based task assistant and keeps its chat history.
type AssistantService interface {
	Chat(ctx context.Context, userID string, req models.ChatRequest) (*models.ChatResponse, error)
	ListConversations(ctx context.Context, userID string, page, limit int) (*models.PagedConversations, error)
	ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error)
}

type assistantService struct {
	tasks repositories.TaskRepository
	convs repositories.ConversationRepository
	cache jsonCache
	audit *redislog.Logger
	log   *slog.Logger
	now   func() time.Time
}

// NewAssistantService wires the service. rdb, audit and log may be nil.
func NewAssistantService(tasks repositories.TaskRepository, convs repositories.ConversationRepository, rdb *redis.Client, audit *redislog.Logger, log *slog.Logger) AssistantService {
	if log == nil {
		log = logger.Discard()
	}
	return &assistantService{
		tasks: tasks,
		convs: convs,
		cache: jsonCache{rdb: rdb, log: log},
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

// assistantResult is what one intent produced.
type assistantResult struct {
	reply       string
	taskCreated bool
	taskID      *uint
}

func (s *assistantService) Chat(ctx context.Context, userID string, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.conversation(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	userAt := s.now().UTC()
	if err := s.convs.AddMessage(ctx, &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        req.Message,
		Timestamp:      userAt,
	}); err != nil {
		return nil, err
	}

	intent := core.ParseIntent(req.Message)
	res, err := s.execute(ctx, userID, req.Message, intent)
	if err != nil {
		s.log.Error("assistant intent failed", "user_id", userID, "intent", intent.Kind.String(), "err", err)
		return nil, err
	}

	at := replyTime(userAt, s.now().UTC())
	if err := s.convs.AddMessage(ctx, &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleAssistant,
		Content:        res.reply,
		Timestamp:      at,
	}); err != nil {
		return nil, err
	}
	if err := s.convs.Touch(ctx, conv.ID, at); err != nil {
		return nil, err
	}

	s.log.Debug("assistant reply", "user_id", userID, "conversation_id", conv.ID, "intent", intent.Kind.String())
	return &models.ChatResponse{
		Response:       res.reply,
		UserID:         userID,
		Message:        req.Message,
		ConversationID: conv.ID,
		TaskCreated:    res.taskCreated,
		TaskID:         res.taskID,
	}, nil
}

// conversation loads the requested conversation or starts a new one titled after the message.
func (s *assistantService) conversation(ctx context.Context, userID string, req models.ChatRequest) (*models.Conversation, error) {
	if req.ConversationID != "" {
		c, err := s.convs.FindByID(ctx, userID, req.ConversationID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrConversationNotFound
			}
			return nil, err
		}
		return c, nil
	}

	c := &models.Conversation{UserID: userID, Title: titleFrom(req.Message)}
	if err := s.convs.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// replyTime keeps the reply at least one millisecond after the user turn so
// timestamp ordering survives millisecond column precision.
func replyTime(userAt, now time.Time) time.Time {
	if floor := userAt.Add(time.Millisecond); now.Before(floor) {
		return floor
	}
	return now
}

func titleFrom(msg string) string {
	r := []rune(strings.TrimSpace(msg))
	if len(r) > conversationTitle {
		return string(r[:conversationTitle])
	}
	return string(r)
}

func (s *assistantService) execute(ctx context.Context, userID, message string, in core.Intent) (assistantResult, error) {
	switch in.Kind {
	case core.IntentCreate:
		return s.createTask(ctx, userID, in.Title)
	case core.IntentList:
		return s.listTasks(ctx, userID)
	case core.IntentComplete:
		return s.completeTask(ctx, userID, in.Ordinal)
	case core.IntentDelete:
		return s.deleteTask(ctx, userID, in.Ordinal)
	case core.IntentGreeting:
		return assistantResult{reply: replyGreeting}, nil
	default:
		return assistantResult{reply: fmt.Sprintf("I understand: '%s'. Try saying: 'Add a task to buy groceries' or 'Show my tasks'", message)}, nil
	}
}

func (s *assistantService) createTask(ctx context.Context, userID, title string) (assistantResult, error) {
	desc := aiDescription
	t := &models.Task{
		UserID:      userID,
		Title:       core.TitleCase(title),
		Description: &desc,
		Priority:    models.PriorityMedium,
	}
	t.SetStatus(models.StatusPending)
	if err := s.tasks.Create(ctx, t); err != nil {
		return assistantResult{}, err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "assistant.task_created", userID, taskMeta(t))

	id := t.ID
	return assistantResult{
		reply:       fmt.Sprintf("✓ Task created successfully: '%s'", t.Title),
		taskCreated: true,
		taskID:      &id,
	}, nil
}

func (s *assistantService) listTasks(ctx context.Context, userID string) (assistantResult, error) {
	items, err := s.tasks.List(ctx, userID, models.TaskListQuery{})
	if err != nil {
		return assistantResult{}, err
	}
	if len(items) == 0 {
		return assistantResult{reply: replyNoTasks}, nil
	}
	if len(items) > listPreviewSize {
		items = items[:listPreviewSize]
	}

	var b strings.Builder
	b.WriteString("Here are your tasks:")
	for i, t := range items {
		mark := "○"
		if t.Completed {
			mark = "✓"
		}
		fmt.Fprintf(&b, "\n%d. %s - %s", i+1, t.Title, mark)
	}
	return assistantResult{reply: b.String()}, nil
}

// completeTask and deleteTask address tasks by 1-based position, oldest first.
func (s *assistantService) completeTask(ctx context.Context, userID string, n int) (assistantResult, error) {
	items, err := s.tasks.ListOldestFirst(ctx, userID)
	if err != nil {
		return assistantResult{}, err
	}
	if n < 1 || n > len(items) {
		return assistantResult{reply: fmt.Sprintf("Task #%d not found.", n)}, nil
	}

	t := items[n-1]
	t.SetCompleted(true)
	t.UpdatedAt = s.now().UTC()
	if err := s.tasks.Update(ctx, &t); err != nil {
		return assistantResult{}, err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "assistant.task_completed", userID, taskMeta(&t))
	return assistantResult{reply: fmt.Sprintf("✓ Marked task #%d '%s' as completed!", n, t.Title)}, nil
}

func (s *assistantService) deleteTask(ctx context.Context, userID string, n int) (assistantResult, error) {
	items, err := s.tasks.ListOldestFirst(ctx, userID)
	if err != nil {
		return assistantResult{}, err
	}
	if n < 1 || n > len(items) {
		return assistantResult{reply: fmt.Sprintf("Task #%d not found. You have %d task(s).", n, len(items))}, nil
	}

	t := items[n-1]
	if err := s.tasks.Delete(ctx, userID, t.ID); err != nil {
		return assistantResult{}, err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "assistant.task_deleted", userID, taskMeta(&t))
	return assistantResult{reply: fmt.Sprintf("✓ Deleted task #%d '%s'", n, t.Title)}, nil
}

// ---------------- History ----------------

func (s *assistantService) ListConversations(ctx context.Context, userID string, page, limit int) (*models.PagedConversations, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultConversationLimit
	}
	if limit > MaxConversationLimit {
		limit = MaxConversationLimit
	}
	// keep (page-1)*limit inside int
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	offset := (page - 1) * limit

	items, total, err := s.convs.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &models.PagedConversations{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(offset+len(items)) < total,
	}, nil
}

func (s *assistantService) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error) {
	if _, err := s.convs.FindByID(ctx, userID, conversationID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	if limit > MaxMessageLimit {
		limit = MaxMessageLimit
	}
	return s.convs.ListMessages(ctx, conversationID, limit)
}
