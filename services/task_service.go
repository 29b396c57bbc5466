package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"TodoAPI/core"
	"TodoAPI/logger"
	"TodoAPI/models"
	"TodoAPI/repositories"
	"TodoAPI/storage"
	"TodoAPI/utils/redislog"

	"github.com/redis/go-redis/v9"
)

// TaskService is the task use-case surface. Every method is scoped to one owner.
type TaskService interface {
	Create(ctx context.Context, userID string, req models.TaskCreateRequest) (*models.Task, error)
	List(ctx context.Context, userID string, q models.TaskListQuery) ([]models.Task, error)
	Get(ctx context.Context, userID string, id uint) (*models.Task, error)
	Update(ctx context.Context, userID string, id uint, req models.TaskUpdateRequest) (*models.Task, error)
	Delete(ctx context.Context, userID string, id uint) error
	ToggleComplete(ctx context.Context, userID string, id uint) (*models.Task, error)
	Export(ctx context.Context, userID string) (*models.ExportResponse, error)
}

type taskService struct {
	repo  repositories.TaskRepository
	store storage.ObjectStore // nil disables Export
	cache jsonCache
	audit *redislog.Logger
	log   *slog.Logger
	now   func() time.Time
}

// NewTaskService wires the service. store, rdb, audit and log may be nil.
func NewTaskService(repo repositories.TaskRepository, store storage.ObjectStore, rdb *redis.Client, audit *redislog.Logger, log *slog.Logger) TaskService {
	if log == nil {
		log = logger.Discard()
	}
	return &taskService{
		repo:  repo,
		store: store,
		cache: jsonCache{rdb: rdb, log: log},
		audit: audit,
		log:   log,
		now:   time.Now,
	}
}

func taskMeta(t *models.Task) map[string]string {
	return map[string]string{"task_id": strconv.FormatUint(uint64(t.ID), 10)}
}

// ---------------- CRUD ----------------

func (s *taskService) Create(ctx context.Context, userID string, req models.TaskCreateRequest) (*models.Task, error) {
	title := core.NormalizeTitle(req.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	t := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.SetStatus(models.StatusPending)

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "task.created", userID, taskMeta(t))
	return t, nil
}

// List serves the unfiltered list from Redis when it can; filtered lists always hit the DB.
func (s *taskService) List(ctx context.Context, userID string, q models.TaskListQuery) ([]models.Task, error) {
	key := taskListCacheKey(userID)
	if q.IsZero() {
		var cached []models.Task
		if s.cache.get(ctx, key, &cached) {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	if q.IsZero() {
		s.cache.set(ctx, key, items, taskListCacheTTL)
	}
	return items, nil
}

func (s *taskService) Get(ctx context.Context, userID string, id uint) (*models.Task, error) {
	t, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrTaskNotFound // also covers tasks of other users
		}
		return nil, err
	}
	return t, nil
}

// Update applies only the provided fields. When both status and completed are sent, completed wins.
func (s *taskService) Update(ctx context.Context, userID string, id uint, req models.TaskUpdateRequest) (*models.Task, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := core.NormalizeTitle(*req.Title)
		if title == "" {
			return nil, ErrInvalidTitle
		}
		t.Title = title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Status != nil {
		t.SetStatus(*req.Status)
	}
	if req.Completed != nil {
		t.SetCompleted(*req.Completed)
	}
	t.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "task.updated", userID, taskMeta(t))
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, userID string, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrTaskNotFound
		}
		return err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "task.deleted", userID, map[string]string{"task_id": strconv.FormatUint(uint64(id), 10)})
	return nil
}

// ToggleComplete flips completed <-> pending. An archived task becomes completed.
func (s *taskService) ToggleComplete(ctx context.Context, userID string, id uint) (*models.Task, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t.SetCompleted(!t.Completed)
	t.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.cache.del(ctx, taskListCacheKey(userID))
	s.audit.Info(ctx, "task.toggled", userID, map[string]string{"task_id": strconv.FormatUint(uint64(t.ID), 10), "status": t.Status})
	return t, nil
}

// ---------------- Export ----------------

type exportDocument struct {
	UserID     string        `json:"user_id"`
	ExportedAt time.Time     `json:"exported_at"`
	Count      int           `json:"count"`
	Tasks      []models.Task `json:"tasks"`
}

// Export writes a JSON snapshot of all the user's tasks to exports/<uid>/<timestamp>.json.
func (s *taskService) Export(ctx context.Context, userID string) (*models.ExportResponse, error) {
	if s.store == nil {
		return nil, ErrExportUnavailable
	}
	items, err := s.repo.List(ctx, userID, models.TaskListQuery{})
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	doc := exportDocument{UserID: userID, ExportedAt: at, Count: len(items), Tasks: items}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	name := exportObjectName(userID, at)
	info, err := s.store.Put(ctx, name, body, "application/json")
	if err != nil {
		s.log.Error("task export upload failed", "user_id", userID, "object", name, "err", err)
		return nil, fmt.Errorf("export tasks: %w", err)
	}
	s.audit.Info(ctx, "task.exported", userID, map[string]string{"object": info.Key, "count": strconv.Itoa(len(items))})

	return &models.ExportResponse{
		Object:     info.Key,
		Bucket:     info.Bucket,
		Count:      len(items),
		Size:       info.Size,
		ExportedAt: at,
	}, nil
}

func exportObjectName(userID string, at time.Time) string {
	// user ids are UUIDs; strip anything that could add path segments anyway
	safe := strings.NewReplacer("/", "_", "..", "_").Replace(userID)
	return fmt.Sprintf("exports/%s/%s.json", safe, at.Format("20060102T150405Z"))
}
