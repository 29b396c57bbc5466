package models

import "time"

// Task status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a to-do item owned by exactly one user.
// Completed mirrors Status == completed; it is kept for clients that only read the flag.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"size:36;not null;index:idx_tasks_user_id" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:pending;index:idx_tasks_status" json:"status"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time `gorm:"index:idx_tasks_due_date" json:"due_date"`
	Priority    string     `gorm:"size:20;not null;default:medium;index:idx_tasks_priority" json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// SetStatus changes Status and keeps Completed in sync.
func (t *Task) SetStatus(status string) {
	t.Status = status
	t.Completed = status == StatusCompleted
}

// SetCompleted changes Completed and keeps Status in sync.
func (t *Task) SetCompleted(done bool) {
	if done {
		t.SetStatus(StatusCompleted)
		return
	}
	t.SetStatus(StatusPending)
}

// TaskCreateRequest is the payload for POST /api/tasks.
type TaskCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskUpdateRequest allows partial updates; nil means "no change".
type TaskUpdateRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending completed archived"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Completed   *bool      `json:"completed"`
}

// TaskListQuery holds the optional list filters.
type TaskListQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending completed archived"`
	Priority string `form:"priority" binding:"omitempty,oneof=low medium high"`
}

// IsZero reports whether no filter is set.
func (q TaskListQuery) IsZero() bool {
	return q.Status == "" && q.Priority == ""
}

// ExportResponse describes a stored task snapshot.
type ExportResponse struct {
	Object     string    `json:"object"`
	Bucket     string    `json:"bucket"`
	Count      int       `json:"count"`
	Size       int64     `json:"size"`
	ExportedAt time.Time `json:"exported_at"`
}
