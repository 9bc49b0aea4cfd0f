package domain

import "time"

type TaskType string

const (
	TaskTypeWatchVideo  TaskType = "watch_video"
	TaskTypeClickAd     TaskType = "click_ad"
	TaskTypeSurvey      TaskType = "survey"
	TaskTypeSocialMedia TaskType = "social_media"
	TaskTypeOther       TaskType = "other"
)

type Task struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        TaskType `json:"type"`
	URL         string   `json:"url,omitempty"`
	Duration    int      `json:"duration"` // seconds
	IsActive    bool     `json:"isActive"`
}

// UserTask is one user's run of a task, created by the start endpoint and
// closed by the complete endpoint.
type UserTask struct {
	ID          string     `json:"_id"`
	TaskID      string     `json:"task"`
	UserID      string     `json:"user"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Completed   bool       `json:"completed"`
}
