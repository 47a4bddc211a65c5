package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task status values. Transitions are enforced by the task service, never by
// handlers writing the column directly.
const (
	TaskStatusPending    = "pending"
	TaskStatusAccepted   = "accepted"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// Task variants. The variant is chosen at creation and immutable afterwards.
const (
	TaskTypeNormal    = "normal"
	TaskTypeTimebuyer = "timebuyer"
)

// Location modes. Coordinates are required only for the physical modes.
const (
	LocationModeOnline   = "Online"
	LocationModeOnSite   = "On-site"
	LocationModeInPerson = "In-Person"
)

// @description Task posting; either a fixed-price "normal" task or an hourly
// "timebuyer" task, tagged by task_type
type Task struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`

	TaskType string `gorm:"index" json:"task_type" example:"normal"`
	Status   string `gorm:"index;default:pending" json:"status" example:"pending"`

	// normal variant
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Budget      float64    `json:"budget,omitempty"`

	// timebuyer variant
	TimeRequirement string                       `json:"time_requirement,omitempty"`
	JobType         string                       `json:"job_type,omitempty"`
	Skills          datatypes.JSONSlice[string]  `json:"skills,omitempty" swaggertype:"array,string"`
	WorkMode        string                       `json:"work_mode,omitempty"`
	BudgetPerHour   float64                      `json:"budget_per_hour,omitempty"`
	AdditionalNotes string                       `json:"additional_notes,omitempty"`

	LocationMode  string  `gorm:"default:Online" json:"location_mode" example:"Online"`
	Address       string  `json:"address,omitempty"`
	Latitude      float64 `gorm:"default:0" json:"latitude"`
	Longitude     float64 `gorm:"default:0" json:"longitude"`
	AttachmentKey string  `json:"attachment_key,omitempty"`
	AttachmentURL string  `gorm:"-" json:"attachment_url,omitempty"`

	UserID        uint  `gorm:"index" json:"user_id"`
	AssignedToID  *uint `gorm:"index" json:"assigned_to_id,omitempty"`
	CompletedByID *uint `json:"completed_by_id,omitempty"`

	CreatorRating int `json:"creator_rating,omitempty"`
	WorkerRating  int `json:"worker_rating,omitempty"`

	Applicants []TaskApplicant `gorm:"constraint:OnDelete:CASCADE" json:"applicants"`
	Saves      []TaskSave      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TaskApplicant records one user's application to one task. The composite
// unique index makes a repeated apply a constraint violation instead of a
// read-then-write race.
type TaskApplicant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"uniqueIndex:idx_task_applicant" json:"task_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_task_applicant" json:"user_id"`
	AppliedAt time.Time `json:"applied_at"`
}

// TaskSave is a user's bookmark on a task, unique per (task, user).
type TaskSave struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	TaskID uint `gorm:"uniqueIndex:idx_task_save" json:"task_id"`
	UserID uint `gorm:"uniqueIndex:idx_task_save" json:"user_id"`
}

// IsAssignedTo reports whether userID is the task's current assignee.
func (t *Task) IsAssignedTo(userID uint) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}
