package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"gigbud/internal/cache"
	"gigbud/internal/models"
	"gigbud/internal/repository"
	"gigbud/internal/storage"

	"github.com/google/uuid"
)

const (
	nearbyCacheTTL   = 30 * time.Second
	attachmentURLTTL = 15 * time.Minute
)

// TaskService is the task lifecycle engine: shape validation at creation and
// the status/assignment state machine
//
//	pending --assign(owner)--> accepted --markOngoing(assignee)--> in-progress
//	       --complete(owner|assignee)--> completed
//
// All mutations that the state machine depends on are conditional updates in
// the repository, so concurrent callers cannot both win a transition.
type TaskService struct {
	taskRepo   repository.TaskRepository
	objects    storage.ObjectStore
	queryCache *cache.QueryCache
}

// NewTaskService wires the lifecycle engine. objects and queryCache may be
// nil; attachments and caching are then disabled.
func NewTaskService(
	taskRepo repository.TaskRepository,
	objects storage.ObjectStore,
	queryCache *cache.QueryCache,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		objects:    objects,
		queryCache: queryCache,
	}
}

// CreateTaskInput carries both variants; Validate picks the required set by
// TaskType and aggregates every violation.
type CreateTaskInput struct {
	TaskType string `json:"task_type"`

	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Budget      float64    `json:"budget"`

	TimeRequirement string   `json:"time_requirement"`
	JobType         string   `json:"job_type"`
	Skills          []string `json:"skills"`
	WorkMode        string   `json:"work_mode"`
	BudgetPerHour   float64  `json:"budget_per_hour"`
	AdditionalNotes string   `json:"additional_notes"`

	LocationMode string  `json:"location_mode"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// Attachment is an optional uploaded file stored alongside the task.
type Attachment struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

func (in *CreateTaskInput) validate() error {
	var violations []string

	switch in.TaskType {
	case models.TaskTypeNormal:
		if in.Title == "" {
			violations = append(violations, "title is required")
		}
		if in.Description == "" {
			violations = append(violations, "description is required")
		}
		if in.Deadline == nil {
			violations = append(violations, "deadline is required")
		} else if in.Deadline.Before(time.Now()) {
			violations = append(violations, "deadline must not be in the past")
		}
		if in.Budget <= 0 {
			violations = append(violations, "budget must be greater than zero")
		}
	case models.TaskTypeTimebuyer:
		if in.TimeRequirement == "" {
			violations = append(violations, "time_requirement is required")
		}
		if in.JobType == "" {
			violations = append(violations, "job_type is required")
		}
		if in.BudgetPerHour <= 0 {
			violations = append(violations, "budget_per_hour must be greater than zero")
		}
	default:
		violations = append(violations, "task_type must be normal or timebuyer")
	}

	mode := in.LocationMode
	if mode == "" {
		mode = models.LocationModeOnline
	}
	switch mode {
	case models.LocationModeOnline:
	case models.LocationModeOnSite, models.LocationModeInPerson:
		if in.Latitude == 0 && in.Longitude == 0 && in.Address == "" {
			violations = append(violations, "coordinates or address required for on-site and in-person tasks")
		}
	default:
		violations = append(violations, "location_mode must be Online, On-site or In-Person")
	}

	return NewValidationError(violations)
}

// CreateTask validates the variant fields, uploads the optional attachment
// and persists the task in the pending state.
func (ts *TaskService) CreateTask(ctx context.Context, ownerID uint, input CreateTaskInput, attachment *Attachment) (*models.Task, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		TaskType:     input.TaskType,
		Status:       models.TaskStatusPending,
		UserID:       ownerID,
		LocationMode: input.LocationMode,
		Address:      input.Address,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
	if task.LocationMode == "" {
		task.LocationMode = models.LocationModeOnline
	}

	switch input.TaskType {
	case models.TaskTypeNormal:
		task.Title = input.Title
		task.Description = input.Description
		task.Deadline = input.Deadline
		task.Budget = input.Budget
	case models.TaskTypeTimebuyer:
		task.TimeRequirement = input.TimeRequirement
		task.JobType = input.JobType
		task.Skills = input.Skills
		task.WorkMode = input.WorkMode
		task.BudgetPerHour = input.BudgetPerHour
		task.AdditionalNotes = input.AdditionalNotes
	}

	if attachment != nil && ts.objects != nil {
		key := fmt.Sprintf("attachments/%s%s", uuid.NewString(), filepath.Ext(attachment.Filename))
		if err := ts.objects.Put(ctx, key, attachment.Reader, attachment.Size, attachment.ContentType); err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		task.AttachmentKey = key
	}

	if err := ts.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask is visible to the owner and the assignee only. A stored attachment
// is surfaced as a short-lived presigned download URL.
func (ts *TaskService) GetTask(ctx context.Context, callerID, taskID uint) (*models.Task, error) {
	task, err := ts.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != callerID && !task.IsAssignedTo(callerID) {
		return nil, ErrForbidden
	}

	if task.AttachmentKey != "" && ts.objects != nil {
		url, err := ts.objects.PresignGet(ctx, task.AttachmentKey, attachmentURLTTL)
		if err != nil {
			log.Printf("Failed to presign attachment %s: %v", task.AttachmentKey, err)
		} else {
			task.AttachmentURL = url
		}
	}
	return task, nil
}

func (ts *TaskService) ListOwnTasks(ownerID uint) ([]models.Task, error) {
	return ts.taskRepo.FindByOwner(ownerID)
}

func (ts *TaskService) AvailableTasks() ([]models.Task, error) {
	return ts.taskRepo.FindAvailable()
}

func (ts *TaskService) ProviderTasks(callerID uint) ([]models.Task, error) {
	return ts.taskRepo.FindByAssignee(callerID, nil)
}

func (ts *TaskService) AppliedTasks(callerID uint) ([]models.Task, error) {
	return ts.taskRepo.FindApplied(callerID)
}

func (ts *TaskService) SavedTasks(callerID uint) ([]models.Task, error) {
	return ts.taskRepo.FindSaved(callerID)
}

func (ts *TaskService) OngoingTasks(callerID uint) ([]models.Task, error) {
	return ts.taskRepo.FindByAssignee(callerID, []string{models.TaskStatusAccepted, models.TaskStatusInProgress})
}

func (ts *TaskService) CompletedTasks(callerID uint) ([]models.Task, error) {
	return ts.taskRepo.FindByAssignee(callerID, []string{models.TaskStatusCompleted})
}

// ApplyForTask appends the caller to the applicant set. Owners cannot apply
// to their own tasks; a duplicate apply hits the unique index and surfaces
// as a conflict.
func (ts *TaskService) ApplyForTask(callerID, taskID uint) error {
	task, err := ts.findTask(taskID)
	if err != nil {
		return err
	}
	if task.UserID == callerID {
		return fmt.Errorf("cannot apply to your own task: %w", ErrForbidden)
	}
	if err := ts.taskRepo.AddApplicant(taskID, callerID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("already applied to this task: %w", ErrConflict)
		}
		return err
	}
	return nil
}

// SaveTask bookmarks the task for the caller.
func (ts *TaskService) SaveTask(callerID, taskID uint) error {
	if _, err := ts.findTask(taskID); err != nil {
		return err
	}
	if err := ts.taskRepo.AddSave(taskID, callerID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("task already saved: %w", ErrConflict)
		}
		return err
	}
	return nil
}

// AcceptTask assigns one applicant and moves the task to accepted. Only the
// owner may assign, the winner must have applied, and only the first accept
// can succeed.
func (ts *TaskService) AcceptTask(callerID, taskID, applicantID uint) (*models.Task, error) {
	task, err := ts.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != callerID {
		return nil, ErrForbidden
	}
	if task.AssignedToID != nil {
		return nil, fmt.Errorf("task already assigned: %w", ErrConflict)
	}

	applied, err := ts.taskRepo.HasApplicant(taskID, applicantID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewValidationError([]string{"selected user has not applied to this task"})
	}

	won, err := ts.taskRepo.Assign(taskID, applicantID)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("task already assigned: %w", ErrConflict)
	}
	return ts.findTask(taskID)
}

// MarkOngoing moves an accepted task to in-progress. Assignee only; a
// completed task may never re-enter in-progress.
func (ts *TaskService) MarkOngoing(callerID, taskID uint) (*models.Task, error) {
	task, err := ts.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsAssignedTo(callerID) {
		return nil, ErrForbidden
	}
	if task.Status == models.TaskStatusCompleted {
		return nil, fmt.Errorf("completed task cannot be reopened: %w", ErrConflict)
	}

	moved, err := ts.taskRepo.TransitionStatus(taskID, models.TaskStatusAccepted, models.TaskStatusInProgress)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("task is not in the accepted state: %w", ErrConflict)
	}
	return ts.findTask(taskID)
}

// CompleteTask marks the task completed. Owner or assignee only; completing
// an already-completed task is a no-op returning the current state.
func (ts *TaskService) CompleteTask(callerID, taskID uint) (*models.Task, error) {
	task, err := ts.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != callerID && !task.IsAssignedTo(callerID) {
		return nil, ErrForbidden
	}
	if task.Status == models.TaskStatusCompleted {
		return task, nil
	}
	if task.AssignedToID == nil {
		return nil, fmt.Errorf("task has no assignee: %w", ErrConflict)
	}

	done, err := ts.taskRepo.Complete(taskID, callerID,
		[]string{models.TaskStatusAccepted, models.TaskStatusInProgress})
	if err != nil {
		return nil, err
	}
	if !done {
		// Someone else completed it between the read and the update.
		return ts.findTask(taskID)
	}
	return ts.findTask(taskID)
}

// DeleteTask removes the task. Owner only, at any status. The stored
// attachment goes with it; a failed object delete only leaves an orphan
// in the bucket, so it does not fail the operation.
func (ts *TaskService) DeleteTask(ctx context.Context, callerID, taskID uint) error {
	task, err := ts.findTask(taskID)
	if err != nil {
		return err
	}
	if task.UserID != callerID {
		return ErrForbidden
	}
	if err := ts.taskRepo.Delete(taskID); err != nil {
		return err
	}

	if task.AttachmentKey != "" && ts.objects != nil {
		if err := ts.objects.Delete(ctx, task.AttachmentKey); err != nil {
			log.Printf("Failed to delete attachment %s: %v", task.AttachmentKey, err)
		}
	}
	return nil
}

// NearbyTasks runs the geo query with a short-lived cache in front.
func (ts *TaskService) NearbyTasks(ctx context.Context, lat, lng, radiusKm float64) ([]models.Task, error) {
	if radiusKm < 0 {
		return nil, NewValidationError([]string{"radius must not be negative"})
	}

	key := cache.NearbyKey(lat, lng, radiusKm)
	if ts.queryCache != nil {
		var cached []models.Task
		if hit, err := ts.queryCache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	tasks, err := ts.taskRepo.FindNearby(lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	if ts.queryCache != nil {
		if err := ts.queryCache.Set(ctx, key, tasks, nearbyCacheTTL); err != nil {
			log.Printf("Failed to cache nearby tasks: %v", err)
		}
	}
	return tasks, nil
}

func (ts *TaskService) findTask(taskID uint) (*models.Task, error) {
	task, err := ts.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}
