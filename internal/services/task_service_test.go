package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gigbud/internal/mocks"
	"gigbud/internal/models"
	"gigbud/internal/repository"
	"gigbud/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTaskService() (*services.TaskService, *mocks.MockTaskRepository) {
	taskRepo := new(mocks.MockTaskRepository)
	svc := services.NewTaskService(taskRepo, nil, nil)
	return svc, taskRepo
}

func futureDeadline() *time.Time {
	deadline := time.Now().Add(48 * time.Hour)
	return &deadline
}

func TestCreateTask(t *testing.T) {
	tests := []struct {
		name       string
		input      services.CreateTaskInput
		violations int
	}{
		{
			name: "valid normal task",
			input: services.CreateTaskInput{
				TaskType:    models.TaskTypeNormal,
				Title:       "Fix my sink",
				Description: "Kitchen sink is leaking",
				Deadline:    futureDeadline(),
				Budget:      500,
			},
		},
		{
			name: "valid timebuyer task",
			input: services.CreateTaskInput{
				TaskType:        models.TaskTypeTimebuyer,
				TimeRequirement: "3 hours",
				JobType:         "tutoring",
				Skills:          []string{"maths"},
				BudgetPerHour:   200,
			},
		},
		{
			name:       "normal task missing everything aggregates all violations",
			input:      services.CreateTaskInput{TaskType: models.TaskTypeNormal},
			violations: 4,
		},
		{
			name: "past deadline",
			input: services.CreateTaskInput{
				TaskType:    models.TaskTypeNormal,
				Title:       "T",
				Description: "D",
				Deadline:    func() *time.Time { d := time.Now().Add(-time.Hour); return &d }(),
				Budget:      100,
			},
			violations: 1,
		},
		{
			name:       "unknown task type",
			input:      services.CreateTaskInput{TaskType: "weird"},
			violations: 1,
		},
		{
			name: "on-site task without any location",
			input: services.CreateTaskInput{
				TaskType:        models.TaskTypeTimebuyer,
				TimeRequirement: "2 hours",
				JobType:         "cleaning",
				BudgetPerHour:   150,
				LocationMode:    models.LocationModeOnSite,
			},
			violations: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, taskRepo := setupTaskService()
			if tt.violations == 0 {
				taskRepo.On("Create", mock.AnythingOfType("*models.Task")).Return(nil)
			}

			task, err := svc.CreateTask(context.Background(), 1, tt.input, nil)
			if tt.violations == 0 {
				assert.NoError(t, err)
				assert.Equal(t, models.TaskStatusPending, task.Status)
				assert.Equal(t, uint(1), task.UserID)
				assert.Nil(t, task.AssignedToID)
			} else {
				var validationErr *services.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Len(t, validationErr.Violations, tt.violations)
			}
			taskRepo.AssertExpectations(t)
		})
	}
}

func TestCreateTaskDefaultsToOnline(t *testing.T) {
	svc, taskRepo := setupTaskService()
	taskRepo.On("Create", mock.AnythingOfType("*models.Task")).Return(nil)

	task, err := svc.CreateTask(context.Background(), 1, services.CreateTaskInput{
		TaskType:    models.TaskTypeNormal,
		Title:       "T",
		Description: "D",
		Deadline:    futureDeadline(),
		Budget:      100,
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.LocationModeOnline, task.LocationMode)
}

func TestGetTask(t *testing.T) {
	assignee := uint(2)
	task := &models.Task{ID: 10, UserID: 1, AssignedToID: &assignee}

	tests := []struct {
		name     string
		callerID uint
		wantErr  error
	}{
		{name: "owner may view", callerID: 1},
		{name: "assignee may view", callerID: 2},
		{name: "stranger is rejected", callerID: 3, wantErr: services.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, taskRepo := setupTaskService()
			taskRepo.On("FindByID", uint(10)).Return(task, nil)

			got, err := svc.GetTask(context.Background(), tt.callerID, 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(10), got.ID)
			}
		})
	}
}

func TestApplyForTask(t *testing.T) {
	t.Run("owner cannot apply at any status", func(t *testing.T) {
		for _, status := range []string{
			models.TaskStatusPending,
			models.TaskStatusAccepted,
			models.TaskStatusInProgress,
			models.TaskStatusCompleted,
		} {
			svc, taskRepo := setupTaskService()
			taskRepo.On("FindByID", uint(10)).
				Return(&models.Task{ID: 10, UserID: 1, Status: status}, nil)

			err := svc.ApplyForTask(1, 10)
			assert.ErrorIs(t, err, services.ErrForbidden, "status %s", status)
			taskRepo.AssertNotCalled(t, "AddApplicant", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("first apply succeeds", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, Status: models.TaskStatusPending}, nil)
		taskRepo.On("AddApplicant", uint(10), uint(2), mock.AnythingOfType("time.Time")).
			Return(nil)

		assert.NoError(t, svc.ApplyForTask(2, 10))
	})

	t.Run("duplicate apply is a conflict", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, Status: models.TaskStatusPending}, nil)
		taskRepo.On("AddApplicant", uint(10), uint(2), mock.AnythingOfType("time.Time")).
			Return(repository.ErrDuplicate)

		err := svc.ApplyForTask(2, 10)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("missing task", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(99)).Return(nil, repository.ErrNotFound)

		err := svc.ApplyForTask(2, 99)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestSaveTask(t *testing.T) {
	t.Run("duplicate save is a conflict", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1}, nil)
		taskRepo.On("AddSave", uint(10), uint(2)).Return(repository.ErrDuplicate)

		err := svc.SaveTask(2, 10)
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestAcceptTask(t *testing.T) {
	pending := func() *models.Task {
		return &models.Task{ID: 10, UserID: 1, Status: models.TaskStatusPending}
	}

	t.Run("owner accepts an applicant", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		assignee := uint(2)
		accepted := &models.Task{ID: 10, UserID: 1, Status: models.TaskStatusAccepted, AssignedToID: &assignee}
		taskRepo.On("FindByID", uint(10)).Return(pending(), nil).Once()
		taskRepo.On("HasApplicant", uint(10), uint(2)).Return(true, nil)
		taskRepo.On("Assign", uint(10), uint(2)).Return(true, nil)
		taskRepo.On("FindByID", uint(10)).Return(accepted, nil).Once()

		task, err := svc.AcceptTask(1, 10, 2)
		assert.NoError(t, err)
		assert.Equal(t, models.TaskStatusAccepted, task.Status)
		assert.Equal(t, uint(2), *task.AssignedToID)
	})

	t.Run("non-owner cannot accept", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(pending(), nil)

		_, err := svc.AcceptTask(3, 10, 2)
		assert.ErrorIs(t, err, services.ErrForbidden)
		taskRepo.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	})

	t.Run("second accept is a conflict", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		assignee := uint(2)
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, Status: models.TaskStatusAccepted, AssignedToID: &assignee}, nil)

		_, err := svc.AcceptTask(1, 10, 3)
		assert.ErrorIs(t, err, services.ErrConflict)
		taskRepo.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	})

	t.Run("losing the assign race is a conflict", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(pending(), nil)
		taskRepo.On("HasApplicant", uint(10), uint(2)).Return(true, nil)
		taskRepo.On("Assign", uint(10), uint(2)).Return(false, nil)

		_, err := svc.AcceptTask(1, 10, 2)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("winner must have applied", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(pending(), nil)
		taskRepo.On("HasApplicant", uint(10), uint(5)).Return(false, nil)

		_, err := svc.AcceptTask(1, 10, 5)
		var validationErr *services.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		taskRepo.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	})
}

func TestMarkOngoing(t *testing.T) {
	assignee := uint(2)
	accepted := func(status string) *models.Task {
		return &models.Task{ID: 10, UserID: 1, Status: status, AssignedToID: &assignee}
	}

	t.Run("assignee moves accepted to in-progress", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(accepted(models.TaskStatusAccepted), nil).Once()
		taskRepo.On("TransitionStatus", uint(10), models.TaskStatusAccepted, models.TaskStatusInProgress).
			Return(true, nil)
		taskRepo.On("FindByID", uint(10)).Return(accepted(models.TaskStatusInProgress), nil).Once()

		task, err := svc.MarkOngoing(2, 10)
		assert.NoError(t, err)
		assert.Equal(t, models.TaskStatusInProgress, task.Status)
	})

	t.Run("only the assignee may start work", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(accepted(models.TaskStatusAccepted), nil)

		_, err := svc.MarkOngoing(1, 10)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("completed task cannot be reopened", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(accepted(models.TaskStatusCompleted), nil)

		_, err := svc.MarkOngoing(2, 10)
		assert.ErrorIs(t, err, services.ErrConflict)
		taskRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pending task is not startable", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(accepted(models.TaskStatusPending), nil)
		taskRepo.On("TransitionStatus", uint(10), models.TaskStatusAccepted, models.TaskStatusInProgress).
			Return(false, nil)

		_, err := svc.MarkOngoing(2, 10)
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestCompleteTask(t *testing.T) {
	assignee := uint(2)
	inProgress := func() *models.Task {
		return &models.Task{ID: 10, UserID: 1, Status: models.TaskStatusInProgress, AssignedToID: &assignee}
	}
	completed := func() *models.Task {
		return &models.Task{ID: 10, UserID: 1, Status: models.TaskStatusCompleted, AssignedToID: &assignee}
	}

	t.Run("owner completes", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(inProgress(), nil).Once()
		taskRepo.On("Complete", uint(10), uint(1), []string{models.TaskStatusAccepted, models.TaskStatusInProgress}).
			Return(true, nil)
		taskRepo.On("FindByID", uint(10)).Return(completed(), nil).Once()

		task, err := svc.CompleteTask(1, 10)
		assert.NoError(t, err)
		assert.Equal(t, models.TaskStatusCompleted, task.Status)
	})

	t.Run("completing twice is a no-op", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(completed(), nil)

		task, err := svc.CompleteTask(2, 10)
		assert.NoError(t, err)
		assert.Equal(t, models.TaskStatusCompleted, task.Status)
		taskRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stranger cannot complete", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(inProgress(), nil)

		_, err := svc.CompleteTask(9, 10)
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("unassigned task cannot be completed", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, Status: models.TaskStatusPending}, nil)

		_, err := svc.CompleteTask(1, 10)
		assert.ErrorIs(t, err, services.ErrConflict)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindByID", uint(10)).Return(&models.Task{ID: 10, UserID: 1}, nil)
		taskRepo.On("Delete", uint(10)).Return(nil)

		assert.NoError(t, svc.DeleteTask(context.Background(), 1, 10))
	})

	t.Run("assignee cannot delete", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		assignee := uint(2)
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, AssignedToID: &assignee}, nil)

		err := svc.DeleteTask(context.Background(), 2, 10)
		assert.ErrorIs(t, err, services.ErrForbidden)
		taskRepo.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestNearbyTasks(t *testing.T) {
	t.Run("negative radius is rejected", func(t *testing.T) {
		svc, taskRepo := setupTaskService()

		_, err := svc.NearbyTasks(context.Background(), 12.9, 77.6, -1)
		var validationErr *services.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		taskRepo.AssertNotCalled(t, "FindNearby", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero radius is an exact point match", func(t *testing.T) {
		svc, taskRepo := setupTaskService()
		taskRepo.On("FindNearby", 12.9, 77.6, 0.0).
			Return([]models.Task{{ID: 1}}, nil)

		tasks, err := svc.NearbyTasks(context.Background(), 12.9, 77.6, 0)
		assert.NoError(t, err)
		assert.Len(t, tasks, 1)
	})
}

func setupTaskServiceWithStorage() (*services.TaskService, *mocks.MockTaskRepository, *mocks.MockObjectStore) {
	taskRepo := new(mocks.MockTaskRepository)
	objects := new(mocks.MockObjectStore)
	svc := services.NewTaskService(taskRepo, objects, nil)
	return svc, taskRepo, objects
}

func TestTaskAttachments(t *testing.T) {
	t.Run("create uploads the attachment before persisting", func(t *testing.T) {
		svc, taskRepo, objects := setupTaskServiceWithStorage()
		objects.On("Put", mock.Anything, mock.AnythingOfType("string"), int64(4), "image/png").
			Return(nil)
		taskRepo.On("Create", mock.AnythingOfType("*models.Task")).Return(nil)

		task, err := svc.CreateTask(context.Background(), 1, services.CreateTaskInput{
			TaskType:    models.TaskTypeNormal,
			Title:       "T",
			Description: "D",
			Deadline:    futureDeadline(),
			Budget:      100,
		}, &services.Attachment{
			Reader:      strings.NewReader("data"),
			Size:        4,
			Filename:    "photo.png",
			ContentType: "image/png",
		})

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(task.AttachmentKey, "attachments/"))
		assert.True(t, strings.HasSuffix(task.AttachmentKey, ".png"))
		objects.AssertExpectations(t)
	})

	t.Run("get returns a presigned download link", func(t *testing.T) {
		svc, taskRepo, objects := setupTaskServiceWithStorage()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, AttachmentKey: "attachments/abc.png"}, nil)
		objects.On("PresignGet", mock.Anything, "attachments/abc.png", mock.AnythingOfType("time.Duration")).
			Return("https://minio.local/attachments/abc.png?sig=x", nil)

		task, err := svc.GetTask(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, "https://minio.local/attachments/abc.png?sig=x", task.AttachmentURL)
	})

	t.Run("tasks without attachments skip the store", func(t *testing.T) {
		svc, taskRepo, objects := setupTaskServiceWithStorage()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1}, nil)

		task, err := svc.GetTask(context.Background(), 1, 10)
		assert.NoError(t, err)
		assert.Empty(t, task.AttachmentURL)
		objects.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete removes the stored object", func(t *testing.T) {
		svc, taskRepo, objects := setupTaskServiceWithStorage()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, AttachmentKey: "attachments/abc.png"}, nil)
		taskRepo.On("Delete", uint(10)).Return(nil)
		objects.On("Delete", mock.Anything, "attachments/abc.png").Return(nil)

		assert.NoError(t, svc.DeleteTask(context.Background(), 1, 10))
		objects.AssertExpectations(t)
	})

	t.Run("orphaned object does not fail the delete", func(t *testing.T) {
		svc, taskRepo, objects := setupTaskServiceWithStorage()
		taskRepo.On("FindByID", uint(10)).
			Return(&models.Task{ID: 10, UserID: 1, AttachmentKey: "attachments/abc.png"}, nil)
		taskRepo.On("Delete", uint(10)).Return(nil)
		objects.On("Delete", mock.Anything, "attachments/abc.png").
			Return(errors.New("bucket unreachable"))

		assert.NoError(t, svc.DeleteTask(context.Background(), 1, 10))
	})
}
