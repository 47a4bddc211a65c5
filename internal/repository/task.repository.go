package repository

import (
	"time"

	"gigbud/internal/models"

	"gorm.io/gorm"
)

// TaskRepository persists tasks and their applicant/save sets. Every
// state-machine mutation is a single conditional UPDATE; callers inspect the
// bool result to tell "lost the race / wrong state" from success.
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint) (*models.Task, error)
	FindByOwner(ownerID uint) ([]models.Task, error)
	FindAvailable() ([]models.Task, error)
	FindByAssignee(assigneeID uint, statuses []string) ([]models.Task, error)
	FindApplied(userID uint) ([]models.Task, error)
	FindSaved(userID uint) ([]models.Task, error)
	FindNearby(lat, lng, radiusKm float64) ([]models.Task, error)
	AddApplicant(taskID, userID uint, appliedAt time.Time) error
	HasApplicant(taskID, userID uint) (bool, error)
	AddSave(taskID, userID uint) error
	Assign(taskID, applicantID uint) (bool, error)
	TransitionStatus(taskID uint, from, to string) (bool, error)
	Complete(taskID, completedBy uint, fromStatuses []string) (bool, error)
	Delete(id uint) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (tr *taskRepository) Create(task *models.Task) error {
	return translate(tr.db.Create(task).Error)
}

func (tr *taskRepository) FindByID(id uint) (*models.Task, error) {
	var task models.Task
	err := tr.db.Preload("Applicants").First(&task, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (tr *taskRepository) FindByOwner(ownerID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := tr.db.Preload("Applicants").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, translate(err)
}

func (tr *taskRepository) FindAvailable() ([]models.Task, error) {
	var tasks []models.Task
	err := tr.db.Where("status = ? AND assigned_to_id IS NULL", models.TaskStatusPending).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, translate(err)
}

func (tr *taskRepository) FindByAssignee(assigneeID uint, statuses []string) ([]models.Task, error) {
	var tasks []models.Task
	query := tr.db.Where("assigned_to_id = ?", assigneeID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, translate(err)
}

func (tr *taskRepository) FindApplied(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := tr.db.
		Joins("JOIN task_applicants ON task_applicants.task_id = tasks.id").
		Where("task_applicants.user_id = ?", userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	return tasks, translate(err)
}

func (tr *taskRepository) FindSaved(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := tr.db.
		Joins("JOIN task_saves ON task_saves.task_id = tasks.id").
		Where("task_saves.user_id = ?", userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	return tasks, translate(err)
}

// FindNearby computes great-circle distance in SQL. radiusKm of zero matches
// only tasks at the exact query point.
func (tr *taskRepository) FindNearby(lat, lng, radiusKm float64) ([]models.Task, error) {
	var tasks []models.Task
	err := tr.db.
		Where(`(6371 * acos(least(1.0,
			cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?))
			+ sin(radians(?)) * sin(radians(latitude))))) <= ?`,
			lat, lng, lat, radiusKm).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, translate(err)
}

func (tr *taskRepository) AddApplicant(taskID, userID uint, appliedAt time.Time) error {
	applicant := models.TaskApplicant{
		TaskID:    taskID,
		UserID:    userID,
		AppliedAt: appliedAt,
	}
	return translate(tr.db.Create(&applicant).Error)
}

func (tr *taskRepository) HasApplicant(taskID, userID uint) (bool, error) {
	var count int64
	err := tr.db.Model(&models.TaskApplicant{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	return count > 0, translate(err)
}

func (tr *taskRepository) AddSave(taskID, userID uint) error {
	save := models.TaskSave{TaskID: taskID, UserID: userID}
	return translate(tr.db.Create(&save).Error)
}

// Assign sets the assignee only while the task is still pending and
// unassigned, so at most one Assign can ever win.
func (tr *taskRepository) Assign(taskID, applicantID uint) (bool, error) {
	result := tr.db.Model(&models.Task{}).
		Where("id = ? AND assigned_to_id IS NULL AND status = ?", taskID, models.TaskStatusPending).
		Updates(map[string]interface{}{
			"assigned_to_id": applicantID,
			"status":         models.TaskStatusAccepted,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (tr *taskRepository) TransitionStatus(taskID uint, from, to string) (bool, error) {
	result := tr.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, from).
		Update("status", to)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (tr *taskRepository) Complete(taskID, completedBy uint, fromStatuses []string) (bool, error) {
	result := tr.db.Model(&models.Task{}).
		Where("id = ? AND status IN ?", taskID, fromStatuses).
		Updates(map[string]interface{}{
			"status":          models.TaskStatusCompleted,
			"completed_by_id": completedBy,
		})
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (tr *taskRepository) Delete(id uint) error {
	return translate(tr.db.Delete(&models.Task{}, id).Error)
}
