package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"gigbud/internal/models"
	"gigbud/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	taskService *services.TaskService
}

func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// CreateTask godoc
// @Summary Create a task
// @Description Creates a pending task. Accepts JSON, or multipart form data
// with an optional "attachment" file field.
// @Tags tasks
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} map[string]interface{} "Task created"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Router /api/tasks/task/create [post]
func (tc *TaskController) CreateTask(c *gin.Context) {
	var input services.CreateTaskInput
	var attachment *services.Attachment

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		parsed, err := parseTaskForm(c)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		input = *parsed

		if fileHeader, err := c.FormFile("attachment"); err == nil {
			file, openErr := fileHeader.Open()
			if openErr != nil {
				respondBadRequest(c, openErr)
				return
			}
			defer file.Close()
			attachment = &services.Attachment{
				Reader:      file,
				Size:        fileHeader.Size,
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
			}
		}
	} else {
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBadRequest(c, err)
			return
		}
	}

	task, err := tc.taskService.CreateTask(c.Request.Context(), callerID(c), input, attachment)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Task created successfully", task)
}

func parseTaskForm(c *gin.Context) (*services.CreateTaskInput, error) {
	input := &services.CreateTaskInput{
		TaskType:        c.PostForm("task_type"),
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		TimeRequirement: c.PostForm("time_requirement"),
		JobType:         c.PostForm("job_type"),
		WorkMode:        c.PostForm("work_mode"),
		AdditionalNotes: c.PostForm("additional_notes"),
		LocationMode:    c.PostForm("location_mode"),
		Address:         c.PostForm("address"),
	}

	if v := c.PostForm("deadline"); v != "" {
		deadline, err := parseDeadline(v)
		if err != nil {
			return nil, err
		}
		input.Deadline = &deadline
	}
	if v := c.PostForm("budget"); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		input.Budget = budget
	}
	if v := c.PostForm("budget_per_hour"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		input.BudgetPerHour = rate
	}
	if v := c.PostForm("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		input.Latitude = lat
	}
	if v := c.PostForm("longitude"); v != "" {
		lng, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		input.Longitude = lng
	}
	if v := c.PostForm("skills"); v != "" {
		for _, skill := range strings.Split(v, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				input.Skills = append(input.Skills, skill)
			}
		}
	}
	return input, nil
}

func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// ListOwnTasks returns the caller's postings, newest first.
func (tc *TaskController) ListOwnTasks(c *gin.Context) {
	tasks, err := tc.taskService.ListOwnTasks(callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// GetTask returns one task; owner and assignee only.
func (tc *TaskController) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := tc.taskService.GetTask(c.Request.Context(), callerID(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Task retrieved successfully", task)
}

// AcceptTask godoc
// @Summary Assign an applicant to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]interface{} "Task assigned"
// @Failure 400 {object} map[string]interface{} "Task already assigned"
// @Failure 403 {object} map[string]interface{} "Caller is not the owner"
// @Router /api/tasks/task/accept/{id} [post]
func (tc *TaskController) AcceptTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req struct {
		ApplicantID uint `json:"applicant_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	task, err := tc.taskService.AcceptTask(callerID(c), taskID, req.ApplicantID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Task assigned successfully", task)
}

// ApplyForTask appends the caller to the applicant list.
func (tc *TaskController) ApplyForTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := tc.taskService.ApplyForTask(callerID(c), taskID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Applied to task successfully", nil)
}

// SaveTask bookmarks the task.
func (tc *TaskController) SaveTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := tc.taskService.SaveTask(callerID(c), taskID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Task saved successfully", nil)
}

// MarkOngoing moves an accepted task to in-progress.
func (tc *TaskController) MarkOngoing(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := tc.taskService.MarkOngoing(callerID(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Task marked in-progress", task)
}

// CompleteTask marks the task completed; repeat calls are no-ops.
func (tc *TaskController) CompleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := tc.taskService.CompleteTask(callerID(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Task completed successfully", task)
}

// DeleteTask removes the caller's own task.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := tc.taskService.DeleteTask(c.Request.Context(), callerID(c), taskID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Task deleted successfully", nil)
}

// AvailableTasks lists pending unassigned tasks.
func (tc *TaskController) AvailableTasks(c *gin.Context) {
	tc.listView(c, tc.taskService.AvailableTasks)
}

// ProviderTasks lists every task assigned to the caller.
func (tc *TaskController) ProviderTasks(c *gin.Context) {
	tc.callerView(c, tc.taskService.ProviderTasks)
}

// AppliedTasks lists tasks the caller has applied to.
func (tc *TaskController) AppliedTasks(c *gin.Context) {
	tc.callerView(c, tc.taskService.AppliedTasks)
}

// SavedTasks lists the caller's bookmarks.
func (tc *TaskController) SavedTasks(c *gin.Context) {
	tc.callerView(c, tc.taskService.SavedTasks)
}

// OngoingTasks lists accepted/in-progress tasks assigned to the caller.
func (tc *TaskController) OngoingTasks(c *gin.Context) {
	tc.callerView(c, tc.taskService.OngoingTasks)
}

// CompletedTasks lists completed tasks the caller worked.
func (tc *TaskController) CompletedTasks(c *gin.Context) {
	tc.callerView(c, tc.taskService.CompletedTasks)
}

func (tc *TaskController) listView(c *gin.Context, view func() ([]models.Task, error)) {
	tasks, err := view()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (tc *TaskController) callerView(c *gin.Context, view func(uint) ([]models.Task, error)) {
	tasks, err := view(callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, services.NewValidationError([]string{"id must be a valid positive integer"}))
		return 0, false
	}
	return uint(id), true
}
