package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// TaskInput carries the editable fields of a task.
type TaskInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	DueDate        *time.Time `json:"dueDate"`
	AssignedUserID *uint      `json:"assignedUserId"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository, userRepo *repository.UserRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, projectRepo: projectRepo, userRepo: userRepo}
}

// CreateTask adds a task to an existing project. Missing status and
// priority take the model defaults.
func (s *TaskService) CreateTask(ctx context.Context, projectID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	if input.AssignedUserID != nil {
		if err := s.requireAssignee(ctx, projectID, *input.AssignedUserID); err != nil {
			return nil, err
		}
	}

	task := model.Task{
		ProjectID:      projectID,
		Title:          title,
		Description:    strings.TrimSpace(input.Description),
		AssignedUserID: input.AssignedUserID,
		Status:         strings.TrimSpace(input.Status),
		Priority:       input.Priority,
		CreatedAt:      time.Now().UTC(),
		DueDate:        utc(input.DueDate),
	}
	if task.Status == "" {
		task.Status = model.DefaultStatus
	}
	if task.Priority == 0 {
		task.Priority = model.DefaultPriority
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces the editable fields. A blank status or a zero priority
// keeps the stored value; a nil assignee unassigns the task.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if input.AssignedUserID != nil {
		if err := s.requireAssignee(ctx, task.ProjectID, *input.AssignedUserID); err != nil {
			return nil, err
		}
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	if status := strings.TrimSpace(input.Status); status != "" {
		task.Status = status
	}
	if input.Priority != 0 {
		task.Priority = input.Priority
	}
	task.DueDate = utc(input.DueDate)
	task.AssignedUserID = input.AssignedUserID

	ok, err := s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// ListForProject returns a project's tasks, optionally filtered by exact status.
func (s *TaskService) ListForProject(ctx context.Context, projectID uint, status string) ([]model.Task, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListForProject(ctx, projectID, strings.TrimSpace(status))
}

// ListAssigned returns every task assigned to the user, newest first.
func (s *TaskService) ListAssigned(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListAssignedTo(ctx, userID, nil)
}

// ChangeStatus stores the status as given (trimmed); grouping views normalize it.
func (s *TaskService) ChangeStatus(ctx context.Context, taskID uint, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return ErrStatusRequired
	}
	ok, err := s.taskRepo.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

// AssignUser sets the assignee, who must be a project member; a nil userID
// unassigns the task.
func (s *TaskService) AssignUser(ctx context.Context, taskID uint, userID *uint) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if userID != nil {
		if err := s.requireAssignee(ctx, task.ProjectID, *userID); err != nil {
			return err
		}
	}
	ok, err := s.taskRepo.Assign(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task completely.
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint) error {
	ok, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteProjectTask removes a task only when it belongs to projectID.
func (s *TaskService) DeleteProjectTask(ctx context.Context, projectID, taskID uint) error {
	if err := s.requireProject(ctx, projectID); err != nil {
		return err
	}
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.ProjectID != projectID {
		return ErrTaskNotFound
	}
	return s.DeleteTask(ctx, taskID)
}

func (s *TaskService) requireProject(ctx context.Context, projectID uint) error {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProjectNotFound
	}
	return nil
}

func (s *TaskService) requireUser(ctx context.Context, userID uint) error {
	_, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}

func (s *TaskService) requireAssignee(ctx context.Context, projectID, userID uint) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	member, err := s.projectRepo.IsMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotProjectMember
	}
	return nil
}

// utc keeps stored dates on one clock so day and week bucketing does not
// depend on the offset a client sent.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
