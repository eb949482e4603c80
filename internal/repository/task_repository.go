package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForProject returns a project's tasks, newest first. A non-empty status
// filters by exact match.
func (r *TaskRepository) ListForProject(ctx context.Context, projectID uint, status string) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tasks []model.Task
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAssignedTo returns the user's tasks, newest first. A non-nil since
// drops tasks created before it.
func (r *TaskRepository) ListAssignedTo(ctx context.Context, userID uint, since *time.Time) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("assigned_user_id = ?", userID)
	if since != nil {
		q = q.Where("created_at >= ?", since.UTC())
	}
	var tasks []model.Task
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListRecentAssigned returns the user's limit newest tasks.
func (r *TaskRepository) ListRecentAssigned(ctx context.Context, userID uint, limit int) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("assigned_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus counts the user's tasks whose status is exactly one of statuses.
func (r *TaskRepository) CountByStatus(ctx context.Context, userID uint, statuses ...string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_user_id = ? AND status IN ?", userID, statuses).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return int(count), nil
}

// CountOverdue counts the user's tasks due before the given time.
func (r *TaskRepository) CountOverdue(ctx context.Context, userID uint, before time.Time) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_user_id = ? AND due_date IS NOT NULL AND due_date < ?", userID, before.UTC()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return int(count), nil
}

// UpdateStatus reports false when the task does not exist.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID uint, status string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("update task status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Assign sets or clears (userID == nil) the assignee. It reports false when
// the task does not exist.
func (r *TaskRepository) Assign(ctx context.Context, taskID uint, userID *uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).Update("assigned_user_id", userID)
	if res.Error != nil {
		return false, fmt.Errorf("assign task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete reports false when the task does not exist.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, taskID)
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Update writes the editable fields of task. It reports false when the task
// does not exist.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", task.ID).
		Select("Title", "Description", "Status", "Priority", "DueDate", "AssignedUserID").
		Updates(task)
	if res.Error != nil {
		return false, fmt.Errorf("update task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
