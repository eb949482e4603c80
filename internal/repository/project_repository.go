package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

// ProjectRepository manages projects and their members.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create stores the project together with its initial members.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint, withMembers, withTasks bool) (*model.Project, error) {
	q := r.db.WithContext(ctx)
	if withMembers {
		q = q.Preload("Users")
	}
	if withTasks {
		q = q.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
	}
	var project model.Project
	if err := q.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count projects: %w", err)
	}
	return count > 0, nil
}

// ListForUser returns the projects the user is a member of, newest first.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Preload("Users").
		Preload("Tasks").
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update overwrites the editable fields and stamps UpdatedAt.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project, now time.Time) error {
	project.UpdatedAt = &now
	err := r.db.WithContext(ctx).Model(project).Select("Name", "Description", "StartDate", "DueDate", "UpdatedAt").
		Updates(project).Error
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes the project, its tasks and its membership rows.
// It reports false when the project does not exist.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project := model.Project{ID: id}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&project).Association("Users").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&project)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return deleted, nil
}

// AddUsers attaches members, skipping the ones already attached.
func (r *ProjectRepository) AddUsers(ctx context.Context, projectID uint, users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	project := model.Project{ID: projectID}
	if err := r.db.WithContext(ctx).Model(&project).Association("Users").Append(users); err != nil {
		return fmt.Errorf("add project users: %w", err)
	}
	return nil
}

// RemoveUser detaches a member. It reports false when the user was not a member.
func (r *ProjectRepository) RemoveUser(ctx context.Context, projectID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Exec("DELETE FROM project_users WHERE project_id = ? AND user_id = ?", projectID, userID)
	if res.Error != nil {
		return false, fmt.Errorf("remove project user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IsMember reports whether the user belongs to the project.
func (r *ProjectRepository) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("project_users").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check project member: %w", err)
	}
	return count > 0, nil
}
