package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

const maxProjectNameLen = 200

// ProjectInput carries the editable project fields.
type ProjectInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
	MemberIDs   []uint     `json:"memberIds"`
}

// ProjectService manages projects and their membership.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
}

func NewProjectService(projectRepo *repository.ProjectRepository, userRepo *repository.UserRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, userRepo: userRepo}
}

// Create stores a project. Unknown member ids are ignored.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	name, err := validProjectName(input.Name)
	if err != nil {
		return nil, err
	}

	members, err := s.userRepo.FindExisting(ctx, input.MemberIDs)
	if err != nil {
		return nil, err
	}

	project := model.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		StartDate:   utc(input.StartDate),
		DueDate:     utc(input.DueDate),
		Users:       members,
	}
	if err := s.projectRepo.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, true, true)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

// ListForUser returns the user's projects, newest first.
func (s *ProjectService) ListForUser(ctx context.Context, userID uint) ([]model.Project, error) {
	return s.projectRepo.ListForUser(ctx, userID)
}

// Update replaces the editable fields. Membership is left untouched.
func (s *ProjectService) Update(ctx context.Context, id uint, input ProjectInput) (*model.Project, error) {
	name, err := validProjectName(input.Name)
	if err != nil {
		return nil, err
	}
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = strings.TrimSpace(input.Description)
	project.StartDate = utc(input.StartDate)
	project.DueDate = utc(input.DueDate)
	if err := s.projectRepo.Update(ctx, project, time.Now().UTC()); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	ok, err := s.projectRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

// AddMembers attaches existing users; unknown ids and current members are skipped.
func (s *ProjectService) AddMembers(ctx context.Context, projectID uint, userIDs []uint) error {
	if err := s.requireProject(ctx, projectID); err != nil {
		return err
	}
	users, err := s.userRepo.FindExisting(ctx, userIDs)
	if err != nil {
		return err
	}
	return s.projectRepo.AddUsers(ctx, projectID, users)
}

// AddMemberByEmail attaches the user registered under email. It reports
// false when the user already is a member.
func (s *ProjectService) AddMemberByEmail(ctx context.Context, projectID uint, email string) (*model.User, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, false, ErrEmailRequired
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, false, err
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ErrUserNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	member, err := s.projectRepo.IsMember(ctx, projectID, user.ID)
	if err != nil {
		return nil, false, err
	}
	if member {
		return user, false, nil
	}
	if err := s.projectRepo.AddUsers(ctx, projectID, []model.User{*user}); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// RemoveMember reports false when the user was not a member.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, userID uint) (bool, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return false, err
	}
	return s.projectRepo.RemoveUser(ctx, projectID, userID)
}

func (s *ProjectService) requireProject(ctx context.Context, projectID uint) error {
	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProjectNotFound
	}
	return nil
}

func validProjectName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrProjectNameRequired
	}
	if utf8.RuneCountInString(name) > maxProjectNameLen {
		return "", ErrProjectNameTooLong
	}
	return name, nil
}
