package service

import (
	"context"
	"time"

	"task-tracker/internal/analytics"
	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

const (
	dashboardRecentTasks    = 3
	dashboardRecentProjects = 3
)

// Dashboard is the landing-page overview for one user.
type Dashboard struct {
	Projects       []model.Project `json:"projects"`
	RecentTasks    []model.Task    `json:"recentTasks"`
	DoneTasks      int             `json:"doneTasks"`
	ActiveTasks    int             `json:"activeTasks"`
	OverdueTasks   int             `json:"overdueTasks"`
	CompletionRate float64         `json:"completionRate"`
}

// DashboardService assembles the overview from stored counters.
type DashboardService struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	now         func() time.Time
}

func NewDashboardService(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository) *DashboardService {
	return &DashboardService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard counts statuses by exact match, unlike the analytics report.
// Overdue means due before today's midnight UTC.
func (s *DashboardService) Dashboard(ctx context.Context, userID uint) (Dashboard, error) {
	var d Dashboard

	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return d, err
	}
	if len(projects) > dashboardRecentProjects {
		projects = projects[:dashboardRecentProjects]
	}
	d.Projects = projects

	if d.RecentTasks, err = s.taskRepo.ListRecentAssigned(ctx, userID, dashboardRecentTasks); err != nil {
		return d, err
	}
	if d.DoneTasks, err = s.taskRepo.CountByStatus(ctx, userID, "Done"); err != nil {
		return d, err
	}
	if d.ActiveTasks, err = s.taskRepo.CountByStatus(ctx, userID, "In Progress", "Open"); err != nil {
		return d, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.OverdueTasks, err = s.taskRepo.CountOverdue(ctx, userID, today); err != nil {
		return d, err
	}

	d.CompletionRate = analytics.Percent(d.DoneTasks, d.DoneTasks+d.ActiveTasks)
	return d, nil
}
