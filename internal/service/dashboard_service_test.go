package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	user := model.User{Name: "ana"}
	require.NoError(t, s.users.Create(ctx, &user))

	for _, name := range []string{"p1", "p2", "p3", "p4"} {
		_, err := s.projects.Create(ctx, ProjectInput{Name: name, MemberIDs: []uint{user.ID}})
		require.NoError(t, err)
	}

	base := fixedNow.AddDate(0, 0, -5)
	seed := []model.Task{
		{Title: "a", Status: "Done", CreatedAt: base},
		{Title: "b", Status: "Open", CreatedAt: base.Add(time.Hour), DueDate: timePtr(fixedNow.AddDate(0, 0, -1))},
		{Title: "c", Status: "In Progress", CreatedAt: base.Add(2 * time.Hour), DueDate: timePtr(fixedNow)},
		{Title: "d", Status: "done", CreatedAt: base.Add(3 * time.Hour)},
	}
	for i := range seed {
		seed[i].ProjectID = 1
		seed[i].AssignedUserID = &user.ID
		require.NoError(t, s.taskRepo.Create(ctx, &seed[i]))
	}

	svc := NewDashboardService(s.taskRepo, s.projRepo)
	svc.now = func() time.Time { return fixedNow }

	d, err := svc.Dashboard(ctx, user.ID)
	require.NoError(t, err)

	assert.Len(t, d.Projects, 3)
	require.Len(t, d.RecentTasks, 3)
	assert.Equal(t, "d", d.RecentTasks[0].Title)
	assert.Equal(t, 1, d.DoneTasks)
	assert.Equal(t, 2, d.ActiveTasks)
	assert.Equal(t, 1, d.OverdueTasks)
	assert.Equal(t, 33.3, d.CompletionRate)
}

func TestDashboardService_NoTasks(t *testing.T) {
	s := newTestServices(t)
	d, err := NewDashboardService(s.taskRepo, s.projRepo).Dashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, d.CompletionRate)
	assert.Empty(t, d.RecentTasks)
}
