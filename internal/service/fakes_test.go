package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

type fakeTaskSource struct {
	tasks     []model.Task
	err       error
	calls     int
	lastUser  uint
	lastSince *time.Time
	onList    func(ctx context.Context)
}

func (f *fakeTaskSource) ListAssignedTo(ctx context.Context, userID uint, since *time.Time) ([]model.Task, error) {
	f.calls++
	f.lastUser = userID
	f.lastSince = since
	if f.onList != nil {
		f.onList(ctx)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.NewDB(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func timePtr(t time.Time) *time.Time { return &t }

func uintPtr(v uint) *uint { return &v }
