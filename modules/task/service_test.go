package task

import (
	"context"
	"testing"
	"time"

	taskdomain "github.com/example/task-service/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService builds a service over an in-memory database, with no
// cache and no event bus.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := taskdomain.NewRepository(db)
	require.NoError(t, repo.Migrate())

	return NewService(repo)
}

func newTask(id uint) *taskdomain.Task {
	return &taskdomain.Task{
		TaskID:        id,
		TaskName:      "Write report",
		Description:   "Quarterly report",
		Status:        taskdomain.StatusPending,
		DueDate:       taskdomain.NewDueDate(time.Now().AddDate(0, 0, 7)),
		Duration:      taskdomain.NewDuration(2 * 24 * 3600),
		Priority:      3,
		Labels:        taskdomain.StringSet{"report"},
		ExtraMetadata: taskdomain.StringMap{"team": "finance"},
		Participants:  taskdomain.StringList{"alice"},
	}
}

func TestServiceCreate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, newTask(1))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, uint(1), rec.TaskID)
	assert.Equal(t, "2 days, 0:00:00", rec.Duration)
	assert.False(t, rec.CreatedAt.IsZero(), "created_at must be stamped")
}

func TestServiceCreateDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newTask(1))
	require.NoError(t, err)

	_, err = svc.Create(ctx, newTask(1))
	assert.ErrorIs(t, err, taskdomain.ErrDuplicateID)
}

func TestServiceGetByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, newTask(1))
	require.NoError(t, err)

	rec, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, created.TaskName, rec.TaskName)

	absent, err := svc.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestServiceList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for id := uint(1); id <= 3; id++ {
		_, err := svc.Create(ctx, newTask(id))
		require.NoError(t, err)
	}

	recs, err := svc.List(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	page, err := svc.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, uint(2), page[0].TaskID)
}

func TestServiceUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, newTask(1))
	require.NoError(t, err)

	changed := newTask(1)
	changed.TaskName = "Finish report"
	changed.Status = taskdomain.StatusInProgress

	rec, err := svc.Update(ctx, 1, changed)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Finish report", rec.TaskName)
	assert.Equal(t, taskdomain.StatusInProgress, rec.Status)
	assert.True(t, rec.CreatedAt.Equal(created.CreatedAt), "created_at must be preserved")

	absent, err := svc.Update(ctx, 99, newTask(99))
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestServiceDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newTask(1))
	require.NoError(t, err)

	rec, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, uint(1), rec.TaskID)

	gone, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, gone)

	absent, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestTaskResponseRendering(t *testing.T) {
	rec := &taskdomain.TaskRecord{
		TaskID:    1,
		TaskName:  "Write report",
		Status:    taskdomain.StatusPending,
		DueDate:   time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
		Duration:  "2 days, 5:30:00",
		Priority:  3,
	}

	resp := NewTaskResponse(rec)
	assert.Equal(t, "2026-01-15", resp.DueDate)
	assert.Equal(t, "2 days, 5:30:00", resp.Duration)
	assert.NotNil(t, resp.Labels, "labels must never be null")
	assert.NotNil(t, resp.ExtraMetadata, "extra_metadata must never be null")
	assert.NotNil(t, resp.Participants, "participants must never be null")
}
