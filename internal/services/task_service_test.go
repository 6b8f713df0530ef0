package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
)

type stubSupport struct{ msg string }

func (s stubSupport) Generate(context.Context, string, *time.Time) string { return s.msg }

func newTaskFixture(t *testing.T) (TaskService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	seedUser(t, store, "u1")
	svc := NewTaskService(store.Tasks(), store.Users(), stubSupport{msg: "you can do it"}, zaptest.NewLogger(t))
	return svc, store
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestTaskService_CreateSetsSupportAndPriority(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "  Write report ", Priority: "URGENT"})
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	require.NotNil(t, task.EmotionalSupport)
	assert.Equal(t, "you can do it", *task.EmotionalSupport)
	assert.NotNil(t, task.Subtasks)

	got, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
}

func TestTaskService_CreateErrors(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, "ghost", models.TaskCreate{Title: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrTaskNotFound)
}

func TestTaskService_CompletingTaskCompletesSubtasks(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "Move"})
	require.NoError(t, err)
	for _, title := range []string{"Pack", "Load", "Unpack"} {
		_, err := addSubtask(ctx, svc, task.ID, models.SubtaskCreate{Title: title})
		require.NoError(t, err)
	}

	updated, err := svc.Update(ctx, task.ID, models.TaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	for _, s := range updated.Subtasks {
		assert.True(t, s.Completed, s.Title)
	}

	// un-completing the task leaves subtasks alone
	updated, err = svc.Update(ctx, task.ID, models.TaskUpdate{Completed: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.True(t, updated.Subtasks[0].Completed)
}

func TestTaskService_SubtaskUpdateRecomputesTask(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "Trip"})
	require.NoError(t, err)
	a, err := addSubtask(ctx, svc, task.ID, models.SubtaskCreate{Title: "Book"})
	require.NoError(t, err)
	b, err := addSubtask(ctx, svc, task.ID, models.SubtaskCreate{Title: "Pack"})
	require.NoError(t, err)

	got, err := svc.UpdateSubtask(ctx, task.ID, a.ID, models.SubtaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.False(t, got.Completed)

	got, err = svc.UpdateSubtask(ctx, task.ID, b.ID, models.SubtaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.Completed)

	got, err = svc.UpdateSubtask(ctx, task.ID, a.ID, models.SubtaskUpdate{Completed: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestTaskService_TaskWithoutSubtasksKeepsFlag(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "Call mom"})
	require.NoError(t, err)
	got, err := svc.Update(ctx, task.ID, models.TaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Empty(t, got.Subtasks)
}

func TestTaskService_AddSubtaskDefaults(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "Garden"})
	require.NoError(t, err)

	withFirst, err := svc.AddSubtask(ctx, task.ID, models.SubtaskCreate{Description: "Buy seeds"})
	require.NoError(t, err)
	require.Len(t, withFirst.Subtasks, 1)
	first := withFirst.Subtasks[0]
	assert.Equal(t, "Buy seeds", first.Title)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, task.ID, first.TaskID)

	second, err := addSubtask(ctx, svc, task.ID, models.SubtaskCreate{Title: "Plant"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	_, err = svc.AddSubtask(ctx, task.ID, models.SubtaskCreate{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddSubtask(ctx, "missing", models.SubtaskCreate{Title: "x"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_UpdateFieldsAndDeadline(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()
	deadline := time.Date(2025, 7, 1, 23, 59, 59, 0, time.UTC)

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "Tax", Deadline: &deadline})
	require.NoError(t, err)

	high := models.PriorityHigh
	got, err := svc.Update(ctx, task.ID, models.TaskUpdate{
		Title:       strPtr("Taxes 2025"),
		Description: strPtr("federal and state"),
		Priority:    &high,
	})
	require.NoError(t, err)
	assert.Equal(t, "Taxes 2025", got.Title)
	assert.Equal(t, "federal and state", *got.Description)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	require.NotNil(t, got.Deadline)

	got, err = svc.Update(ctx, task.ID, models.TaskUpdate{ClearDeadline: true})
	require.NoError(t, err)
	assert.Nil(t, got.Deadline)

	_, err = svc.Update(ctx, task.ID, models.TaskUpdate{Title: strPtr(" ")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaskService_SubtaskEditAndDelete(t *testing.T) {
	svc, _ := newTaskFixture(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "Party"})
	require.NoError(t, err)
	a, err := addSubtask(ctx, svc, task.ID, models.SubtaskCreate{Title: "Invite"})
	require.NoError(t, err)
	b, err := addSubtask(ctx, svc, task.ID, models.SubtaskCreate{Title: "Cake"})
	require.NoError(t, err)

	got, err := svc.UpdateSubtask(ctx, task.ID, a.ID, models.SubtaskUpdate{Title: strPtr("Invite friends"), Order: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Invite friends", got.Subtasks[0].Title)
	assert.Equal(t, 5, got.Subtasks[0].Order)

	// a blank title falls back to the description
	got, err = svc.UpdateSubtask(ctx, task.ID, b.ID, models.SubtaskUpdate{Title: strPtr("  "), Description: strPtr("Order the cake")})
	require.NoError(t, err)
	assert.Equal(t, "Order the cake", got.Subtasks[1].Title)

	_, err = svc.UpdateSubtask(ctx, task.ID, a.ID, models.SubtaskUpdate{Title: strPtr(" "), Description: strPtr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	stored, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Invite friends", stored.Subtasks[0].Title)

	_, err = svc.UpdateSubtask(ctx, task.ID, "nope", models.SubtaskUpdate{})
	assert.ErrorIs(t, err, ErrSubtaskNotFound)

	_, err = svc.UpdateSubtask(ctx, task.ID, b.ID, models.SubtaskUpdate{Completed: boolPtr(true)})
	require.NoError(t, err)

	// removing the only incomplete subtask completes the task
	got, err = svc.DeleteSubtask(ctx, task.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 1)
	assert.True(t, got.Completed)

	_, err = svc.DeleteSubtask(ctx, task.ID, a.ID)
	assert.ErrorIs(t, err, ErrSubtaskNotFound)
}

func TestTaskService_ListByUserAndRefreshSupport(t *testing.T) {
	svc, store := newTaskFixture(t)
	ctx := context.Background()
	seedUser(t, store, "u2")

	_, err := svc.Create(ctx, "u1", models.TaskCreate{Title: "a"})
	require.NoError(t, err)
	other, err := svc.Create(ctx, "u2", models.TaskCreate{Title: "b"})
	require.NoError(t, err)

	list, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Title)

	_, err = svc.ListByUser(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	refreshed, err := svc.RefreshSupport(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "you can do it", *refreshed.EmotionalSupport)
}

// addSubtask returns the subtask just appended to the task.
func addSubtask(ctx context.Context, svc TaskService, taskID string, in models.SubtaskCreate) (models.Subtask, error) {
	task, err := svc.AddSubtask(ctx, taskID, in)
	if err != nil {
		return models.Subtask{}, err
	}
	return task.Subtasks[len(task.Subtasks)-1], nil
}
