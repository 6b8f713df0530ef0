package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskassistant/internal/models"
)

// openTestDB connects to TEST_DATABASE_URL or skips.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestPostgresTasks_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	now := time.Now().UTC().Truncate(time.Microsecond)
	deadline := now.Add(48 * time.Hour)
	desc := "plan it"
	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      uuid.NewString(),
		Title:       "Party",
		Description: &desc,
		Deadline:    &deadline,
		Priority:    models.PriorityHigh,
		Subtasks: []models.Subtask{
			{ID: uuid.NewString(), Title: "Invite", Description: "Invite friends", Order: 0},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Store(ctx, task))
	t.Cleanup(func() { _ = repo.Delete(ctx, task.ID) })

	got, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Party", got.Title)
	assert.True(t, deadline.Equal(*got.Deadline))
	require.Len(t, got.Subtasks, 1)
	assert.Equal(t, "Invite", got.Subtasks[0].Title)

	got.Subtasks[0].Completed = true
	got.Completed = true
	require.NoError(t, repo.Update(ctx, got))

	list, err := repo.FindByUser(ctx, task.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Subtasks[0].Completed)

	require.NoError(t, repo.Delete(ctx, task.ID))
	_, err = repo.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresChat_RecentWindow(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewChatRepository(db)
	userID := uuid.NewString()

	for _, c := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, models.ChatMessage{
			ID: uuid.NewString(), UserID: userID, Role: models.RoleUser, Content: c, CreatedAt: time.Now(),
		}))
	}
	recent, err := repo.ListByUser(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].Content)
	assert.Equal(t, "c", recent[1].Content)
}
