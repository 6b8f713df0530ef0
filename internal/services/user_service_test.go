package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"taskassistant/internal/repositories"
)

func TestUserService_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryStore().Users(), zaptest.NewLogger(t))

	u, err := svc.Create(ctx, " alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, u.ID)

	byID, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)

	byName, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = svc.Create(ctx, "alice")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = svc.Create(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
