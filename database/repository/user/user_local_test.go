package userRepo

import (
	"context"
	"testing"

	"quotecompare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUserRepo(t *testing.T) {
	repo, err := NewLocalUserRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = repo.GetByID(ctx, "v1")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	require.NoError(t, repo.Upsert(ctx, &models.User{UID: "v1", Email: "v@example.com", Role: models.RoleVendor}))
	require.NoError(t, repo.IncrementResponseCount(ctx, "v1"))
	require.NoError(t, repo.IncrementResponseCount(ctx, "v1"))
	require.NoError(t, repo.SetDisabled(ctx, "v1", true))

	got, err := repo.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.QuotesResponded)
	assert.True(t, got.Disabled)
	assert.Equal(t, models.RoleVendor, got.Role)

	// Merge semantics create the document when absent.
	require.NoError(t, repo.SetDisabled(ctx, "ghost", true))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
