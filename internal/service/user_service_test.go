package service

import (
	"context"
	"strings"
	"testing"

	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewUserServiceWith(db, testutils.TestLogger())
	ctx := context.Background()

	user, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.String())

	got, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Create(ctx, "alice")
	assert.True(t, database.IsUniqueViolation(err))

	for _, name := range []string{"", strings.Repeat("a", 151)} {
		_, err = svc.Create(ctx, name)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.True(t, ve.Has("Username"))
	}

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), ErrNotFound)
}
