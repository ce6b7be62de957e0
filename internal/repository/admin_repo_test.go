package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSaveReplacesPassword(t *testing.T) {
	repo := NewAdminRepo(newTestDB(t))

	first, err := repo.Save(context.Background(), " Admin@Example.com ", "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", first.Email)

	second, err := repo.Save(context.Background(), "admin@example.com", "hash-2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "hash-2", second.Password)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
