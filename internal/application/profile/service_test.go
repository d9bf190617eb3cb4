package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreweave-api/internal/testutil"
	apperrors "loreweave-api/pkg/errors"
)

func TestGet_NotFound(t *testing.T) {
	svc := NewService(testutil.NewProfileStore())
	_, err := svc.Get(context.Background(), "ghost")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestUpdate_CreatesAndUpdates(t *testing.T) {
	svc := NewService(testutil.NewProfileStore())
	ctx := context.Background()

	p, err := svc.Update(ctx, "u1", "Alice", "Cartographer of the Vale")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, "Cartographer of the Vale", p.Bio)

	// 空字段保持原值
	p, err = svc.Update(ctx, "u1", "", "New bio")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, "New bio", p.Bio)

	got, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "New bio", got.Bio)
}
