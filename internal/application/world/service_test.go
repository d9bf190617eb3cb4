package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	"loreweave-api/internal/testutil"
	apperrors "loreweave-api/pkg/errors"
)

func newService() (*Service, *testutil.WorldStore, *testutil.ProfileStore) {
	worlds := testutil.NewWorldStore()
	profiles := testutil.NewProfileStore()
	return NewService(testutil.Tx{}, worlds, profiles), worlds, profiles
}

func TestCreate(t *testing.T) {
	svc, _, profiles := newService()
	ctx := context.Background()

	w := entity.NewWorld("Emberfall", "A dying-sun setting", "u1", "Alice")
	require.NoError(t, svc.Create(ctx, w))
	assert.NotEmpty(t, w.ID)

	p, err := profiles.GetByActor(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(1), p.WorldsCreated)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	err := svc.Create(ctx, entity.NewWorld("ab", "", "u1", "Alice"))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	err = svc.Create(ctx, entity.NewWorld("Emberfall", "", "", ""))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Get(context.Background(), "ghost")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeWorldNotFound))
}

func TestUpdateMetadata(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	w := entity.NewWorld("Emberfall", "Old description", "u1", "Alice")
	require.NoError(t, svc.Create(ctx, w))

	updated, err := svc.UpdateMetadata(ctx, w.ID, "Emberfall Reborn", "")
	require.NoError(t, err)
	assert.Equal(t, "Emberfall Reborn", updated.Title)
	assert.Equal(t, "Old description", updated.Description)

	_, err = svc.UpdateMetadata(ctx, w.ID, "ab", "")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
}

func TestListByCreator(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, entity.NewWorld("World One", "", "u1", "Alice")))
	require.NoError(t, svc.Create(ctx, entity.NewWorld("World Two", "", "u1", "Alice")))
	require.NoError(t, svc.Create(ctx, entity.NewWorld("Other World", "", "u2", "Bob")))

	result, err := svc.ListByCreator(ctx, "u1", repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	all, err := svc.List(ctx, repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
}
