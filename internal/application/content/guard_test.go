package content

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

type fixture struct {
	svc      *Service
	contents *testutil.ContentStore
	tags     *testutil.TagStore
	links    *testutil.LinkStore
	profiles *testutil.ProfileStore
	worlds   *testutil.WorldStore
	worldID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		contents: testutil.NewContentStore(),
		tags:     testutil.NewTagStore(),
		links:    testutil.NewLinkStore(),
		profiles: testutil.NewProfileStore(),
		worlds:   testutil.NewWorldStore(),
	}
	f.svc = NewService(testutil.Tx{}, f.contents, f.tags, f.links, f.profiles, f.worlds)

	w := entity.NewWorld("Emberfall", "A dying-sun setting", "creator-1", "Cass")
	require.NoError(t, f.worlds.Create(context.Background(), w))
	f.worldID = w.ID
	return f
}

func (f *fixture) newPage(t *testing.T, authorID, title string) *entity.Page {
	t.Helper()
	p := entity.NewPage(f.worldID, authorID, "Author "+authorID, title, "Body text long enough to pass validation.")
	require.NoError(t, f.svc.Create(context.Background(), p))
	return p
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	short := entity.NewPage(f.worldID, "u1", "Alice", "ab", "Body text long enough to pass validation.")
	err := f.svc.Create(ctx, short)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTitleTooShort))

	tiny := entity.NewPage(f.worldID, "u1", "Alice", "Origins", "too short")
	err = f.svc.Create(ctx, tiny)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeBodyTooShort))

	orphan := entity.NewPage("no-such-world", "u1", "Alice", "Origins", "Body text long enough to pass validation.")
	err = f.svc.Create(ctx, orphan)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeWorldNotFound))
}

func TestCreate_DuplicateTitleCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.newPage(t, "u1", "The Sunken Keep")

	dup := entity.NewPage(f.worldID, "u2", "Bob", "the sunken keep", "Body text long enough to pass validation.")
	err := f.svc.Create(ctx, dup)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateTitle))

	// 同标题不同类型不冲突
	essay := entity.NewEssay(f.worldID, "u2", "Bob", "The Sunken Keep", "Body text long enough to pass validation.", "")
	assert.NoError(t, f.svc.Create(ctx, essay))
}

func TestCreate_IncrementsContribution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.newPage(t, "u1", "One")
	f.newPage(t, "u1", "Two")

	p, err := f.profiles.GetByActor(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(2), p.ContributionCount)
}

func TestWrite_RejectsFrozenFieldChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored := f.newPage(t, "u1", "Origins")

	proposed := *stored
	proposed.Title = "Origins, Revised"
	err := f.svc.Write(ctx, &proposed)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeImmutableContent))

	// 存量行保持原样
	got, err := f.svc.Get(ctx, stored.Ref(), false)
	require.NoError(t, err)
	assert.Equal(t, "Origins", got.Meta().Title)
}

func TestWrite_NoopWhenFrozenEqual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored := f.newPage(t, "u1", "Origins")

	proposed := *stored
	assert.NoError(t, f.svc.Write(ctx, &proposed))
}

func TestWrite_CreatesWhenNoStoredRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := entity.NewPage(f.worldID, "u1", "Alice", "Fresh Entry", "Body text long enough to pass validation.")
	require.NoError(t, f.svc.Write(ctx, p))

	got, err := f.svc.Get(ctx, p.Ref(), false)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Entry", got.Meta().Title)
}

func TestSoftDeleteRestore_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPage(t, "u1", "Origins")

	require.NoError(t, f.svc.SoftDelete(ctx, p.Ref(), "mod-1"))

	_, err := f.svc.Get(ctx, p.Ref(), false)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))

	got, err := f.svc.Get(ctx, p.Ref(), true)
	require.NoError(t, err)
	assert.True(t, got.Meta().IsDeleted)
	assert.Equal(t, "mod-1", got.Meta().DeletedBy)

	require.NoError(t, f.svc.Restore(ctx, p.Ref()))
	got, err = f.svc.Get(ctx, p.Ref(), false)
	require.NoError(t, err)
	assert.False(t, got.Meta().IsDeleted)
	assert.Nil(t, got.Meta().DeletedAt)
}

func TestSoftDelete_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPage(t, "u1", "Origins")

	require.NoError(t, f.svc.SoftDelete(ctx, p.Ref(), "mod-1"))
	require.NoError(t, f.svc.SoftDelete(ctx, p.Ref(), "mod-2"))

	got, err := f.svc.Get(ctx, p.Ref(), true)
	require.NoError(t, err)
	// 幂等：第二次删除不改写删除人
	assert.Equal(t, "mod-1", got.Meta().DeletedBy)

	prof, err := f.profiles.GetByActor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), prof.ContributionCount)
}

func TestRestore_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPage(t, "u1", "Origins")

	require.NoError(t, f.svc.Restore(ctx, p.Ref()))
	prof, err := f.profiles.GetByActor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), prof.ContributionCount)
}

func TestSoftDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.svc.SoftDelete(context.Background(), entity.ContentRef{Kind: entity.KindPage, ID: "ghost"}, "mod-1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))
}

func TestForceWrite_BypassesGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored := f.newPage(t, "u1", "Origins")

	proposed := *stored
	proposed.Title = "Origins, Corrected"
	require.NoError(t, f.svc.ForceWrite(ctx, &proposed))

	got, err := f.svc.Get(ctx, stored.Ref(), false)
	require.NoError(t, err)
	assert.Equal(t, "Origins, Corrected", got.Meta().Title)
}

func TestForceWrite_StillChecksDuplicateTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.newPage(t, "u1", "Origins")
	other := f.newPage(t, "u1", "Elsewhere")

	proposed := *other
	proposed.Title = "origins"
	err := f.svc.ForceWrite(ctx, &proposed)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateTitle))
}

func TestPurge_CascadesTagsAndLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newPage(t, "u1", "Origins")
	q := f.newPage(t, "u2", "The Vale")

	tag, err := f.tags.GetOrCreate(ctx, f.worldID, "fantasy", "u1")
	require.NoError(t, err)
	require.NoError(t, f.tags.Attach(ctx, p.Ref(), tag.ID, "u1"))

	forward, reverse := entity.NewLinkPair(p.Ref(), q.Ref(), f.worldID, "u1")
	require.NoError(t, f.links.CreatePair(ctx, forward, reverse))

	require.NoError(t, f.svc.Purge(ctx, p.Ref()))

	_, err = f.svc.Get(ctx, p.Ref(), true)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))

	n, err := f.tags.CountByContent(ctx, p.Ref())
	require.NoError(t, err)
	assert.Zero(t, n)

	rows, err := f.links.ListFrom(ctx, q.Ref())
	require.NoError(t, err)
	assert.Empty(t, rows)

	prof, err := f.profiles.GetByActor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), prof.ContributionCount)
}

func TestList_DeletedOnlyFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	live := f.newPage(t, "u1", "Alive")
	gone := f.newPage(t, "u1", "Gone")
	require.NoError(t, f.svc.SoftDelete(ctx, gone.Ref(), "mod-1"))

	result, err := f.svc.List(ctx, f.worldID, entity.KindPage,
		repository.ContentFilter{DeletedOnly: true}, repository.NewPagination(1, 20))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, gone.ID, result.Items[0].Meta().ID)

	result, err = f.svc.List(ctx, f.worldID, entity.KindPage,
		repository.ContentFilter{}, repository.NewPagination(1, 20))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, live.ID, result.Items[0].Meta().ID)
}
