package tagging

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
	worldID  string
}

func newFixture() *fixture {
	f := &fixture{
		contents: testutil.NewContentStore(),
		tags:     testutil.NewTagStore(),
		worldID:  "world-1",
	}
	f.svc = NewService(testutil.Tx{}, f.tags, f.contents)
	return f
}

func (f *fixture) addPage(t *testing.T, id, title string) *entity.Page {
	t.Helper()
	p := entity.NewPage(f.worldID, "u1", "Alice", title, "Body text long enough for the engine.")
	p.ID = id
	require.NoError(t, f.contents.Create(context.Background(), p))
	return p
}

func TestAddTag_NormalizesAndDeduplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "p1", "Origins")

	first, err := f.svc.AddTag(ctx, p.Ref(), "Fantasy", "u1")
	require.NoError(t, err)
	assert.Equal(t, "fantasy", first.Name)

	second, err := f.svc.AddTag(ctx, p.Ref(), "  fantasy  ", "u2")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	tags, err := f.svc.GetTags(ctx, p.Ref())
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestAddTag_RejectsReservedAndInvalidNames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "p1", "Origins")

	_, err := f.svc.AddTag(ctx, p.Ref(), "admin", "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeReservedTagName))

	_, err = f.svc.AddTag(ctx, p.Ref(), "x", "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidTagName))
}

func TestAddTag_DeletedContentNotTaggable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "p1", "Origins")
	p.SoftDelete("mod-1")

	_, err := f.svc.AddTag(ctx, p.Ref(), "fantasy", "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))
}

func TestRemoveTag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "p1", "Origins")

	_, err := f.svc.AddTag(ctx, p.Ref(), "fantasy", "u1")
	require.NoError(t, err)

	removed, err := f.svc.RemoveTag(ctx, p.Ref(), "FANTASY")
	require.NoError(t, err)
	assert.True(t, removed)

	// 已解除后再次解除返回 false
	removed, err = f.svc.RemoveTag(ctx, p.Ref(), "fantasy")
	require.NoError(t, err)
	assert.False(t, removed)

	// 不存在的标签同样返回 false
	removed, err = f.svc.RemoveTag(ctx, p.Ref(), "mythic")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestContentByTags_AnyAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.addPage(t, "p1", "Origins")
	p2 := f.addPage(t, "p2", "The Vale")
	p3 := f.addPage(t, "p3", "Emberfall")

	mustTag := func(ref entity.ContentRef, name string) {
		_, err := f.svc.AddTag(ctx, ref, name, "u1")
		require.NoError(t, err)
	}
	mustTag(p1.Ref(), "fantasy")
	mustTag(p1.Ref(), "history")
	mustTag(p2.Ref(), "fantasy")
	mustTag(p3.Ref(), "history")

	ids := func(contents []entity.Content) []string {
		var out []string
		for _, c := range contents {
			out = append(out, c.Meta().ID)
		}
		return out
	}

	// ANY 取并集
	got, err := f.svc.ContentByTags(ctx, f.worldID, entity.KindPage, []string{"fantasy", "history"}, repository.TagMatchAny)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, ids(got))

	// ALL 取交集
	got, err = f.svc.ContentByTags(ctx, f.worldID, entity.KindPage, []string{"fantasy", "history"}, repository.TagMatchAll)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1"}, ids(got))
}

func TestContentByTags_DuplicateSpellingsCollapse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.addPage(t, "p1", "Origins")
	_, err := f.svc.AddTag(ctx, p1.Ref(), "fantasy", "u1")
	require.NoError(t, err)

	// 规范化后相同的名字收敛为一个，ALL 模式按去重后的名字数比较
	got, err := f.svc.ContentByTags(ctx, f.worldID, entity.KindPage, []string{"Fantasy", " fantasy "}, repository.TagMatchAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Meta().ID)
}

func TestNormalizeNames_Dedupes(t *testing.T) {
	names, err := normalizeNames([]string{"Fantasy", " fantasy ", "history", "", "FANTASY"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fantasy", "history"}, names)
}

func TestContentByTags_EmptyNames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	got, err := f.svc.ContentByTags(ctx, f.worldID, entity.KindPage, nil, repository.TagMatchAny)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.svc.ContentByTags(ctx, f.worldID, entity.KindPage, []string{"  ", ""}, repository.TagMatchAll)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContentByTags_SkipsDeletedContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p1 := f.addPage(t, "p1", "Origins")
	p2 := f.addPage(t, "p2", "The Vale")

	_, err := f.svc.AddTag(ctx, p1.Ref(), "fantasy", "u1")
	require.NoError(t, err)
	_, err = f.svc.AddTag(ctx, p2.Ref(), "fantasy", "u1")
	require.NoError(t, err)

	p2.SoftDelete("mod-1")

	got, err := f.svc.ContentByTag(ctx, f.worldID, entity.KindPage, "fantasy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Meta().ID)
}

func TestRenameTag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "p1", "Origins")

	tag, err := f.svc.AddTag(ctx, p.Ref(), "fantasy", "u1")
	require.NoError(t, err)
	other, err := f.svc.AddTag(ctx, p.Ref(), "history", "u1")
	require.NoError(t, err)

	renamed, err := f.svc.RenameTag(ctx, tag.ID, "High Fantasy")
	require.NoError(t, err)
	assert.Equal(t, "high fantasy", renamed.Name)

	// 与现有标签冲突
	_, err = f.svc.RenameTag(ctx, other.ID, "high fantasy")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))

	// 重命名为自身不冲突
	_, err = f.svc.RenameTag(ctx, renamed.ID, "HIGH FANTASY")
	assert.NoError(t, err)
}

func TestDeleteTag_RemovesAttachments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "p1", "Origins")

	tag, err := f.svc.AddTag(ctx, p.Ref(), "fantasy", "u1")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTag(ctx, tag.ID))

	tags, err := f.svc.GetTags(ctx, p.Ref())
	require.NoError(t, err)
	assert.Empty(t, tags)

	err = f.svc.DeleteTag(ctx, tag.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTagNotFound))
}
