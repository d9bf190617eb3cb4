package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/testutil"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

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
	f.svc = NewService(f.contents, f.tags)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) add(t *testing.T, c entity.Content, id string, createdAt time.Time) entity.Content {
	t.Helper()
	c.Meta().ID = id
	c.Meta().CreatedAt = createdAt
	require.NoError(t, f.contents.Create(context.Background(), c))
	return c
}

func ids(contents []entity.Content) []string {
	out := make([]string, 0, len(contents))
	for _, c := range contents {
		out = append(out, c.Meta().ID)
	}
	return out
}

func TestTimeline_MergesAcrossKindsNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "P1", "Page body with enough words."), "p1", testNow.Add(-3*time.Hour))
	f.add(t, entity.NewCharacter(f.worldID, "u2", "Bob", "C1", "Character body with enough words.", "C One"), "c1", testNow.Add(-2*time.Hour))
	f.add(t, entity.NewStory(f.worldID, "u1", "Alice", "S1", "Story body with enough words.", entity.StoryTypeShortStory), "s1", testNow.Add(-1*time.Hour))

	items, total, err := f.svc.Timeline(ctx, f.worldID, Filters{}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"s1", "c1", "p1"}, ids(items))
}

func TestTimeline_TiebreakByID(t *testing.T) {
	f := newFixture()
	at := testNow.Add(-time.Hour)
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "A", "Page body with enough words."), "a1", at)
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "B", "Page body with enough words."), "b1", at)

	items, _, err := f.svc.Timeline(context.Background(), f.worldID, Filters{}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "a1"}, ids(items))
}

func TestTimeline_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Origins", "Page body with enough words."), "p1", testNow.Add(-48*time.Hour))
	f.add(t, entity.NewStory(f.worldID, "u2", "Bob", "The March", "Story body with enough words.", entity.StoryTypeShortStory), "s1", testNow.Add(-1*time.Hour))

	// 类型过滤
	items, _, err := f.svc.Timeline(ctx, f.worldID, Filters{Kinds: []entity.ContentKind{entity.KindStory}}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids(items))

	// 作者过滤（子串匹配，不区分大小写）
	items, _, err = f.svc.Timeline(ctx, f.worldID, Filters{AuthorQuery: "ali"}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids(items))

	// 时间窗口过滤
	after := testNow.Add(-2 * time.Hour)
	items, _, err = f.svc.Timeline(ctx, f.worldID, Filters{CreatedAfter: &after}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids(items))
}

func TestTimeline_TagFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Origins", "Page body with enough words."), "p1", testNow.Add(-2*time.Hour))
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "The Vale", "Page body with enough words."), "p2", testNow.Add(-1*time.Hour))

	tag, err := f.tags.GetOrCreate(ctx, f.worldID, "fantasy", "u1")
	require.NoError(t, err)
	require.NoError(t, f.tags.Attach(ctx, p.Ref(), tag.ID, "u1"))

	items, total, err := f.svc.Timeline(ctx, f.worldID, Filters{Tags: []string{"fantasy"}}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"p1"}, ids(items))
}

func TestTimeline_ExcludesDeletedByDefault(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Alive", "Page body with enough words."), "p1", testNow.Add(-2*time.Hour))
	gone := f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Gone", "Page body with enough words."), "p2", testNow.Add(-1*time.Hour))
	gone.Meta().SoftDelete("mod-1")

	items, _, err := f.svc.Timeline(ctx, f.worldID, Filters{}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids(items))

	items, _, err = f.svc.Timeline(ctx, f.worldID, Filters{IncludeDeleted: true}, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, ids(items))
}

func TestTimeline_Paging(t *testing.T) {
	f := newFixture()
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Title "+id, "Page body with enough words."),
			id, testNow.Add(-time.Duration(i+1)*time.Hour))
	}

	items, total, err := f.svc.Timeline(context.Background(), f.worldID, Filters{}, Page{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"p3", "p4"}, ids(items))

	items, total, err = f.svc.Timeline(context.Background(), f.worldID, Filters{}, Page{Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, items)
}

func TestSearch_RelevanceOrdering(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// 标题命中权重高于正文出现次数
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Dragon Lore", "A body with enough length."), "p1", testNow.Add(-40*24*time.Hour))
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "The Vale", "dragon dragon dragon appears here often enough."), "p2", testNow.Add(-40*24*time.Hour))
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Unrelated", "Nothing of note in this body text."), "p3", testNow.Add(-time.Hour))

	hits, total, err := f.svc.Search(ctx, f.worldID, "Dragon", Filters{}, SortRelevance, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, hits, 2)
	assert.Equal(t, "p1", hits[0].Content.Meta().ID)
	assert.Equal(t, "p2", hits[1].Content.Meta().ID)
	assert.Greater(t, hits[0].Relevance, hits[1].Relevance)
}

func TestSearch_RecencyBoost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Old dragon", "Body text with enough length."), "p1", testNow.Add(-60*24*time.Hour))
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "New dragon", "Body text with enough length."), "p2", testNow.Add(-time.Hour))

	hits, _, err := f.svc.Search(ctx, f.worldID, "dragon", Filters{}, SortRelevance, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "p2", hits[0].Content.Meta().ID)
}

func TestSearch_SortModes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Beta dragon", "Body text with enough length."), "p1", testNow.Add(-2*time.Hour))
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "alpha dragon", "Body text with enough length."), "p2", testNow.Add(-1*time.Hour))

	hitIDs := func(hits []Hit) []string {
		var out []string
		for _, h := range hits {
			out = append(out, h.Content.Meta().ID)
		}
		return out
	}

	hits, _, err := f.svc.Search(ctx, f.worldID, "dragon", Filters{}, SortCreatedAsc, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, hitIDs(hits))

	hits, _, err = f.svc.Search(ctx, f.worldID, "dragon", Filters{}, SortCreatedDesc, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, hitIDs(hits))

	// 标题排序不区分大小写
	hits, _, err = f.svc.Search(ctx, f.worldID, "dragon", Filters{}, SortTitle, Page{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, hitIDs(hits))
}

func TestSearch_SortTitleTiebreaksByID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// 跨类型的同名标题靠 ID 决出确定顺序
	f.add(t, entity.NewPage(f.worldID, "u1", "Alice", "Dragon Lore", "Body text with enough length."), "b2", testNow.Add(-2*time.Hour))
	f.add(t, entity.NewStory(f.worldID, "u1", "Alice", "dragon lore", "Body text with enough length.", entity.StoryTypeShortStory), "a1", testNow.Add(-1*time.Hour))

	hits, _, err := f.svc.Search(ctx, f.worldID, "dragon", Filters{}, SortTitle, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a1", hits[0].Content.Meta().ID)
	assert.Equal(t, "b2", hits[1].Content.Meta().ID)
}
