package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/testutil"
	apperrors "loreweave-api/pkg/errors"
)

type fixture struct {
	svc      *Service
	contents *testutil.ContentStore
	tags     *testutil.TagStore
	links    *testutil.LinkStore
	worldID  string
}

func newFixture() *fixture {
	f := &fixture{
		contents: testutil.NewContentStore(),
		tags:     testutil.NewTagStore(),
		links:    testutil.NewLinkStore(),
		worldID:  "world-1",
	}
	f.svc = NewService(f.contents, f.tags, f.links)
	return f
}

func (f *fixture) addPage(t *testing.T, id, authorID, authorName, title string) *entity.Page {
	t.Helper()
	p := entity.NewPage(f.worldID, authorID, authorName, title, "Body text with enough length for the engine.")
	p.ID = id
	require.NoError(t, f.contents.Create(context.Background(), p))
	return p
}

func (f *fixture) link(t *testing.T, from, to entity.ContentRef) {
	t.Helper()
	forward, reverse := entity.NewLinkPair(from, to, f.worldID, "u1")
	require.NoError(t, f.links.CreatePair(context.Background(), forward, reverse))
}

func TestEntityAttribution_Score(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addPage(t, "p1", "u1", "Alice", "Origins")
	own := f.addPage(t, "p2", "u1", "Alice", "The Vale")
	other := f.addPage(t, "p3", "u2", "Bob", "Emberfall")

	f.link(t, p.Ref(), own.Ref())
	f.link(t, p.Ref(), other.Ref())

	tag, err := f.tags.GetOrCreate(ctx, f.worldID, "fantasy", "u1")
	require.NoError(t, err)
	require.NoError(t, f.tags.Attach(ctx, p.Ref(), tag.ID, "u1"))

	report, err := f.svc.EntityAttribution(ctx, p.Ref())
	require.NoError(t, err)

	assert.Equal(t, "u1", report.AuthorID)
	assert.Equal(t, 2, report.ReferencesMade)
	assert.Equal(t, 2, report.ReferencesReceived)
	assert.Equal(t, 1, report.CrossAuthorReferencesMade)
	assert.Equal(t, int64(1), report.TagCount)
	// 得分 = 2×跨作者互链 + 标签数
	assert.Equal(t, int64(3), report.CollaborationScore)
	assert.True(t, report.IsCollaborative)
}

func TestEntityAttribution_NotCollaborativeWithoutCrossAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addPage(t, "p1", "u1", "Alice", "Origins")
	own := f.addPage(t, "p2", "u1", "Alice", "The Vale")
	f.link(t, p.Ref(), own.Ref())

	report, err := f.svc.EntityAttribution(ctx, p.Ref())
	require.NoError(t, err)
	assert.Zero(t, report.CrossAuthorReferencesMade)
	assert.Zero(t, report.CollaborationScore)
	assert.False(t, report.IsCollaborative)
}

func TestEntityAttribution_SkipsDanglingPeers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.addPage(t, "p1", "u1", "Alice", "Origins")
	other := f.addPage(t, "p3", "u2", "Bob", "Emberfall")
	f.link(t, p.Ref(), other.Ref())

	other.SoftDelete("mod-1")

	report, err := f.svc.EntityAttribution(ctx, p.Ref())
	require.NoError(t, err)
	assert.Zero(t, report.ReferencesMade)
	assert.Zero(t, report.CollaborationScore)
}

func TestEntityAttribution_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.EntityAttribution(context.Background(), entity.ContentRef{Kind: entity.KindPage, ID: "ghost"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))
}

func TestWorldStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := f.addPage(t, "p1", "u1", "Alice", "Origins")
	b := f.addPage(t, "p2", "u2", "Bob", "The Vale")
	c := f.addPage(t, "p3", "u1", "Alice", "Emberfall")

	f.link(t, a.Ref(), b.Ref()) // 跨作者
	f.link(t, a.Ref(), c.Ref()) // 同作者

	tag, err := f.tags.GetOrCreate(ctx, f.worldID, "fantasy", "u1")
	require.NoError(t, err)
	require.NoError(t, f.tags.Attach(ctx, a.Ref(), tag.ID, "u1"))

	stats, err := f.svc.WorldStats(ctx, f.worldID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalContent)
	assert.Equal(t, int64(3), stats.ContentByKind["page"])
	// 逻辑互链按镜像对只计一次
	assert.Equal(t, int64(2), stats.TotalLinks)
	assert.Equal(t, int64(1), stats.CrossAuthorLinks)
	assert.Equal(t, int64(1), stats.TotalTags)
	assert.Equal(t, int64(2), stats.ContributorCount)
	assert.InDelta(t, 1.5, stats.AvgEntriesPerContributor, 0.001)
	assert.InDelta(t, 0.5, stats.CollaborationRatio, 0.001)
	assert.False(t, stats.HighlyCollaborative)
}

func TestWorldStats_EmptyWorld(t *testing.T) {
	f := newFixture()
	stats, err := f.svc.WorldStats(context.Background(), "empty-world")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalContent)
	assert.Zero(t, stats.TotalLinks)
	assert.Zero(t, stats.ContributorCount)
	assert.Zero(t, stats.CollaborationRatio)
	assert.False(t, stats.HighlyCollaborative)
}

func TestWorldStats_HighlyCollaborative(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	hub := f.addPage(t, "hub", "u1", "Alice", "Hub")
	f.addPage(t, "x1", "u2", "Bob", "Bob Entry")
	f.addPage(t, "x2", "u3", "Carol", "Carol Entry")
	for i, author := range []string{"u2", "u2", "u2", "u3", "u3", "u3"} {
		peer := entity.NewPage(f.worldID, author, "Peer", "Peer "+string(rune('a'+i)), "Body text with enough length for the engine.")
		peer.ID = "peer-" + string(rune('a'+i))
		require.NoError(t, f.contents.Create(ctx, peer))
		f.link(t, hub.Ref(), peer.Ref())
	}

	stats, err := f.svc.WorldStats(ctx, f.worldID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.CrossAuthorLinks)
	assert.Equal(t, int64(3), stats.ContributorCount)
	assert.True(t, stats.HighlyCollaborative)
}

func TestAttributionNetwork(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a1 := f.addPage(t, "a1", "u1", "Alice", "Alice One")
	a2 := f.addPage(t, "a2", "u1", "Alice", "Alice Two")
	b1 := f.addPage(t, "b1", "u2", "Bob", "Bob One")
	c1 := f.addPage(t, "c1", "u3", "Carol", "Carol One")

	f.link(t, a1.Ref(), b1.Ref())
	f.link(t, a2.Ref(), b1.Ref())
	f.link(t, a1.Ref(), c1.Ref())

	network, err := f.svc.AttributionNetwork(ctx, f.worldID)
	require.NoError(t, err)

	require.Len(t, network.Authors, 3)
	// 按作品数排序，u1 居首
	assert.Equal(t, "u1", network.Authors[0].AuthorID)
	assert.Equal(t, int64(2), network.Authors[0].AuthoredCount)
	// 镜像行让收发两侧对称
	assert.Equal(t, int64(3), network.Authors[0].ReferencesMade)
	assert.Equal(t, int64(3), network.Authors[0].ReferencesReceived)
	assert.Equal(t, int64(2), network.Authors[0].Collaborators)

	// 每条有向引用各计一次，一条逻辑互链贡献 2
	require.Len(t, network.Pairs, 2)
	assert.Equal(t, "u1", network.Pairs[0].AuthorA)
	assert.Equal(t, "u2", network.Pairs[0].AuthorB)
	assert.Equal(t, int64(4), network.Pairs[0].SharedRefs)
	assert.Equal(t, "medium", network.Pairs[0].Strength)
	assert.Equal(t, int64(2), network.Pairs[1].SharedRefs)
	assert.Equal(t, "medium", network.Pairs[1].Strength)
}

func TestAttributionNetwork_IgnoresSameAuthorLinks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a1 := f.addPage(t, "a1", "u1", "Alice", "Alice One")
	a2 := f.addPage(t, "a2", "u1", "Alice", "Alice Two")
	f.link(t, a1.Ref(), a2.Ref())

	network, err := f.svc.AttributionNetwork(ctx, f.worldID)
	require.NoError(t, err)

	require.Len(t, network.Authors, 1)
	assert.Zero(t, network.Authors[0].ReferencesMade)
	assert.Zero(t, network.Authors[0].ReferencesReceived)
	assert.Zero(t, network.Authors[0].Collaborators)
	assert.Empty(t, network.Pairs)
}

func TestAttributionNetwork_SingleLinkPairStrength(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a1 := f.addPage(t, "a1", "u1", "Alice", "Alice One")
	b1 := f.addPage(t, "b1", "u2", "Bob", "Bob One")
	f.link(t, a1.Ref(), b1.Ref())

	network, err := f.svc.AttributionNetwork(ctx, f.worldID)
	require.NoError(t, err)

	require.Len(t, network.Pairs, 1)
	assert.Equal(t, int64(2), network.Pairs[0].SharedRefs)
	assert.Equal(t, "medium", network.Pairs[0].Strength)
}

func TestAttributionNetwork_ToleratesDanglingEndpoints(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a1 := f.addPage(t, "a1", "u1", "Alice", "Alice One")
	b1 := f.addPage(t, "b1", "u2", "Bob", "Bob One")
	f.link(t, a1.Ref(), b1.Ref())
	// 对端行被物理清除后互链行仍在
	f.link(t, a1.Ref(), entity.ContentRef{Kind: entity.KindEssay, ID: "ghost"})

	network, err := f.svc.AttributionNetwork(ctx, f.worldID)
	require.NoError(t, err)
	require.Len(t, network.Pairs, 1)
	assert.Equal(t, int64(2), network.Pairs[0].SharedRefs)
}

func TestPairStrength(t *testing.T) {
	assert.Equal(t, "low", pairStrength(1))
	assert.Equal(t, "medium", pairStrength(2))
	assert.Equal(t, "medium", pairStrength(4))
	assert.Equal(t, "high", pairStrength(5))
	assert.Equal(t, "high", pairStrength(12))
}

func TestWorldStats_PopularTagsAndRecentActivity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fresh := f.addPage(t, "p1", "u1", "Alice", "Origins")
	other := f.addPage(t, "p2", "u2", "Bob", "The Vale")
	old := entity.NewPage(f.worldID, "u1", "Alice", "Ancient Days", "Body text with enough length for the engine.")
	old.ID = "p3"
	old.CreatedAt = time.Now().Add(-45 * 24 * time.Hour)
	require.NoError(t, f.contents.Create(ctx, old))

	fantasy, err := f.tags.GetOrCreate(ctx, f.worldID, "fantasy", "u1")
	require.NoError(t, err)
	lore, err := f.tags.GetOrCreate(ctx, f.worldID, "lore", "u1")
	require.NoError(t, err)
	_, err = f.tags.GetOrCreate(ctx, f.worldID, "unused", "u1")
	require.NoError(t, err)
	require.NoError(t, f.tags.Attach(ctx, fresh.Ref(), fantasy.ID, "u1"))
	require.NoError(t, f.tags.Attach(ctx, other.Ref(), fantasy.ID, "u2"))
	require.NoError(t, f.tags.Attach(ctx, fresh.Ref(), lore.ID, "u1"))

	stats, err := f.svc.WorldStats(ctx, f.worldID)
	require.NoError(t, err)

	// 30 天窗口外的行不计入近期活跃
	assert.Equal(t, int64(2), stats.RecentContent)
	// 未被使用的标签不进热门榜
	require.Len(t, stats.PopularTags, 2)
	assert.Equal(t, "fantasy", stats.PopularTags[0].Name)
	assert.Equal(t, int64(2), stats.PopularTags[0].UsedCount)
	assert.Equal(t, "lore", stats.PopularTags[1].Name)
	assert.Equal(t, int64(1), stats.PopularTags[1].UsedCount)
}

func TestAttributionNetwork_ContributorDetail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := entity.NewPage(f.worldID, "u1", "Alice", "Alice One", "Body text with enough length for the engine.")
	first.ID = "a1"
	first.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.contents.Create(ctx, first))

	last := entity.NewEssay(f.worldID, "u1", "Alice", "Alice Two", "Body text with enough length for the engine.", "")
	last.ID = "a2"
	last.CreatedAt = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.contents.Create(ctx, last))

	network, err := f.svc.AttributionNetwork(ctx, f.worldID)
	require.NoError(t, err)

	require.Len(t, network.Authors, 1)
	agg := network.Authors[0]
	assert.Equal(t, int64(2), agg.AuthoredCount)
	assert.Equal(t, int64(1), agg.AuthoredByKind["page"])
	assert.Equal(t, int64(1), agg.AuthoredByKind["essay"])
	require.NotNil(t, agg.FirstContributionAt)
	require.NotNil(t, agg.LastContributionAt)
	assert.Equal(t, first.CreatedAt, *agg.FirstContributionAt)
	assert.Equal(t, last.CreatedAt, *agg.LastContributionAt)
}

func TestRelatedContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	base := f.addPage(t, "p1", "u1", "Alice", "Origins")
	twoShared := f.addPage(t, "p2", "u2", "Bob", "The Vale")
	oneShared := f.addPage(t, "p3", "u3", "Carol", "Emberfall")
	linked := f.addPage(t, "p4", "u2", "Bob", "Harbor")
	sameAuthor := f.addPage(t, "p5", "u1", "Alice", "Alice Again")

	fantasy, err := f.tags.GetOrCreate(ctx, f.worldID, "fantasy", "u1")
	require.NoError(t, err)
	lore, err := f.tags.GetOrCreate(ctx, f.worldID, "lore", "u1")
	require.NoError(t, err)
	for _, ref := range []entity.ContentRef{base.Ref(), twoShared.Ref(), oneShared.Ref()} {
		require.NoError(t, f.tags.Attach(ctx, ref, fantasy.ID, "u1"))
	}
	require.NoError(t, f.tags.Attach(ctx, base.Ref(), lore.ID, "u1"))
	require.NoError(t, f.tags.Attach(ctx, twoShared.Ref(), lore.ID, "u2"))

	f.link(t, base.Ref(), linked.Ref())

	report, err := f.svc.RelatedContent(ctx, base.Ref())
	require.NoError(t, err)

	require.Len(t, report.ByTags, 2)
	assert.Equal(t, twoShared.Ref(), report.ByTags[0].Ref)
	assert.Equal(t, int64(2), report.ByTags[0].SharedTags)
	assert.Equal(t, oneShared.Ref(), report.ByTags[1].Ref)
	assert.Equal(t, int64(1), report.ByTags[1].SharedTags)

	require.Len(t, report.ByLinks, 1)
	assert.Equal(t, linked.Ref(), report.ByLinks[0].Ref)

	require.Len(t, report.BySameAuthor, 1)
	assert.Equal(t, sameAuthor.Ref(), report.BySameAuthor[0].Ref)
}

func TestRelatedContent_NotFoundAndDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.RelatedContent(ctx, entity.ContentRef{Kind: entity.KindPage, ID: "ghost"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))

	p := f.addPage(t, "p1", "u1", "Alice", "Origins")
	p.SoftDelete("mod-1")
	require.NoError(t, f.contents.Update(ctx, p))
	_, err = f.svc.RelatedContent(ctx, p.Ref())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))
}
