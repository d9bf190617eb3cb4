package linking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/testutil"
	apperrors "loreweave-api/pkg/errors"
)

type fixture struct {
	svc      *Service
	contents *testutil.ContentStore
	links    *testutil.LinkStore
}

func newFixture() *fixture {
	f := &fixture{
		contents: testutil.NewContentStore(),
		links:    testutil.NewLinkStore(),
	}
	f.svc = NewService(testutil.Tx{}, f.links, f.contents)
	return f
}

func (f *fixture) addPage(t *testing.T, worldID, id, title string) *entity.Page {
	t.Helper()
	p := entity.NewPage(worldID, "u1", "Alice", title, "Body text long enough for the engine.")
	p.ID = id
	require.NoError(t, f.contents.Create(context.Background(), p))
	return p
}

func (f *fixture) addStory(t *testing.T, worldID, id, title string) *entity.Story {
	t.Helper()
	s := entity.NewStory(worldID, "u2", "Bob", title, "Body text long enough for the engine.", entity.StoryTypeShortStory)
	s.ID = id
	require.NoError(t, f.contents.Create(context.Background(), s))
	return s
}

func TestLink_CreatesMirrorPair(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w1", "s1", "The Long March")

	link, err := f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	require.NoError(t, err)
	assert.Equal(t, p.Ref(), link.From())
	assert.Equal(t, s.Ref(), link.To())

	// 两个方向都可见
	forward, err := f.links.ListFrom(ctx, p.Ref())
	require.NoError(t, err)
	assert.Len(t, forward, 1)
	reverse, err := f.links.ListFrom(ctx, s.Ref())
	require.NoError(t, err)
	assert.Len(t, reverse, 1)
}

func TestLink_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w1", "s1", "The Long March")

	_, err := f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	require.NoError(t, err)
	_, err = f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	require.NoError(t, err)

	rows, err := f.links.ListFrom(ctx, p.Ref())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLink_RejectsSelfLink(t *testing.T) {
	f := newFixture()
	p := f.addPage(t, "w1", "p1", "Origins")

	_, err := f.svc.Link(context.Background(), p.Ref(), p.Ref(), "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSelfLink))
}

func TestLink_RejectsCrossWorld(t *testing.T) {
	f := newFixture()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w2", "s1", "The Long March")

	_, err := f.svc.Link(context.Background(), p.Ref(), s.Ref(), "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeWorldMismatch))
}

func TestLink_RequiresLiveEndpoints(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w1", "s1", "The Long March")
	s.SoftDelete("mod-1")

	_, err := f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))

	_, err = f.svc.Link(ctx, p.Ref(), entity.ContentRef{Kind: entity.KindEssay, ID: "ghost"}, "u1")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeContentNotFound))
}

func TestUnlink_RemovesBothDirections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w1", "s1", "The Long March")

	_, err := f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	require.NoError(t, err)

	// 从任一端解除都清掉整对镜像行
	removed, err := f.svc.Unlink(ctx, s.Ref(), p.Ref())
	require.NoError(t, err)
	assert.True(t, removed)

	exists, err := f.svc.Exists(ctx, p.Ref(), s.Ref())
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = f.svc.Exists(ctx, s.Ref(), p.Ref())
	require.NoError(t, err)
	assert.False(t, exists)

	removed, err = f.svc.Unlink(ctx, p.Ref(), s.Ref())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLinkedTargetsAndSources_Symmetric(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w1", "s1", "The Long March")
	q := f.addPage(t, "w1", "p2", "The Vale")

	_, err := f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	require.NoError(t, err)
	_, err = f.svc.Link(ctx, q.Ref(), p.Ref(), "u1")
	require.NoError(t, err)

	targets, err := f.svc.LinkedTargets(ctx, p.Ref())
	require.NoError(t, err)
	sources, err := f.svc.LinkingSources(ctx, p.Ref())
	require.NoError(t, err)

	ids := func(contents []entity.Content) []string {
		var out []string
		for _, c := range contents {
			out = append(out, c.Meta().ID)
		}
		return out
	}
	assert.ElementsMatch(t, []string{"s1", "p2"}, ids(targets))
	assert.ElementsMatch(t, ids(targets), ids(sources))
}

func TestLinkedTargets_SkipsDanglingEndpoints(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.addPage(t, "w1", "p1", "Origins")
	s := f.addStory(t, "w1", "s1", "The Long March")

	_, err := f.svc.Link(ctx, p.Ref(), s.Ref(), "u1")
	require.NoError(t, err)

	// 对端被软删除后静默跳过，互链行本身保留
	s.SoftDelete("mod-1")

	targets, err := f.svc.LinkedTargets(ctx, p.Ref())
	require.NoError(t, err)
	assert.Empty(t, targets)

	rows, err := f.links.ListFrom(ctx, p.Ref())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
