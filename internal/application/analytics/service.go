// Package analytics 提供归属与协作分析的只读计算
package analytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	apperrors "loreweave-api/pkg/errors"
)

// 协作强度阈值
const (
	PairStrengthMediumAt = 2
	PairStrengthHighAt   = 5
)

// 世界协作判定阈值
const (
	highlyCollaborativeLinks        = 5
	highlyCollaborativeContributors = 2
)

// 近期活跃统计窗口与报告列表上限
const (
	recentActivityWindow = 30 * 24 * time.Hour
	popularTagLimit      = 10
	relatedItemLimit     = 10
)

// EntityAttribution 单条内容的归属明细
type EntityAttribution struct {
	Ref                           entity.ContentRef `json:"ref"`
	AuthorID                      string            `json:"author_id"`
	AuthorName                    string            `json:"author_name"`
	ReferencesMade                int               `json:"references_made"`
	ReferencesReceived            int               `json:"references_received"`
	CrossAuthorReferencesMade     int               `json:"cross_author_references_made"`
	CrossAuthorReferencesReceived int               `json:"cross_author_references_received"`
	TagCount                      int64             `json:"tag_count"`
	CollaborationScore            int64             `json:"collaboration_score"`
	IsCollaborative               bool              `json:"is_collaborative"`
}

// WorldStats 世界级协作统计
type WorldStats struct {
	WorldID                  string           `json:"world_id"`
	TotalContent             int64            `json:"total_content"`
	ContentByKind            map[string]int64 `json:"content_by_kind"`
	RecentContent            int64            `json:"recent_content_30d"`
	TotalLinks               int64            `json:"total_links"`
	CrossAuthorLinks         int64            `json:"cross_author_links"`
	TotalTags                int64            `json:"total_tags"`
	PopularTags              []TagUsage       `json:"popular_tags"`
	ContributorCount         int64            `json:"contributor_count"`
	AvgEntriesPerContributor float64          `json:"avg_entries_per_contributor"`
	CollaborationRatio       float64          `json:"collaboration_ratio"`
	HighlyCollaborative      bool             `json:"highly_collaborative"`
}

// TagUsage 标签及其使用次数
type TagUsage struct {
	TagID     string `json:"tag_id"`
	Name      string `json:"name"`
	UsedCount int64  `json:"used_count"`
}

// AuthorAggregate 单个作者的归属聚合
type AuthorAggregate struct {
	AuthorID            string           `json:"author_id"`
	AuthorName          string           `json:"author_name"`
	AuthoredCount       int64            `json:"authored_count"`
	AuthoredByKind      map[string]int64 `json:"authored_by_kind"`
	FirstContributionAt *time.Time       `json:"first_contribution_at,omitempty"`
	LastContributionAt  *time.Time       `json:"last_contribution_at,omitempty"`
	ReferencesMade      int64            `json:"references_made"`
	ReferencesReceived  int64            `json:"references_received"`
	Collaborators       int64            `json:"collaborators"`
}

// CollaborationPair 协作作者对
type CollaborationPair struct {
	AuthorA    string `json:"author_a"`
	AuthorB    string `json:"author_b"`
	SharedRefs int64  `json:"shared_refs"`
	Strength   string `json:"strength"`
}

// AttributionNetwork 世界归属网络报告
type AttributionNetwork struct {
	WorldID string              `json:"world_id"`
	Authors []AuthorAggregate   `json:"authors"`
	Pairs   []CollaborationPair `json:"pairs"`
}

// RelatedItem 相关内容条目
type RelatedItem struct {
	Ref        entity.ContentRef `json:"ref"`
	Title      string            `json:"title"`
	AuthorID   string            `json:"author_id"`
	AuthorName string            `json:"author_name"`
	SharedTags int64             `json:"shared_tags,omitempty"`
}

// RelatedContent 相关内容发现报告
type RelatedContent struct {
	Ref          entity.ContentRef `json:"ref"`
	ByTags       []RelatedItem     `json:"by_tags"`
	ByLinks      []RelatedItem     `json:"by_links"`
	BySameAuthor []RelatedItem     `json:"by_same_author"`
}

// Service 分析服务
type Service struct {
	contents repository.ContentRepository
	tags     repository.TagRepository
	links    repository.LinkRepository

	now func() time.Time
}

// NewService 创建分析服务
func NewService(contents repository.ContentRepository, tags repository.TagRepository, links repository.LinkRepository) *Service {
	return &Service{
		contents: contents,
		tags:     tags,
		links:    links,
		now:      time.Now,
	}
}

// EntityAttribution 计算单条内容的归属明细
// 协作得分 = 他人所著链出对端数 + 他人所著链入对端数 + 标签数；
// 镜像行保证链出与链入集合对称，悬空对端静默跳过
func (s *Service) EntityAttribution(ctx context.Context, ref entity.ContentRef) (*EntityAttribution, error) {
	c, err := s.contents.GetByRef(ctx, ref, true)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.ErrContentNotFound.WithDetail(ref.String())
	}
	meta := c.Meta()

	links, err := s.links.ListFrom(ctx, ref)
	if err != nil {
		return nil, err
	}
	refs := make([]entity.ContentRef, 0, len(links))
	for _, l := range links {
		refs = append(refs, l.To())
	}
	peers, err := s.contents.GetByRefs(ctx, refs, false)
	if err != nil {
		return nil, err
	}

	var crossAuthor int
	for _, peer := range peers {
		if peer.Meta().AuthorID != meta.AuthorID {
			crossAuthor++
		}
	}

	tagCount, err := s.tags.CountByContent(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &EntityAttribution{
		Ref:                           ref,
		AuthorID:                      meta.AuthorID,
		AuthorName:                    meta.AuthorName,
		ReferencesMade:                len(peers),
		ReferencesReceived:            len(peers),
		CrossAuthorReferencesMade:     crossAuthor,
		CrossAuthorReferencesReceived: crossAuthor,
		TagCount:                      tagCount,
		CollaborationScore:            int64(2*crossAuthor) + tagCount,
		IsCollaborative:               crossAuthor > 0,
	}, nil
}

// WorldStats 计算世界级协作统计
// 各类型计数并发取数；逻辑互链按镜像对只计一次
func (s *Service) WorldStats(ctx context.Context, worldID string) (*WorldStats, error) {
	stats := &WorldStats{
		WorldID:       worldID,
		ContentByKind: make(map[string]int64, len(entity.AllKinds())),
	}

	since := s.now().Add(-recentActivityWindow)
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range entity.AllKinds() {
		kind := kind
		g.Go(func() error {
			count, err := s.contents.CountByWorldKind(gctx, worldID, kind)
			if err != nil {
				return err
			}
			recent, err := s.contents.CountCreatedSince(gctx, worldID, kind, since)
			if err != nil {
				return err
			}
			mu.Lock()
			stats.ContentByKind[string(kind)] = count
			stats.TotalContent += count
			stats.RecentContent += recent
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	linkRows, err := s.links.ListByWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}
	authorOf, err := s.resolveAuthors(ctx, linkRows)
	if err != nil {
		return nil, err
	}

	seen := make(map[[2]string]struct{})
	for _, row := range linkRows {
		key := pairKey(row.From(), row.To())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		stats.TotalLinks++

		fromAuthor, okFrom := authorOf[row.From()]
		toAuthor, okTo := authorOf[row.To()]
		if okFrom && okTo && fromAuthor.ID != toAuthor.ID {
			stats.CrossAuthorLinks++
		}
	}

	tags, err := s.tags.ListByWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}
	stats.TotalTags = int64(len(tags))

	usages := make([]TagUsage, 0, len(tags))
	for _, tag := range tags {
		used, err := s.tags.CountUsage(ctx, tag.ID)
		if err != nil {
			return nil, err
		}
		if used == 0 {
			continue
		}
		usages = append(usages, TagUsage{TagID: tag.ID, Name: tag.Name, UsedCount: used})
	}
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].UsedCount != usages[j].UsedCount {
			return usages[i].UsedCount > usages[j].UsedCount
		}
		return usages[i].Name < usages[j].Name
	})
	if len(usages) > popularTagLimit {
		usages = usages[:popularTagLimit]
	}
	stats.PopularTags = usages

	authors, err := s.contents.ListAuthorsByWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}
	stats.ContributorCount = int64(len(authors))
	if stats.ContributorCount > 0 {
		stats.AvgEntriesPerContributor = float64(stats.TotalContent) / float64(stats.ContributorCount)
	}

	divisor := stats.TotalLinks
	if divisor < 1 {
		divisor = 1
	}
	stats.CollaborationRatio = float64(stats.CrossAuthorLinks) / float64(divisor)
	stats.HighlyCollaborative = stats.CrossAuthorLinks > highlyCollaborativeLinks &&
		stats.ContributorCount > highlyCollaborativeContributors

	return stats, nil
}

// AttributionNetwork 计算世界归属网络
// 作者对按共享互链次数排序并标注强度
func (s *Service) AttributionNetwork(ctx context.Context, worldID string) (*AttributionNetwork, error) {
	authors, err := s.contents.ListAuthorsByWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}

	aggregates := make(map[string]*AuthorAggregate, len(authors))
	for _, a := range authors {
		aggregates[a.ID] = &AuthorAggregate{
			AuthorID:       a.ID,
			AuthorName:     a.Name,
			AuthoredByKind: make(map[string]int64),
		}
	}

	// 各类型存活行并发取数，折叠出每位作者的作品数与首末贡献时间
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range entity.AllKinds() {
		kind := kind
		g.Go(func() error {
			rows, err := s.contents.ListAllByWorldKind(gctx, worldID, kind, repository.ContentFilter{})
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, row := range rows {
				meta := row.Meta()
				agg, ok := aggregates[meta.AuthorID]
				if !ok {
					continue
				}
				agg.AuthoredCount++
				agg.AuthoredByKind[string(kind)]++
				created := meta.CreatedAt
				if agg.FirstContributionAt == nil || created.Before(*agg.FirstContributionAt) {
					t := created
					agg.FirstContributionAt = &t
				}
				if agg.LastContributionAt == nil || created.After(*agg.LastContributionAt) {
					t := created
					agg.LastContributionAt = &t
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	linkRows, err := s.links.ListByWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}
	authorOf, err := s.resolveAuthors(ctx, linkRows)
	if err != nil {
		return nil, err
	}

	// 只统计跨作者引用；镜像行两侧各计一次，一条逻辑互链贡献 2
	collaborators := make(map[string]map[string]struct{})
	pairCounts := make(map[[2]string]int64)
	for _, row := range linkRows {
		fromAuthor, okFrom := authorOf[row.From()]
		toAuthor, okTo := authorOf[row.To()]
		if !okFrom || !okTo {
			continue
		}
		if fromAuthor.ID == toAuthor.ID {
			continue
		}

		if agg, ok := aggregates[fromAuthor.ID]; ok {
			agg.ReferencesMade++
		}
		if agg, ok := aggregates[toAuthor.ID]; ok {
			agg.ReferencesReceived++
		}

		if collaborators[fromAuthor.ID] == nil {
			collaborators[fromAuthor.ID] = make(map[string]struct{})
		}
		collaborators[fromAuthor.ID][toAuthor.ID] = struct{}{}

		pairCounts[authorPairKey(fromAuthor.ID, toAuthor.ID)]++
	}

	for id, set := range collaborators {
		if agg, ok := aggregates[id]; ok {
			agg.Collaborators = int64(len(set))
		}
	}

	network := &AttributionNetwork{WorldID: worldID}
	for _, a := range authors {
		network.Authors = append(network.Authors, *aggregates[a.ID])
	}
	sort.Slice(network.Authors, func(i, j int) bool {
		if network.Authors[i].AuthoredCount != network.Authors[j].AuthoredCount {
			return network.Authors[i].AuthoredCount > network.Authors[j].AuthoredCount
		}
		return network.Authors[i].AuthorID < network.Authors[j].AuthorID
	})

	for key, count := range pairCounts {
		network.Pairs = append(network.Pairs, CollaborationPair{
			AuthorA:    key[0],
			AuthorB:    key[1],
			SharedRefs: count,
			Strength:   pairStrength(count),
		})
	}
	sort.Slice(network.Pairs, func(i, j int) bool {
		if network.Pairs[i].SharedRefs != network.Pairs[j].SharedRefs {
			return network.Pairs[i].SharedRefs > network.Pairs[j].SharedRefs
		}
		if network.Pairs[i].AuthorA != network.Pairs[j].AuthorA {
			return network.Pairs[i].AuthorA < network.Pairs[j].AuthorA
		}
		return network.Pairs[i].AuthorB < network.Pairs[j].AuthorB
	})

	return network, nil
}

// RelatedContent 发现与指定内容相关的内容
// 三条途径独立给出：共享标签按共享数排序，同作者条目按标题排序，收敛到固定上限
func (s *Service) RelatedContent(ctx context.Context, ref entity.ContentRef) (*RelatedContent, error) {
	c, err := s.contents.GetByRef(ctx, ref, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.ErrContentNotFound.WithDetail(ref.String())
	}
	meta := c.Meta()
	report := &RelatedContent{Ref: ref}

	tags, err := s.tags.ListByContent(ctx, ref)
	if err != nil {
		return nil, err
	}
	sharedCount := make(map[entity.ContentRef]int64)
	for _, tag := range tags {
		refs, err := s.tags.FindRefsByTags(ctx, meta.WorldID, []string{tag.Name}, repository.TagMatchAny)
		if err != nil {
			return nil, err
		}
		for _, r := range refs {
			if r != ref {
				sharedCount[r]++
			}
		}
	}
	sharedRefs := make([]entity.ContentRef, 0, len(sharedCount))
	for r := range sharedCount {
		sharedRefs = append(sharedRefs, r)
	}
	byTags, err := s.contents.GetByRefs(ctx, sharedRefs, false)
	if err != nil {
		return nil, err
	}
	for _, peer := range byTags {
		item := relatedItem(peer)
		item.SharedTags = sharedCount[peer.Ref()]
		report.ByTags = append(report.ByTags, item)
	}
	sort.Slice(report.ByTags, func(i, j int) bool {
		if report.ByTags[i].SharedTags != report.ByTags[j].SharedTags {
			return report.ByTags[i].SharedTags > report.ByTags[j].SharedTags
		}
		return report.ByTags[i].Title < report.ByTags[j].Title
	})
	report.ByTags = capItems(report.ByTags)

	linkRows, err := s.links.ListFrom(ctx, ref)
	if err != nil {
		return nil, err
	}
	peerRefs := make([]entity.ContentRef, 0, len(linkRows))
	for _, row := range linkRows {
		peerRefs = append(peerRefs, row.To())
	}
	byLinks, err := s.contents.GetByRefs(ctx, peerRefs, false)
	if err != nil {
		return nil, err
	}
	for _, peer := range byLinks {
		report.ByLinks = append(report.ByLinks, relatedItem(peer))
	}
	report.ByLinks = capItems(report.ByLinks)

	for _, kind := range entity.AllKinds() {
		rows, err := s.contents.ListAllByWorldKind(ctx, meta.WorldID, kind, repository.ContentFilter{AuthorID: meta.AuthorID})
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if row.Ref() == ref {
				continue
			}
			report.BySameAuthor = append(report.BySameAuthor, relatedItem(row))
		}
	}
	sort.Slice(report.BySameAuthor, func(i, j int) bool {
		return report.BySameAuthor[i].Title < report.BySameAuthor[j].Title
	})
	report.BySameAuthor = capItems(report.BySameAuthor)

	return report, nil
}

// resolveAuthors 批量解析互链端点的作者，悬空端点缺席
func (s *Service) resolveAuthors(ctx context.Context, rows []entity.ContentLink) (map[entity.ContentRef]entity.Author, error) {
	seen := make(map[entity.ContentRef]struct{}, len(rows)*2)
	refs := make([]entity.ContentRef, 0, len(rows)*2)
	for _, row := range rows {
		for _, ref := range []entity.ContentRef{row.From(), row.To()} {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}

	contents, err := s.contents.GetByRefs(ctx, refs, true)
	if err != nil {
		return nil, err
	}
	authorOf := make(map[entity.ContentRef]entity.Author, len(contents))
	for _, c := range contents {
		authorOf[c.Ref()] = entity.Author{ID: c.Meta().AuthorID, Name: c.Meta().AuthorName}
	}
	return authorOf, nil
}

// relatedItem 将内容行压缩为相关内容条目
func relatedItem(c entity.Content) RelatedItem {
	meta := c.Meta()
	return RelatedItem{
		Ref:        c.Ref(),
		Title:      meta.Title,
		AuthorID:   meta.AuthorID,
		AuthorName: meta.AuthorName,
	}
}

// capItems 截断相关内容列表
func capItems(items []RelatedItem) []RelatedItem {
	if len(items) > relatedItemLimit {
		return items[:relatedItemLimit]
	}
	return items
}

// pairKey 无序的端点对键
func pairKey(a, b entity.ContentRef) [2]string {
	ka, kb := a.String(), b.String()
	if ka > kb {
		ka, kb = kb, ka
	}
	return [2]string{ka, kb}
}

// authorPairKey 无序的作者对键
func authorPairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// pairStrength 将共享互链次数映射为强度标签
func pairStrength(count int64) string {
	switch {
	case count >= PairStrengthHighAt:
		return "high"
	case count >= PairStrengthMediumAt:
		return "medium"
	default:
		return "low"
	}
}
