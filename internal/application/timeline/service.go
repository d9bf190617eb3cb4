// Package timeline 提供跨类型的时间线与搜索聚合
package timeline

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
	"loreweave-api/pkg/metrics"
)

// Filters 时间线过滤条件
type Filters struct {
	Kinds          []entity.ContentKind
	AuthorQuery    string
	Tags           []string
	TextQuery      string
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	IncludeDeleted bool
}

// Page 偏移分页
type Page struct {
	Offset int
	Limit  int
}

// SortMode 搜索结果排序方式
type SortMode string

const (
	SortRelevance   SortMode = "relevance"
	SortCreatedDesc SortMode = "created_desc"
	SortCreatedAsc  SortMode = "created_asc"
	SortTitle       SortMode = "title"
)

// TagFinder 标签过滤所需的最小能力
type TagFinder interface {
	FindRefsByTags(ctx context.Context, worldID string, names []string, mode repository.TagMatchMode) ([]entity.ContentRef, error)
}

// Hit 搜索命中
type Hit struct {
	Content   entity.Content
	Relevance float64
}

// Service 时间线与搜索服务
type Service struct {
	contents repository.ContentRepository
	tags     TagFinder
	now      func() time.Time
}

// NewService 创建时间线服务
func NewService(contents repository.ContentRepository, tags TagFinder) *Service {
	return &Service{
		contents: contents,
		tags:     tags,
		now:      time.Now,
	}
}

// Timeline 跨类型时间线
// 五张内容表并发取数后在内存中归并，按创建时间倒序，
// 同刻以 id 做稳定次序键，最后按偏移切片
func (s *Service) Timeline(ctx context.Context, worldID string, filters Filters, page Page) ([]entity.Content, int, error) {
	start := s.now()
	defer func() {
		metrics.TimelineQueryDuration.WithLabelValues("timeline").Observe(s.now().Sub(start).Seconds())
	}()

	merged, err := s.gather(ctx, worldID, filters)
	if err != nil {
		return nil, 0, err
	}

	sortNewestFirst(merged)

	total := len(merged)
	return slicePage(merged, page), total, nil
}

// Search 跨类型搜索
// 相关度 = 10×标题命中 + 正文出现次数 + 时新加成，
// 时新加成 = max(0, 30 − 发布天数)/30
func (s *Service) Search(ctx context.Context, worldID, query string, filters Filters, sortMode SortMode, page Page) ([]Hit, int, error) {
	start := s.now()
	defer func() {
		metrics.TimelineQueryDuration.WithLabelValues("search").Observe(s.now().Sub(start).Seconds())
	}()

	gathered, err := s.gather(ctx, worldID, filters)
	if err != nil {
		return nil, 0, err
	}

	query = strings.TrimSpace(query)
	lowered := strings.ToLower(query)
	now := s.now()

	hits := make([]Hit, 0, len(gathered))
	for _, c := range gathered {
		meta := c.Meta()
		if lowered != "" &&
			!strings.Contains(strings.ToLower(meta.Title), lowered) &&
			!strings.Contains(strings.ToLower(meta.Body), lowered) {
			continue
		}
		hits = append(hits, Hit{
			Content:   c,
			Relevance: relevance(meta, lowered, now),
		})
	}

	sortHits(hits, sortMode)

	total := len(hits)
	return slicePage(hits, page), total, nil
}

// gather 并发收集各类型内容并应用过滤
func (s *Service) gather(ctx context.Context, worldID string, filters Filters) ([]entity.Content, error) {
	kinds := filters.Kinds
	if len(kinds) == 0 {
		kinds = entity.AllKinds()
	}

	// 标签过滤先行，得到允许的引用集合
	var allowed map[entity.ContentRef]struct{}
	if len(filters.Tags) > 0 {
		refs, err := s.tags.FindRefsByTags(ctx, worldID, filters.Tags, repository.TagMatchAny)
		if err != nil {
			return nil, err
		}
		allowed = make(map[entity.ContentRef]struct{}, len(refs))
		for _, ref := range refs {
			allowed[ref] = struct{}{}
		}
	}

	repoFilter := repository.ContentFilter{
		IncludeDeleted: filters.IncludeDeleted,
	}

	var mu sync.Mutex
	var merged []entity.Content

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		kind := kind
		g.Go(func() error {
			contents, err := s.contents.ListAllByWorldKind(gctx, worldID, kind, repoFilter)
			if err != nil {
				return err
			}
			kept := applyFilters(contents, filters, allowed)
			mu.Lock()
			merged = append(merged, kept...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// applyFilters 应用内存侧过滤条件
func applyFilters(contents []entity.Content, filters Filters, allowed map[entity.ContentRef]struct{}) []entity.Content {
	authorQuery := strings.ToLower(strings.TrimSpace(filters.AuthorQuery))
	textQuery := strings.ToLower(strings.TrimSpace(filters.TextQuery))

	kept := make([]entity.Content, 0, len(contents))
	for _, c := range contents {
		meta := c.Meta()
		if allowed != nil {
			if _, ok := allowed[c.Ref()]; !ok {
				continue
			}
		}
		if authorQuery != "" && !strings.Contains(strings.ToLower(meta.AuthorName), authorQuery) {
			continue
		}
		if textQuery != "" &&
			!strings.Contains(strings.ToLower(meta.Title), textQuery) &&
			!strings.Contains(strings.ToLower(meta.Body), textQuery) {
			continue
		}
		if filters.CreatedAfter != nil && meta.CreatedAt.Before(*filters.CreatedAfter) {
			continue
		}
		if filters.CreatedBefore != nil && meta.CreatedAt.After(*filters.CreatedBefore) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// relevance 计算单条命中的相关度
func relevance(meta *entity.ContentMeta, loweredQuery string, now time.Time) float64 {
	var score float64
	if loweredQuery != "" {
		if strings.Contains(strings.ToLower(meta.Title), loweredQuery) {
			score += 10
		}
		score += float64(strings.Count(strings.ToLower(meta.Body), loweredQuery))
	}

	ageDays := now.Sub(meta.CreatedAt).Hours() / 24
	boost := (30 - ageDays) / 30
	if boost > 0 {
		score += boost
	}
	return score
}

// sortNewestFirst 按创建时间倒序，同刻以 id 倒序保证稳定
func sortNewestFirst(contents []entity.Content) {
	sort.SliceStable(contents, func(i, j int) bool {
		a, b := contents[i].Meta(), contents[j].Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// sortHits 按指定方式排序命中
func sortHits(hits []Hit, mode SortMode) {
	switch mode {
	case SortCreatedAsc:
		sort.SliceStable(hits, func(i, j int) bool {
			a, b := hits[i].Content.Meta(), hits[j].Content.Meta()
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})
	case SortCreatedDesc:
		sort.SliceStable(hits, func(i, j int) bool {
			a, b := hits[i].Content.Meta(), hits[j].Content.Meta()
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})
	case SortTitle:
		sort.SliceStable(hits, func(i, j int) bool {
			a, b := hits[i].Content.Meta(), hits[j].Content.Meta()
			ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title)
			if ta != tb {
				return ta < tb
			}
			return a.ID < b.ID
		})
	default:
		sort.SliceStable(hits, func(i, j int) bool {
			if hits[i].Relevance != hits[j].Relevance {
				return hits[i].Relevance > hits[j].Relevance
			}
			a, b := hits[i].Content.Meta(), hits[j].Content.Meta()
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		})
	}
}

// slicePage 按偏移切片
func slicePage[T any](items []T, page Page) []T {
	if page.Limit <= 0 {
		page.Limit = 20
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}
