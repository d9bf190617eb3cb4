// Package testutil 提供供服务层测试使用的内存仓储实现
// 行为对齐 PostgreSQL 实现：未命中返回 (nil, nil)，悬空引用静默跳过
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"loreweave-api/internal/domain/entity"
	"loreweave-api/internal/domain/repository"
)

// Tx 直通事务管理
type Tx struct{}

// WithTransaction 直接执行回调
func (Tx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ContentStore 内存内容仓储
type ContentStore struct {
	mu    sync.Mutex
	items map[entity.ContentRef]entity.Content
}

// NewContentStore 创建内存内容仓储
func NewContentStore() *ContentStore {
	return &ContentStore{items: map[entity.ContentRef]entity.Content{}}
}

// Create 创建内容，缺省填充 ID 与创建时间
func (s *ContentStore) Create(_ context.Context, c entity.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta := c.Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}
	s.items[c.Ref()] = c
	return nil
}

// GetByRef 根据引用键获取内容
func (s *ContentStore) GetByRef(_ context.Context, ref entity.ContentRef, includeDeleted bool) (entity.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[ref]
	if !ok {
		return nil, nil
	}
	if c.Meta().IsDeleted && !includeDeleted {
		return nil, nil
	}
	return c, nil
}

// GetByRefs 批量获取内容，悬空引用静默跳过
func (s *ContentStore) GetByRefs(_ context.Context, refs []entity.ContentRef, includeDeleted bool) ([]entity.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Content, 0, len(refs))
	for _, ref := range refs {
		c, ok := s.items[ref]
		if !ok {
			continue
		}
		if c.Meta().IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Update 持久化内容整行
func (s *ContentStore) Update(_ context.Context, c entity.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[c.Ref()] = c
	return nil
}

// HardDelete 物理删除内容行
func (s *ContentStore) HardDelete(_ context.Context, ref entity.ContentRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, ref)
	return nil
}

func (s *ContentStore) matching(worldID string, kind entity.ContentKind, filter repository.ContentFilter) []entity.Content {
	var out []entity.Content
	for _, c := range s.items {
		meta := c.Meta()
		if c.Kind() != kind || meta.WorldID != worldID {
			continue
		}
		switch {
		case filter.DeletedOnly:
			if !meta.IsDeleted {
				continue
			}
		case !filter.IncludeDeleted:
			if meta.IsDeleted {
				continue
			}
		}
		if filter.AuthorID != "" && meta.AuthorID != filter.AuthorID {
			continue
		}
		if filter.TitleQuery != "" && !strings.Contains(strings.ToLower(meta.Title), strings.ToLower(filter.TitleQuery)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Meta(), out[j].Meta()
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out
}

// ListByWorldKind 获取世界内指定类型的内容列表
func (s *ContentStore) ListByWorldKind(_ context.Context, worldID string, kind entity.ContentKind, filter repository.ContentFilter, pagination repository.Pagination) (*repository.PagedResult[entity.Content], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.matching(worldID, kind, filter)
	total := int64(len(all))
	start := pagination.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + pagination.Limit()
	if end > len(all) {
		end = len(all)
	}
	return repository.NewPagedResult(all[start:end], total, pagination), nil
}

// ListAllByWorldKind 获取世界内指定类型的全部内容
func (s *ContentStore) ListAllByWorldKind(_ context.Context, worldID string, kind entity.ContentKind, filter repository.ContentFilter) ([]entity.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matching(worldID, kind, filter), nil
}

// ExistsTitle 检查同世界同类型存活行中的标题冲突（忽略大小写）
func (s *ContentStore) ExistsTitle(_ context.Context, worldID string, kind entity.ContentKind, title, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.items {
		meta := c.Meta()
		if c.Kind() != kind || meta.WorldID != worldID || meta.IsDeleted {
			continue
		}
		if excludeID != "" && meta.ID == excludeID {
			continue
		}
		if strings.EqualFold(meta.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

// CountByWorldKind 统计世界内指定类型的存活内容数量
func (s *ContentStore) CountByWorldKind(_ context.Context, worldID string, kind entity.ContentKind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matching(worldID, kind, repository.ContentFilter{}))), nil
}

// CountCreatedSince 统计世界内指定类型在给定时间之后创建的存活内容数量
func (s *ContentStore) CountCreatedSince(_ context.Context, worldID string, kind entity.ContentKind, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, c := range s.matching(worldID, kind, repository.ContentFilter{}) {
		if !c.Meta().CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ListAuthorsByWorld 获取世界内存活内容的去重作者列表
func (s *ContentStore) ListAuthorsByWorld(_ context.Context, worldID string) ([]entity.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []entity.Author
	for _, c := range s.items {
		meta := c.Meta()
		if meta.WorldID != worldID || meta.IsDeleted || seen[meta.AuthorID] {
			continue
		}
		seen[meta.AuthorID] = true
		out = append(out, entity.Author{ID: meta.AuthorID, Name: meta.AuthorName})
	}
	return out, nil
}

// TagStore 内存标签仓储
type TagStore struct {
	mu          sync.Mutex
	tags        map[string]*entity.Tag
	attachments []entity.ContentTag
}

// NewTagStore 创建内存标签仓储
func NewTagStore() *TagStore {
	return &TagStore{tags: map[string]*entity.Tag{}}
}

// GetOrCreate 按 (world, name) 获取或创建标签
func (s *TagStore) GetOrCreate(_ context.Context, worldID, name, creatorID string) (*entity.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.findByName(worldID, name); t != nil {
		return t, nil
	}
	t := &entity.Tag{
		ID:        uuid.NewString(),
		WorldID:   worldID,
		Name:      name,
		CreatorID: creatorID,
		CreatedAt: time.Now(),
	}
	s.tags[t.ID] = t
	return t, nil
}

func (s *TagStore) findByName(worldID, name string) *entity.Tag {
	for _, t := range s.tags {
		if t.WorldID == worldID && t.Name == name {
			return t
		}
	}
	return nil
}

// GetByName 按 (world, name) 获取标签
func (s *TagStore) GetByName(_ context.Context, worldID, name string) (*entity.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByName(worldID, name), nil
}

// GetByID 根据 ID 获取标签
func (s *TagStore) GetByID(_ context.Context, id string) (*entity.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tags[id], nil
}

// Rename 重命名标签
func (s *TagStore) Rename(_ context.Context, id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tags[id]; ok {
		t.Name = newName
	}
	return nil
}

// Delete 删除标签及其全部关联行
func (s *TagStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tags, id)
	kept := s.attachments[:0]
	for _, a := range s.attachments {
		if a.TagID != id {
			kept = append(kept, a)
		}
	}
	s.attachments = kept
	return nil
}

// ListByWorld 获取世界内全部标签
func (s *TagStore) ListByWorld(_ context.Context, worldID string) ([]*entity.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Tag
	for _, t := range s.tags {
		if t.WorldID == worldID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Attach 建立标签与内容的关联，重复关联保持幂等
func (s *TagStore) Attach(_ context.Context, ref entity.ContentRef, tagID, taggedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attachments {
		if a.ContentKind == ref.Kind && a.ContentID == ref.ID && a.TagID == tagID {
			return nil
		}
	}
	s.attachments = append(s.attachments, entity.ContentTag{
		ID:          uuid.NewString(),
		ContentKind: ref.Kind,
		ContentID:   ref.ID,
		TagID:       tagID,
		TaggedBy:    taggedBy,
		CreatedAt:   time.Now(),
	})
	return nil
}

// Detach 解除标签与内容的关联
func (s *TagStore) Detach(_ context.Context, ref entity.ContentRef, tagID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := false
	kept := s.attachments[:0]
	for _, a := range s.attachments {
		if a.ContentKind == ref.Kind && a.ContentID == ref.ID && a.TagID == tagID {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.attachments = kept
	return removed, nil
}

// DetachAll 解除内容的全部标签关联
func (s *TagStore) DetachAll(_ context.Context, ref entity.ContentRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.attachments[:0]
	for _, a := range s.attachments {
		if a.ContentKind != ref.Kind || a.ContentID != ref.ID {
			kept = append(kept, a)
		}
	}
	s.attachments = kept
	return nil
}

// ListByContent 获取内容上的全部标签
func (s *TagStore) ListByContent(_ context.Context, ref entity.ContentRef) ([]*entity.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Tag
	for _, a := range s.attachments {
		if a.ContentKind == ref.Kind && a.ContentID == ref.ID {
			if t, ok := s.tags[a.TagID]; ok {
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FindRefsByTags 按标签名集合查询内容引用键
func (s *TagStore) FindRefsByTags(_ context.Context, worldID string, names []string, mode repository.TagMatchMode) ([]entity.ContentRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) == 0 {
		return nil, nil
	}
	hitCount := map[entity.ContentRef]int{}
	for _, name := range names {
		t := s.findByName(worldID, name)
		if t == nil {
			continue
		}
		for _, a := range s.attachments {
			if a.TagID == t.ID {
				hitCount[a.Ref()]++
			}
		}
	}
	var out []entity.ContentRef
	for ref, n := range hitCount {
		if mode == repository.TagMatchAll && n < len(names) {
			continue
		}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// CountByContent 统计内容上的标签数量
func (s *TagStore) CountByContent(_ context.Context, ref entity.ContentRef) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.attachments {
		if a.ContentKind == ref.Kind && a.ContentID == ref.ID {
			n++
		}
	}
	return n, nil
}

// CountUsage 统计标签被使用的次数
func (s *TagStore) CountUsage(_ context.Context, tagID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.attachments {
		if a.TagID == tagID {
			n++
		}
	}
	return n, nil
}

// LinkStore 内存互链仓储
type LinkStore struct {
	mu   sync.Mutex
	rows []entity.ContentLink
}

// NewLinkStore 创建内存互链仓储
func NewLinkStore() *LinkStore {
	return &LinkStore{}
}

// CreatePair 成对创建镜像行
func (s *LinkStore) CreatePair(_ context.Context, forward, reverse entity.ContentLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range []entity.ContentLink{forward, reverse} {
		if row.ID == "" {
			row.ID = uuid.NewString()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now()
		}
		s.rows = append(s.rows, row)
	}
	return nil
}

// DeletePair 成对删除镜像行
func (s *LinkStore) DeletePair(_ context.Context, from, to entity.ContentRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, row := range s.rows {
		if (row.From() == from && row.To() == to) || (row.From() == to && row.To() == from) {
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	return nil
}

// DeleteAllFor 删除涉及指定内容的全部互链行
func (s *LinkStore) DeleteAllFor(_ context.Context, ref entity.ContentRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.From() == ref || row.To() == ref {
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	return nil
}

// Exists 检查互链是否存在
func (s *LinkStore) Exists(_ context.Context, from, to entity.ContentRef) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.From() == from && row.To() == to {
			return true, nil
		}
	}
	return false, nil
}

// ListFrom 获取指定内容链出的全部互链行
func (s *LinkStore) ListFrom(_ context.Context, ref entity.ContentRef) ([]entity.ContentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.ContentLink
	for _, row := range s.rows {
		if row.From() == ref {
			out = append(out, row)
		}
	}
	return out, nil
}

// ListByWorld 获取世界内全部互链行
func (s *LinkStore) ListByWorld(_ context.Context, worldID string) ([]entity.ContentLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.ContentLink
	for _, row := range s.rows {
		if row.WorldID == worldID {
			out = append(out, row)
		}
	}
	return out, nil
}

// CountFrom 统计指定内容链出的互链数量
func (s *LinkStore) CountFrom(_ context.Context, ref entity.ContentRef) (int64, error) {
	rows, _ := s.ListFrom(context.Background(), ref)
	return int64(len(rows)), nil
}

// CountTo 统计链入指定内容的互链数量
func (s *LinkStore) CountTo(_ context.Context, ref entity.ContentRef) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if row.To() == ref {
			n++
		}
	}
	return n, nil
}

// WorldStore 内存世界仓储
type WorldStore struct {
	mu     sync.Mutex
	worlds map[string]*entity.World
}

// NewWorldStore 创建内存世界仓储
func NewWorldStore() *WorldStore {
	return &WorldStore{worlds: map[string]*entity.World{}}
}

// Create 创建世界
func (s *WorldStore) Create(_ context.Context, w *entity.World) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	s.worlds[w.ID] = w
	return nil
}

// GetByID 根据 ID 获取世界
func (s *WorldStore) GetByID(_ context.Context, id string) (*entity.World, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.worlds[id], nil
}

// Update 更新世界
func (s *WorldStore) Update(_ context.Context, w *entity.World) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worlds[w.ID] = w
	return nil
}

// Delete 删除世界
func (s *WorldStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.worlds, id)
	return nil
}

func (s *WorldStore) list(filter func(*entity.World) bool, pagination repository.Pagination) *repository.PagedResult[*entity.World] {
	var all []*entity.World
	for _, w := range s.worlds {
		if filter(w) {
			all = append(all, w)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	start := pagination.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + pagination.Limit()
	if end > len(all) {
		end = len(all)
	}
	return repository.NewPagedResult(all[start:end], total, pagination)
}

// List 获取世界列表
func (s *WorldStore) List(_ context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(*entity.World) bool { return true }, pagination), nil
}

// ListByCreator 获取指定创建者的世界列表
func (s *WorldStore) ListByCreator(_ context.Context, creatorID string, pagination repository.Pagination) (*repository.PagedResult[*entity.World], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(func(w *entity.World) bool { return w.CreatorID == creatorID }, pagination), nil
}

// ProfileStore 内存作者画像仓储
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*entity.UserProfile
}

// NewProfileStore 创建内存作者画像仓储
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: map[string]*entity.UserProfile{}}
}

// GetOrCreate 获取作者画像，不存在则创建
func (s *ProfileStore) GetOrCreate(_ context.Context, actorID, displayName string) (*entity.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[actorID]; ok {
		return p, nil
	}
	p := &entity.UserProfile{
		ActorID:     actorID,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	s.profiles[actorID] = p
	return p, nil
}

// GetByActor 根据 actor ID 获取画像
func (s *ProfileStore) GetByActor(_ context.Context, actorID string) (*entity.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[actorID], nil
}

// Update 更新画像
func (s *ProfileStore) Update(_ context.Context, p *entity.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ActorID] = p
	return nil
}

// IncrementContribution 调整贡献计数，下限为零
func (s *ProfileStore) IncrementContribution(_ context.Context, actorID string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[actorID]; ok {
		p.ContributionCount += delta
		if p.ContributionCount < 0 {
			p.ContributionCount = 0
		}
	}
	return nil
}

// IncrementWorldsCreated 调整创建世界计数
func (s *ProfileStore) IncrementWorldsCreated(_ context.Context, actorID string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[actorID]; ok {
		p.WorldsCreated += delta
		if p.WorldsCreated < 0 {
			p.WorldsCreated = 0
		}
	}
	return nil
}
