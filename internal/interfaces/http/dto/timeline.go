package dto

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"loreweave-api/internal/application/timeline"
	"loreweave-api/internal/domain/entity"
)

// BindTimelineFilters 从查询参数绑定时间线过滤条件
// kinds/tags 逗号分隔，时间为 RFC3339
func BindTimelineFilters(c *gin.Context) (timeline.Filters, error) {
	filters := timeline.Filters{
		AuthorQuery:    c.Query("author"),
		TextQuery:      c.Query("q"),
		IncludeDeleted: BindIncludeDeleted(c),
	}

	if raw := c.Query("kinds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			kind, err := entity.ParseKind(part)
			if err != nil {
				return timeline.Filters{}, err
			}
			filters.Kinds = append(filters.Kinds, kind)
		}
	}

	if raw := c.Query("tags"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				filters.Tags = append(filters.Tags, part)
			}
		}
	}

	if raw := c.Query("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return timeline.Filters{}, err
		}
		filters.CreatedAfter = &t
	}
	if raw := c.Query("created_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return timeline.Filters{}, err
		}
		filters.CreatedBefore = &t
	}

	return filters, nil
}

// SearchHitResponse 搜索命中响应
type SearchHitResponse struct {
	Content   *ContentResponse `json:"content"`
	Relevance float64          `json:"relevance"`
}

// ToSearchHitListResponse 转换搜索命中列表响应
func ToSearchHitListResponse(hits []timeline.Hit) []*SearchHitResponse {
	out := make([]*SearchHitResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, &SearchHitResponse{
			Content:   ToContentResponse(h.Content),
			Relevance: h.Relevance,
		})
	}
	return out
}
