// Package metrics 提供 Prometheus 指标采集功能
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "loreweave"
)

var (
	// HTTP 请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_size_bytes",
			Help:      "HTTP request size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)

	// 业务指标 - 内容创作
	ContentCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "created_total",
			Help:      "Total number of content entries created",
		},
		[]string{"kind"},
	)

	ContentSoftDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "soft_deleted_total",
			Help:      "Total number of content soft deletions",
		},
		[]string{"kind"},
	)

	ContentRestoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "restored_total",
			Help:      "Total number of content restores",
		},
		[]string{"kind"},
	)

	ImmutabilityRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "content",
			Name:      "immutability_rejections_total",
			Help:      "Total number of writes rejected by the immutability guard",
		},
		[]string{"kind"},
	)

	// 业务指标 - 标签
	TagsAttachedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tagging",
			Name:      "attached_total",
			Help:      "Total number of tag attachments",
		},
		[]string{"kind"},
	)

	TagsDetachedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tagging",
			Name:      "detached_total",
			Help:      "Total number of tag detachments",
		},
		[]string{"kind"},
	)

	// 业务指标 - 互链
	LinksCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "linking",
			Name:      "created_total",
			Help:      "Total number of bidirectional link pairs created",
		},
	)

	LinksRemovedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "linking",
			Name:      "removed_total",
			Help:      "Total number of bidirectional link pairs removed",
		},
	)

	LinkRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "linking",
			Name:      "rejections_total",
			Help:      "Total number of rejected link requests",
		},
		[]string{"reason"}, // reason: world_mismatch/self_link
	)

	// 聚合查询指标
	TimelineQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "timeline",
			Name:      "query_duration_seconds",
			Help:      "Timeline/search aggregation duration in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation"}, // operation: timeline/search
	)
)
