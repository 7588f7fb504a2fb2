package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traveltales_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "traveltales_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedQueriesTotal counts feed listings by sort mode.
	FeedQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traveltales_feed_queries_total",
		Help: "Total number of feed queries by sort mode",
	}, []string{"sort"})

	// EngagementEventsTotal counts engagement mutations by kind and outcome.
	EngagementEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traveltales_engagement_events_total",
		Help: "Total number of engagement events (like, unlike, comment) by outcome",
	}, []string{"kind", "outcome"})

	// FollowEventsTotal counts social graph mutations by kind and outcome.
	FollowEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traveltales_follow_events_total",
		Help: "Total number of follow and unfollow events by outcome",
	}, []string{"kind", "outcome"})

	// CacheRequestsTotal counts cache lookups by key class and result.
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traveltales_cache_requests_total",
		Help: "Total number of cache lookups by key class and hit/miss result",
	}, []string{"class", "result"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordFeedQuery increments the feed counter for the given sort mode.
func RecordFeedQuery(sort string) {
	FeedQueriesTotal.WithLabelValues(sort).Inc()
}

// RecordEngagement increments the engagement counter.
func RecordEngagement(kind, outcome string) {
	EngagementEventsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordFollowEvent increments the social graph counter.
func RecordFollowEvent(kind, outcome string) {
	FollowEventsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheLookup increments the cache counter with a hit or miss result.
func RecordCacheLookup(class string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequestsTotal.WithLabelValues(class, result).Inc()
}
