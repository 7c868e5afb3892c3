package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/lingo-backend/internal/platform/envutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	answers        *CounterVec
	heartRefills   *CounterVec
	courseSelected *Counter

	aggregateOps      *HistogramVec
	aggregateConflict *CounterVec
	aggregateRetry    *CounterVec

	webhookEvents *CounterVec
	jobRuns       *CounterVec
	jobLatency    *HistogramVec
	cacheLookups  *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	return envutil.Duration("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second)
}

// Init returns the process-wide metrics registry, or nil when METRICS_ENABLED is off.
// Every method is nil-safe so callers never branch on it.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

func newMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("lingo_api_requests_total", "API requests by method, route and status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"lingo_api_request_duration_seconds",
			"API request latency in seconds.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		),
		apiInflight: NewGauge("lingo_api_inflight_requests", "In-flight API requests."),

		answers:        NewCounterVec("lingo_answers_total", "Graded answers by kind and outcome.", []string{"kind", "outcome", "practice"}),
		heartRefills:   NewCounterVec("lingo_heart_refills_total", "Shop heart refills by status.", []string{"status"}),
		courseSelected: NewCounter("lingo_course_selections_total", "Active course selections."),

		aggregateOps: NewHistogramVec(
			"lingo_aggregate_operation_duration_seconds",
			"Aggregate write latency in seconds.",
			[]string{"op", "status"},
			nil,
		),
		aggregateConflict: NewCounterVec("lingo_aggregate_conflicts_total", "Aggregate compare-and-set conflicts.", []string{"op"}),
		aggregateRetry:    NewCounterVec("lingo_aggregate_retries_total", "Aggregate write retries.", []string{"op"}),

		webhookEvents: NewCounterVec("lingo_billing_webhook_events_total", "Billing webhook events by type and status.", []string{"type", "status"}),
		jobRuns:       NewCounterVec("lingo_job_runs_total", "Scheduled job runs by job and status.", []string{"job", "status"}),
		jobLatency: NewHistogramVec(
			"lingo_job_duration_seconds",
			"Scheduled job duration in seconds.",
			[]string{"job"},
			[]float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		),
		cacheLookups: NewCounterVec("lingo_view_cache_lookups_total", "View cache lookups by result.", []string{"result"}),

		dbStats:   NewGaugeVec("lingo_db_pool", "Database connection pool stats.", []string{"stat"}),
		redisUp:   NewGauge("lingo_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing: NewGauge("lingo_redis_ping_seconds", "Redis ping latency in seconds."),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.answers, m.heartRefills, m.courseSelected,
		m.aggregateOps, m.aggregateConflict, m.aggregateRetry,
		m.webhookEvents, m.jobRuns, m.jobLatency, m.cacheLookups,
		m.dbStats, m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// IncAnswer counts a graded answer. kind is "correct" or "incorrect".
func (m *Metrics) IncAnswer(kind, outcome string, practice bool) {
	if m == nil {
		return
	}
	m.answers.Inc(kind, outcome, strconv.FormatBool(practice))
}

func (m *Metrics) IncHeartRefill(status string) {
	if m == nil {
		return
	}
	m.heartRefills.Inc(status)
}

func (m *Metrics) IncCourseSelected() {
	if m == nil {
		return
	}
	m.courseSelected.Inc()
}

func (m *Metrics) ObserveAggregateOperation(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregateOps.Observe(dur.Seconds(), op, status)
}

func (m *Metrics) IncAggregateConflict(op string) {
	if m == nil {
		return
	}
	m.aggregateConflict.Inc(op)
}

func (m *Metrics) IncAggregateRetry(op string) {
	if m == nil {
		return
	}
	m.aggregateRetry.Inc(op)
}

func (m *Metrics) IncWebhookEvent(eventType, status string) {
	if m == nil {
		return
	}
	if eventType == "" {
		eventType = "unknown"
	}
	m.webhookEvents.Inc(eventType, status)
}

func (m *Metrics) ObserveJob(job, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.jobRuns.Inc(job, status)
	m.jobLatency.Observe(dur.Seconds(), job)
}

func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheLookups.Inc("hit")
		return
	}
	m.cacheLookups.Inc("miss")
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
