package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DataSourceMetrics records read latency and fallback/cache activity for the
// catalog data sources.
type DataSourceMetrics struct {
	readDuration *prometheus.HistogramVec
	fallbacks    *prometheus.CounterVec
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	writeErrors  *prometheus.CounterVec
}

// NewDataSourceMetrics registers the data source metrics on the provided registerer.
func NewDataSourceMetrics(reg prometheus.Registerer) *DataSourceMetrics {
	if reg == nil {
		return &DataSourceMetrics{}
	}
	readDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "datasource_read_duration_seconds",
		Help:    "Duration of data source reads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "source"})
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datasource_fallback_reads",
		Help: "Reads served from the embedded dataset after a remote failure.",
	}, []string{"entity"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datasource_cache_hits",
		Help: "List snapshots served from the cache.",
	}, []string{"entity"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datasource_cache_misses",
		Help: "List reads that bypassed the cache.",
	}, []string{"entity"})
	writeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "datasource_write_errors",
		Help: "Writes rejected or failed by the data source.",
	}, []string{"entity", "code"})
	reg.MustRegister(readDuration, fallbacks, cacheHits, cacheMisses, writeErrors)
	return &DataSourceMetrics{
		readDuration: readDuration,
		fallbacks:    fallbacks,
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
		writeErrors:  writeErrors,
	}
}

// ObserveRead records the duration of a read against the named source.
func (d *DataSourceMetrics) ObserveRead(entity, source string, duration time.Duration) {
	if d == nil || d.readDuration == nil {
		return
	}
	d.readDuration.WithLabelValues(normalizeLabel(entity), normalizeLabel(source)).Observe(duration.Seconds())
}

// IncFallback increments the fallback counter for the entity.
func (d *DataSourceMetrics) IncFallback(entity string) {
	if d == nil || d.fallbacks == nil {
		return
	}
	d.fallbacks.WithLabelValues(normalizeLabel(entity)).Inc()
}

// IncCacheHit increments the cache hit counter for the entity.
func (d *DataSourceMetrics) IncCacheHit(entity string) {
	if d == nil || d.cacheHits == nil {
		return
	}
	d.cacheHits.WithLabelValues(normalizeLabel(entity)).Inc()
}

// IncCacheMiss increments the cache miss counter for the entity.
func (d *DataSourceMetrics) IncCacheMiss(entity string) {
	if d == nil || d.cacheMisses == nil {
		return
	}
	d.cacheMisses.WithLabelValues(normalizeLabel(entity)).Inc()
}

// IncWriteError increments the write error counter for the entity and error code.
func (d *DataSourceMetrics) IncWriteError(entity, code string) {
	if d == nil || d.writeErrors == nil {
		return
	}
	d.writeErrors.WithLabelValues(normalizeLabel(entity), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
