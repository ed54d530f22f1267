package osm2streets

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Segment outcomes used as `result` label
const (
	segmentKept         = "kept"
	segmentOutOfRegion  = "out_of_region"
	segmentMissingPoint = "missing_point"
	segmentEmpty        = "empty"
)

// Metrics holds resolution counters. Nil *Metrics is valid and records nothing
type Metrics struct {
	WaysScanned   prometheus.Counter
	WaysMatched   prometheus.Counter
	PointsIndexed prometheus.Counter
	Segments      *prometheus.CounterVec
	StageSeconds  *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		WaysScanned: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "osm2streets_ways_scanned_total",
			Help: "Total number of ways met in extracts.",
		}),
		WaysMatched: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "osm2streets_ways_matched_total",
			Help: "Total number of ways whose name matched a tracked street.",
		}),
		PointsIndexed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "osm2streets_points_indexed_total",
			Help: "Total number of nodes stored in the point table.",
		}),
		Segments: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "osm2streets_segments_total",
			Help: "Total number of materialized segments by outcome.",
		}, []string{"result"}),
		StageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "osm2streets_stage_duration_seconds",
			Help:    "Duration of resolution stages.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
	}
}

func (m *Metrics) wayScanned(matched bool) {
	if m == nil {
		return
	}
	m.WaysScanned.Inc()
	if matched {
		m.WaysMatched.Inc()
	}
}

func (m *Metrics) pointIndexed() {
	if m == nil {
		return
	}
	m.PointsIndexed.Inc()
}

func (m *Metrics) segment(result string) {
	if m == nil {
		return
	}
	m.Segments.WithLabelValues(result).Inc()
}

func (m *Metrics) stage(name string, st time.Time) {
	if m == nil {
		return
	}
	m.StageSeconds.WithLabelValues(name).Observe(time.Since(st).Seconds())
}
