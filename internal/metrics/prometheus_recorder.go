package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "lexrender"

var _ Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	entryDuration  prom.Histogram
	entryResults   *prom.CounterVec
	runDuration    prom.Histogram
	assets         *prom.CounterVec
	workers        prom.Gauge
	letterHeadings prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		entryDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "entry_render_duration_seconds",
			Help:      "Duration of rendering one entry",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1},
		}),
		entryResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "entry_results_total",
			Help:      "Entry render outcomes",
		}, []string{"result"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a whole dictionary render",
			Buckets:   prom.DefBuckets,
		}),
		assets: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assets_total",
			Help:      "Media files by materialisation outcome",
		}, []string{"outcome"}),
		workers: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "render_workers",
			Help:      "Worker count of the last dictionary render",
		}),
		letterHeadings: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "letter_headings",
			Help:      "Letter headings emitted by the last dictionary render",
		}),
	}
	reg.MustRegister(pr.entryDuration, pr.entryResults, pr.runDuration, pr.assets, pr.workers, pr.letterHeadings)
	return pr
}

func (p *PrometheusRecorder) ObserveEntryDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.entryDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncEntryResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.entryResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddAssets(outcome AssetLabel, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.assets.WithLabelValues(string(outcome)).Add(float64(n))
}

func (p *PrometheusRecorder) SetWorkers(n int) {
	if p == nil {
		return
	}
	p.workers.Set(float64(n))
}

func (p *PrometheusRecorder) SetLetterHeadings(n int) {
	if p == nil {
		return
	}
	p.letterHeadings.Set(float64(n))
}
