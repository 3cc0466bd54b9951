package report

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/violenttestpen/lightbench/bench"
	"github.com/violenttestpen/lightbench/clock"
	"github.com/violenttestpen/lightbench/estimate"
)

// DefaultNamespace prefixes every metric exported by the Prometheus reporter.
const DefaultNamespace = "lightbench"

// Prometheus keeps the latest result of every operation as gauges in a
// registry, ready to be scraped or written to a textfile collector.
type Prometheus struct {
	registry *prometheus.Registry

	progress  *prometheus.GaugeVec
	median    *prometheus.GaugeVec
	deviation *prometheus.GaugeVec
	elapsed   *prometheus.GaugeVec
	outcome   *prometheus.GaugeVec
	skipped   *prometheus.CounterVec
}

// NewPrometheus registers the benchmark gauges in registry. A nil registry
// gets a fresh one.
func NewPrometheus(registry *prometheus.Registry, namespace string) (*Prometheus, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}

	p := &Prometheus{
		registry:  registry,
		progress:  gauge("progress_percent", "Share of an operation's iterations completed", "operation"),
		median:    gauge("median", "Running median of one invocation", "operation", "unit"),
		deviation: gauge("error", "Running error of one invocation", "operation", "unit"),
		elapsed:   gauge("elapsed", "Time spent on an operation, warmup included", "operation", "unit"),
		outcome:   gauge("run_outcome", "1 for the outcome of the last run", "outcome"),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_operations_total",
			Help:      "Operations skipped because they failed",
		}, []string{"operation"}),
	}

	var err error
	if p.progress, err = registerOrReuse(registry, p.progress); err != nil {
		return nil, err
	}
	if p.median, err = registerOrReuse(registry, p.median); err != nil {
		return nil, err
	}
	if p.deviation, err = registerOrReuse(registry, p.deviation); err != nil {
		return nil, err
	}
	if p.elapsed, err = registerOrReuse(registry, p.elapsed); err != nil {
		return nil, err
	}
	if p.outcome, err = registerOrReuse(registry, p.outcome); err != nil {
		return nil, err
	}
	if p.skipped, err = registerOrReuse(registry, p.skipped); err != nil {
		return nil, err
	}
	return p, nil
}

// registerOrReuse registers c, or returns the collector already registered
// under the same descriptors so that writes land in the gathered series.
func registerOrReuse[C prometheus.Collector](registry prometheus.Registerer, c C) (C, error) {
	err := registry.Register(c)
	if err == nil {
		return c, nil
	}

	var alreadyErr prometheus.AlreadyRegisteredError
	if !errors.As(err, &alreadyErr) {
		return c, errors.Wrap(err, "registering benchmark metrics")
	}
	existing, ok := alreadyErr.ExistingCollector.(C)
	if !ok {
		return c, errors.Errorf("benchmark metric already registered as %T", alreadyErr.ExistingCollector)
	}
	return existing, nil
}

// Registry returns the registry holding the benchmark metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// WriteTextfile writes the current metrics to path in the text exposition
// format used by the node exporter's textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, p.registry), "writing metrics to %s", path)
}

func (p *Prometheus) Progress(operation string, percent float64) {
	p.progress.WithLabelValues(operation).Set(percent)
}

func (p *Prometheus) OperationResult(operation string, est estimate.Estimate, unit clock.TimeUnit) {
	p.progress.WithLabelValues(operation).Set(100)
	p.median.WithLabelValues(operation, unit.String()).Set(est.Median)
	if v, err := est.Error(); err == nil {
		p.deviation.WithLabelValues(operation, unit.String()).Set(v)
	}
}

func (p *Prometheus) OperationElapsed(operation string, elapsed float64, unit clock.TimeUnit) {
	p.elapsed.WithLabelValues(operation, unit.String()).Set(elapsed)
}

func (p *Prometheus) Summary(s *bench.Summary) {
	for _, o := range []bench.State{bench.Completed, bench.Cancelled, bench.Failed} {
		v := 0.0
		if o == s.Outcome {
			v = 1
		}
		p.outcome.WithLabelValues(o.String()).Set(v)
	}
	for _, r := range s.Results {
		if r.Err != nil {
			p.skipped.WithLabelValues(r.Operation).Inc()
		}
	}
}
