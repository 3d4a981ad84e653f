package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dfacheck"

// Metrics holds the collectors fed by checker events.
type Metrics struct {
	loads    *prometheus.CounterVec
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "machine_loads_total",
				Help:      "Machine descriptions loaded, by outcome (valid or failure kind).",
			},
			[]string{"result"},
		),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Queries answered, by mode, answer and cache use.",
			},
			[]string{"mode", "answer", "cached"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Time spent simulating a query.",
				Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
			},
			[]string{"mode"},
		),
	}
	for _, c := range []prometheus.Collector{m.loads, m.queries, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(ctx context.Context, e *domain.LoadEvent) {
			result := "valid"
			if e.Kind != domain.KindNone {
				result = string(e.Kind)
			}
			m.loads.WithLabelValues(result).Inc()
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			answer := "no"
			switch {
			case e.Kind != domain.KindNone:
				answer = string(e.Kind)
			case e.Accepted:
				answer = "yes"
			}
			m.queries.WithLabelValues(string(e.Mode), answer, strconv.FormatBool(e.Cached)).Inc()
			if !e.Cached {
				m.duration.WithLabelValues(string(e.Mode)).Observe(e.Duration.Seconds())
			}
		},
	}
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Chain runs several hook sets in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(ctx context.Context, e *domain.LoadEvent) {
			for _, h := range hooks {
				if h.OnLoad != nil {
					h.OnLoad(ctx, e)
				}
			}
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			for _, h := range hooks {
				if h.OnQuery != nil {
					h.OnQuery(ctx, e)
				}
			}
		},
	}
}
