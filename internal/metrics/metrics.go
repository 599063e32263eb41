// Package metrics holds the API client's Prometheus collectors.
package metrics

import (
	"sort"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
)

// Client counts what the API client does on the wire.
type Client struct {
	// Attempts counts HTTP attempts by method and status ("error" when no response).
	Attempts *prometheus.CounterVec

	// Retries counts 401-triggered retries.
	Retries prometheus.Counter

	// TokenUnavailable counts requests sent without a bearer token.
	TokenUnavailable prometheus.Counter
}

// NewClient creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is what tests usually want.
func NewClient(reg prometheus.Registerer) *Client {
	m := &Client{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "curate",
			Subsystem: "api",
			Name:      "attempts_total",
			Help:      "HTTP attempts issued to the Curate backend.",
		}, []string{"method", "status"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "curate",
			Subsystem: "api",
			Name:      "auth_retries_total",
			Help:      "Requests resent after a 401 with a refreshed token.",
		}),
		TokenUnavailable: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "curate",
			Subsystem: "api",
			Name:      "token_unavailable_total",
			Help:      "Requests sent without an Authorization header.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Attempts, m.Retries, m.TokenUnavailable)
	}
	return m
}

// StatusLabel renders an HTTP status for the Attempts status label.
func StatusLabel(code int) string {
	if code == 0 {
		return "error"
	}
	return strconv.Itoa(code)
}

// LogSummary writes every non-zero counter in g to log at debug level.
func LogSummary(log zerolog.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			ev := log.Debug().Str("metric", mf.GetName()).Float64("value", v)
			for _, lp := range m.GetLabel() {
				ev = ev.Str(lp.GetName(), lp.GetValue())
			}
			ev.Msg("counter")
		}
	}
	return nil
}
