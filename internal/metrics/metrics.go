package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	votesCastTotal    prometheus.Counter
	changeEventsTotal *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formae",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the Formae API.",
		}, []string{"method", "path", "status"})

		votesCastTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "formae",
			Name:      "votes_cast_total",
			Help:      "Total poll votes accepted.",
		})

		changeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formae",
			Name:      "change_events_total",
			Help:      "Change events handed to the realtime notifier.",
		}, []string{"entity", "action"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncVoteCast increments the votes_cast_total counter.
func IncVoteCast() {
	if votesCastTotal == nil {
		return
	}
	votesCastTotal.Inc()
}

// IncChangeEvent increments the change_events_total counter.
func IncChangeEvent(entity, action string) {
	if changeEventsTotal == nil {
		return
	}
	changeEventsTotal.WithLabelValues(entity, action).Inc()
}
