package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess       = "success"
	outcomeMissingCode   = "missing_code"
	outcomeProviderError = "provider_error"

	unknownService = "unknown"
)

type metrics struct {
	requestDurationSecs *prometheus.SummaryVec
	callbacks           *prometheus.CounterVec
}

func newMetrics(promRegisterer prometheus.Registerer) *metrics {
	m := &metrics{
		requestDurationSecs: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		}, []string{"method", "route", "status"}),
		callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_callbacks_total",
			Help: "OAuth callbacks received, by outcome and detected service",
		}, []string{"outcome", "service"}),
	}
	promRegisterer.MustRegister(m.requestDurationSecs, m.callbacks)
	return m
}

func (m *metrics) observeCallback(outcome, service string) {
	if service == "" {
		service = unknownService
	}
	m.callbacks.WithLabelValues(outcome, service).Inc()
}
