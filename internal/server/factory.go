package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/matheuscscp/oauth2-callback-server/internal/config"
	"github.com/matheuscscp/oauth2-callback-server/internal/provider"
)

// New builds the public server and, unless disabled, the metrics server.
func New(conf *config.Config, logger logrus.FieldLogger) (*http.Server, *http.Server) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := newMetrics(registry)
	providers := provider.New(conf.Providers)
	api := newAPI(providers, m, time.Now)
	srv := newServer(conf, api, logger, m)

	if !conf.Server.MetricsEnabled() {
		return srv, nil
	}
	return srv, newMetricsServer(conf, registry)
}
