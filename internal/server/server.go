package server

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/matheuscscp/oauth2-callback-server/internal/config"
	"github.com/matheuscscp/oauth2-callback-server/internal/constants"
	"github.com/matheuscscp/oauth2-callback-server/internal/logging"
)

const (
	readHeaderTimeout = 10 * time.Second

	routeOther = "other"
)

var allowedMethods = []string{http.MethodGet, http.MethodHead}

func newServer(conf *config.Config, api http.Handler, logger logrus.FieldLogger, m *metrics) *http.Server {
	return &http.Server{
		Addr:              conf.Server.Addr,
		ReadHeaderTimeout: readHeaderTimeout,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			l := logger.WithFields(logrus.Fields{
				"requestID": uuid.NewString(),
				"http": logrus.Fields{
					"host":   r.Host,
					"method": r.Method,
					"path":   r.URL.Path,
				},
			})
			defer func() {
				elapsed := time.Since(t)
				status := sr.getStatusCode()
				m.requestDurationSecs.
					WithLabelValues(r.Method, routeLabel(r.URL.Path), fmt.Sprintf("%d", status)).
					Observe(elapsed.Seconds())
				l.WithFields(logrus.Fields{
					"status":   status,
					"bytes":    sr.written,
					"duration": elapsed.String(),
				}).Debug("request served")
			}()

			w = sr
			r = logging.IntoRequest(r, l)

			if !slices.Contains(allowedMethods, r.Method) {
				logging.FromRequest(r).Debug("method not allowed")
				w.Header().Set("Allow", "GET, HEAD")
				const status = http.StatusMethodNotAllowed
				http.Error(w, http.StatusText(status), status)
				return
			}

			api.ServeHTTP(w, r)
		}),
	}
}

// newMetricsServer exposes the registry on its own listener so that the
// public listener only serves the callback routes.
func newMetricsServer(conf *config.Config, promGatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	return &http.Server{
		Addr:              conf.Server.MetricsAddr,
		ReadHeaderTimeout: readHeaderTimeout,
		Handler:           mux,
	}
}

// routeLabel keeps the metric cardinality bounded for catch-all paths.
func routeLabel(path string) string {
	if slices.Contains(constants.ValidEndpoints, path) {
		return path
	}
	return routeOther
}
