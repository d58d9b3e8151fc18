package server

import (
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matheuscscp/oauth2-callback-server/internal/constants"
	"github.com/matheuscscp/oauth2-callback-server/internal/logging"
	"github.com/matheuscscp/oauth2-callback-server/internal/page"
	"github.com/matheuscscp/oauth2-callback-server/internal/provider"
)

const (
	sampleCode  = "test_code_123"
	sampleState = "whoop_test"
)

func newAPI(providers *provider.Registry, m *metrics, nowFunc func() time.Time) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(constants.PathHome+"{$}", func(w http.ResponseWriter, r *http.Request) {
		html, err := page.Home(homeData(providers))
		respondHTML(w, r, http.StatusOK, html, err)
	})

	mux.HandleFunc(constants.PathCallback, func(w http.ResponseWriter, r *http.Request) {
		req := newIncomingRequest(r)
		status, html, err := renderCallback(logging.FromRequest(r), req, providers, m, nowFunc())
		respondHTML(w, r, status, html, err)
	})

	mux.HandleFunc(constants.PathHealth, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": constants.ServiceDescription,
		})
	})

	// Anything else is most likely a provider configured with the wrong callback URL.
	notFound := func(w http.ResponseWriter, r *http.Request) {
		req := newIncomingRequest(r)
		status, html, err := renderNotFound(logging.FromRequest(r), req)
		respondHTML(w, r, status, html, err)
	}
	mux.HandleFunc(constants.PathHome, notFound)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ServeMux would redirect these to a cleaned path and hide the URI
		// the provider actually used.
		if !isCanonicalPath(r.URL.Path) || !isCanonicalPath(r.URL.EscapedPath()) {
			notFound(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// isCanonicalPath reports whether ServeMux would route p without redirecting.
func isCanonicalPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	cleaned := path.Clean(p)
	if p[len(p)-1] == '/' && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned == p
}

func homeData(providers *provider.Registry) page.HomeData {
	sample := url.Values{}
	sample.Set(constants.QueryParamAuthorizationCode, sampleCode)
	sample.Set(constants.QueryParamState, sampleState)

	data := page.HomeData{
		SampleCallbackURL: constants.PathCallback + "?" + sample.Encode(),
	}
	for _, p := range providers.Providers() {
		data.Providers = append(data.Providers, page.ProviderInfo{
			Label:    p.Label,
			AuthURL:  p.Endpoint.AuthURL,
			TokenURL: p.Endpoint.TokenURL,
		})
	}
	return data
}

func renderCallback(l logrus.FieldLogger, req IncomingRequest, providers *provider.Registry,
	m *metrics, now time.Time) (int, string, error) {

	params := req.QueryParams()
	l.WithFields(logrus.Fields{
		"receivedAt": timestamp(now),
		"url":        req.URL(),
		"path":       req.Path(),
		"rawQuery":   req.RawQuery(),
		"params":     params,
		"method":     req.Method(),
		"remoteAddr": req.RemoteAddr(),
	}).Info("callback received")

	var service string
	if p, ok := providers.Detect(req.Query(constants.QueryParamState)); ok {
		service = p.Label
	}

	if errCode := req.Query(constants.QueryParamError); errCode != "" {
		errDesc := req.Query(constants.QueryParamErrorDescription)
		l.WithFields(logrus.Fields{
			"error":            errCode,
			"errorDescription": errDesc,
		}).Warn("provider reported an authorization error")
		m.observeCallback(outcomeProviderError, service)
		html, err := page.AuthError(page.AuthErrorData{
			Error:       errCode,
			Description: errDesc,
		})
		return http.StatusBadRequest, html, err
	}

	code := req.Query(constants.QueryParamAuthorizationCode)
	if code == "" {
		l.Warn("callback without authorization code")
		m.observeCallback(outcomeMissingCode, service)
	} else {
		l.WithField("service", service).Debug("authorization code received")
		m.observeCallback(outcomeSuccess, service)
	}

	html, err := page.Callback(page.CallbackData{
		Code:    code,
		Service: service,
		Debug:   debugInfo(req, now),
	})
	return http.StatusOK, html, err
}

func renderNotFound(l logrus.FieldLogger, req IncomingRequest) (int, string, error) {
	params := req.QueryParams()
	l.WithFields(logrus.Fields{
		"path":   req.Path(),
		"params": params,
	}).Warn("request to unknown path, check the redirect URI configured at the provider")

	html, err := page.NotFound(page.NotFoundData{
		Path:        req.Path(),
		Endpoints:   constants.ValidEndpoints,
		QueryParams: page.Dump(params),
	})
	return http.StatusNotFound, html, err
}
