package server

import (
	"net/http"
	"net/url"
	"strings"
)

// redactedHeaders never show up in rendered pages.
var redactedHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization"}

// IncomingRequest is the read-only view of a request that the handlers render.
type IncomingRequest interface {
	// Query returns the last value of key, or "" when absent.
	Query(key string) string
	// QueryParams returns every query key with its last value.
	QueryParams() map[string]string
	RawQuery() string
	// Headers returns the request headers without credentials.
	Headers() map[string]string
	URL() string
	Path() string
	Method() string
	RemoteAddr() string
}

type httpRequest struct {
	r     *http.Request
	query url.Values
}

func newIncomingRequest(r *http.Request) IncomingRequest {
	return &httpRequest{
		r:     r,
		query: r.URL.Query(),
	}
}

func (h *httpRequest) Query(key string) string {
	v := h.query[key]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

func (h *httpRequest) QueryParams() map[string]string {
	params := make(map[string]string, len(h.query))
	for k := range h.query {
		params[k] = h.Query(k)
	}
	return params
}

func (h *httpRequest) RawQuery() string {
	return h.r.URL.RawQuery
}

func (h *httpRequest) Headers() map[string]string {
	header := h.r.Header.Clone()
	for _, name := range redactedHeaders {
		header.Del(name)
	}
	headers := make(map[string]string, len(header))
	for k, v := range header {
		headers[k] = strings.Join(v, ", ")
	}
	if h.r.Host != "" {
		headers["Host"] = h.r.Host
	}
	return headers
}

func (h *httpRequest) URL() string {
	return requestScheme(h.r) + "://" + h.r.Host + h.r.URL.RequestURI()
}

func (h *httpRequest) Path() string {
	return h.r.URL.Path
}

func (h *httpRequest) Method() string {
	return h.r.Method
}

func (h *httpRequest) RemoteAddr() string {
	return h.r.RemoteAddr
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return "http"
}
