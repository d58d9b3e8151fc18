package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/matheuscscp/oauth2-callback-server/internal/logging"
	"github.com/matheuscscp/oauth2-callback-server/internal/page"
)

func timestamp(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

func debugInfo(req IncomingRequest, now time.Time) page.DebugInfo {
	return page.DebugInfo{
		Timestamp:   timestamp(now),
		URL:         req.URL(),
		Path:        req.Path(),
		QueryParams: page.Dump(req.QueryParams()),
		Headers:     page.Dump(req.Headers()),
	}
}

func respondHTML(w http.ResponseWriter, r *http.Request, status int, html string, err error) {
	if err != nil {
		logging.FromRequest(r).WithError(err).Error("failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		logging.FromRequest(r).WithError(err).Error("failed to write response")
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromRequest(r).WithError(err).Error("failed to write response")
	}
}
