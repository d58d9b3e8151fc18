// Package page renders the HTML pages of the callback server. Every function
// maps a plain data record to an HTML string and has no other inputs, so the
// pages can be tested without a server.
package page

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/matheuscscp/oauth2-callback-server/internal/constants"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type DebugInfo struct {
	Timestamp   string
	URL         string
	Path        string
	QueryParams string
	Headers     string
}

type ProviderInfo struct {
	Label    string
	AuthURL  string
	TokenURL string
}

type HomeData struct {
	Providers         []ProviderInfo
	SampleCallbackURL string
}

// CallbackData feeds both the success page (Code set) and the missing-code page.
type CallbackData struct {
	Code    string
	Service string
	Debug   DebugInfo
}

type AuthErrorData struct {
	Error       string
	Description string
}

type NotFoundData struct {
	Path        string
	Endpoints   []string
	QueryParams string
}

func Home(data HomeData) (string, error) {
	return render("home.html", data)
}

func Callback(data CallbackData) (string, error) {
	return render("callback.html", data)
}

func AuthError(data AuthErrorData) (string, error) {
	if data.Error == "" {
		data.Error = constants.Placeholder
	}
	if data.Description == "" {
		data.Description = constants.DefaultErrorDescription
	}
	return render("auth_error.html", data)
}

func NotFound(data NotFoundData) (string, error) {
	return render("not_found.html", data)
}

// Dump serializes v as indented JSON for the debug panels. Map keys come out
// sorted, so equal inputs always produce equal output.
func Dump(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return constants.Placeholder
	}
	return string(b)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
