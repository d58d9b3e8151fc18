package provider

import (
	"strings"

	"golang.org/x/oauth2"

	"github.com/matheuscscp/oauth2-callback-server/internal/config"
)

type Provider struct {
	Name     string
	Label    string
	Endpoint oauth2.Endpoint
}

// Registry is the ordered, read-only set of known providers.
type Registry struct {
	providers []Provider
}

func New(conf []config.ProviderConfig) *Registry {
	providers := make([]Provider, 0, len(conf))
	for _, p := range conf {
		providers = append(providers, Provider{
			Name:  p.Name,
			Label: p.Label,
			Endpoint: oauth2.Endpoint{
				AuthURL:  p.AuthURL,
				TokenURL: p.TokenURL,
			},
		})
	}
	return &Registry{providers: providers}
}

func (r *Registry) Providers() []Provider {
	return append([]Provider(nil), r.providers...)
}

// Detect guesses which provider issued a callback by looking for a provider
// name inside the state parameter, ignoring case. The first configured match
// wins. The state is never validated.
func (r *Registry) Detect(state string) (*Provider, bool) {
	if state == "" {
		return nil, false
	}
	s := strings.ToLower(state)
	for i := range r.providers {
		if strings.Contains(s, strings.ToLower(r.providers[i].Name)) {
			p := r.providers[i]
			return &p, true
		}
	}
	return nil, false
}
