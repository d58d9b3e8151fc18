package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ProviderConfig describes an OAuth provider whose callbacks this server expects.
// Name doubles as the token searched for in the state parameter.
type ProviderConfig struct {
	Name     string `yaml:"name" json:"name"`
	Label    string `yaml:"label" json:"label"`
	AuthURL  string `yaml:"authURL" json:"authURL"`
	TokenURL string `yaml:"tokenURL" json:"tokenURL"`
}

func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			Name:     "whoop",
			Label:    "Whoop",
			AuthURL:  "https://api.prod.whoop.com/oauth/oauth2/auth",
			TokenURL: "https://api.prod.whoop.com/oauth/oauth2/token",
		},
		{
			Name:     "suunto",
			Label:    "Suunto",
			AuthURL:  "https://cloudapi-oauth.suunto.com/oauth/authorize",
			TokenURL: "https://cloudapi-oauth.suunto.com/oauth/token",
		},
	}
}

func defaultLabel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}
