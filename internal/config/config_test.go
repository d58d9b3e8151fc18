package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
)

func TestConfig_ValidateAndInitialize(t *testing.T) {
	tests := []struct {
		name           string
		config         Config
		wantErr        bool
		expectedErrMsg string
		expectedConfig Config
	}{
		{
			name:   "config with defaults applied",
			config: Config{},
			expectedConfig: Config{
				Server: ServerConfig{
					Addr:        ":8080",
					MetricsAddr: ":9090",
				},
				Providers: DefaultProviders(),
			},
		},
		{
			name: "valid config with all fields",
			config: Config{
				Server: ServerConfig{
					Addr:        ":3000",
					MetricsAddr: "-",
					Production:  true,
				},
				Providers: []ProviderConfig{{
					Name:     "strava",
					Label:    "Strava",
					AuthURL:  "https://www.strava.com/oauth/authorize",
					TokenURL: "https://www.strava.com/oauth/token",
				}},
			},
			expectedConfig: Config{
				Server: ServerConfig{
					Addr:        ":3000",
					MetricsAddr: "-",
					Production:  true,
				},
				Providers: []ProviderConfig{{
					Name:     "strava",
					Label:    "Strava",
					AuthURL:  "https://www.strava.com/oauth/authorize",
					TokenURL: "https://www.strava.com/oauth/token",
				}},
			},
		},
		{
			name: "provider label derived from name",
			config: Config{
				Providers: []ProviderConfig{{Name: "oura"}},
			},
			expectedConfig: Config{
				Server: ServerConfig{
					Addr:        ":8080",
					MetricsAddr: ":9090",
				},
				Providers: []ProviderConfig{{Name: "oura", Label: "Oura"}},
			},
		},
		{
			name: "empty provider list is kept empty",
			config: Config{
				Providers: []ProviderConfig{},
			},
			expectedConfig: Config{
				Server: ServerConfig{
					Addr:        ":8080",
					MetricsAddr: ":9090",
				},
				Providers: []ProviderConfig{},
			},
		},
		{
			name: "missing provider name",
			config: Config{
				Providers: []ProviderConfig{{Name: "whoop"}, {Label: "Nameless"}},
			},
			wantErr:        true,
			expectedErrMsg: "providers[1].name must be set",
		},
		{
			name: "duplicated provider name",
			config: Config{
				Providers: []ProviderConfig{{Name: "whoop"}, {Name: "whoop"}},
			},
			wantErr:        true,
			expectedErrMsg: "providers[1].name 'whoop' is duplicated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)

			err := tt.config.ValidateAndInitialize()

			if tt.wantErr {
				g.Expect(err).To(HaveOccurred())
				g.Expect(err.Error()).To(ContainSubstring(tt.expectedErrMsg))
				return
			}

			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(tt.config).To(Equal(tt.expectedConfig))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file or environment", func(t *testing.T) {
		g := NewWithT(t)
		t.Setenv("PORT", "")
		t.Setenv("K_SERVICE", "")
		t.Setenv("CALLBACK_SERVER_CONFIG", "")

		conf, err := Load()
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(conf.Server.Addr).To(Equal(":8080"))
		g.Expect(conf.Server.Production).To(BeFalse())
		g.Expect(conf.Providers).To(Equal(DefaultProviders()))
	})

	t.Run("port and platform from environment", func(t *testing.T) {
		g := NewWithT(t)
		t.Setenv("PORT", "5000")
		t.Setenv("K_SERVICE", "callback")
		t.Setenv("CALLBACK_SERVER_CONFIG", "")

		conf, err := Load()
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(conf.Server.Addr).To(Equal(":5000"))
		g.Expect(conf.Server.Production).To(BeTrue())
	})

	t.Run("yaml file with environment override", func(t *testing.T) {
		g := NewWithT(t)
		fileName := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(fileName, []byte(`
server:
  addr: ":7000"
  metricsAddr: "-"
providers:
- name: garmin
  authURL: https://connect.garmin.com/oauth2Confirm
`), 0o600)
		g.Expect(err).ToNot(HaveOccurred())
		t.Setenv("CALLBACK_SERVER_CONFIG", fileName)
		t.Setenv("PORT", "7001")
		t.Setenv("K_SERVICE", "")

		conf, err := Load()
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(conf.Server.Addr).To(Equal(":7001"))
		g.Expect(conf.Server.MetricsEnabled()).To(BeFalse())
		g.Expect(conf.Providers).To(Equal([]ProviderConfig{{
			Name:    "garmin",
			Label:   "Garmin",
			AuthURL: "https://connect.garmin.com/oauth2Confirm",
		}}))
	})

	t.Run("missing config file", func(t *testing.T) {
		g := NewWithT(t)
		path := filepath.Join(t.TempDir(), "missing.yaml")
		t.Setenv("CALLBACK_SERVER_CONFIG", path)

		_, err := Load()
		g.Expect(err).To(MatchError(ContainSubstring("failed to open config file '" + path + "'")))
		g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		g := NewWithT(t)
		fileName := filepath.Join(t.TempDir(), "config.yaml")
		g.Expect(os.WriteFile(fileName, []byte("server: ["), 0o600)).To(Succeed())
		t.Setenv("CALLBACK_SERVER_CONFIG", fileName)

		_, err := Load()
		g.Expect(err).To(MatchError(ContainSubstring("failed to decode config file")))
	})
}
