package config

const (
	defaultServerAddr  = ":8080"
	defaultMetricsAddr = ":9090"

	// MetricsDisabled turns off the metrics listener when used as server.metricsAddr.
	MetricsDisabled = "-"
)

type ServerConfig struct {
	Addr        string `yaml:"addr" json:"addr"`
	MetricsAddr string `yaml:"metricsAddr" json:"metricsAddr"`
	Production  bool   `yaml:"production" json:"production"`
}

func (s *ServerConfig) MetricsEnabled() bool {
	return s.MetricsAddr != MetricsDisabled
}
