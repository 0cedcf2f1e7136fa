package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Port         string `yaml:"port"`
	OtlpEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	OtlpInsecure bool   `yaml:"otlp_insecure"`
}

func defaultMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      true,
		Port:         defaultMetricsPort,
		ServiceName:  defaultServiceName,
		OtlpInsecure: true,
	}
}

func loadMetrics(base MetricsConfig) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, base.Enabled),
		Port:         envOrDefault(envMetricsPort, base.Port),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, base.OtlpEndpoint),
		ServiceName:  envOrDefault(envOtelService, base.ServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, base.OtlpInsecure),
	}
}
