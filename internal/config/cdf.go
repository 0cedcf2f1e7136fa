package config

import (
	"fmt"
	"strings"
)

// CDFConfig controls how we talk to the Cognite Data Fusion API.
type CDFConfig struct {
	Cluster      string  `yaml:"cluster"`
	Project      string  `yaml:"project"`
	BaseURL      string  `yaml:"base_url"`
	TokenURL     string  `yaml:"token_url"`
	ClientID     string  `yaml:"client_id"`
	ClientSecret string  `yaml:"client_secret"`
	Space        string  `yaml:"space"`
	ViewVersion  string  `yaml:"view_version"`
	RawDB        string  `yaml:"raw_db"`
	RPS          float64 `yaml:"rps"`
	Burst        int     `yaml:"burst"`
}

func defaultCDF() CDFConfig {
	return CDFConfig{
		Cluster:     defaultCDFCluster,
		Project:     defaultCDFProject,
		Space:       defaultCDFSpace,
		ViewVersion: defaultCDFViewVersion,
		RawDB:       defaultCDFRawDB,
		RPS:         defaultUpstreamRPS,
		Burst:       defaultUpstreamBurst,
	}
}

func loadCDF(base CDFConfig) CDFConfig {
	cfg := CDFConfig{
		Cluster:      envOrDefault(envCDFCluster, base.Cluster),
		Project:      envOrDefault(envCDFProject, base.Project),
		BaseURL:      envOrDefault(envCDFBaseURL, base.BaseURL),
		TokenURL:     envOrDefault(envCDFTokenURL, base.TokenURL),
		ClientID:     envOrDefault(envCDFClientID, base.ClientID),
		ClientSecret: envOrDefault(envCDFClientSecret, base.ClientSecret),
		Space:        envOrDefault(envCDFSpace, base.Space),
		ViewVersion:  envOrDefault(envCDFViewVersion, base.ViewVersion),
		RawDB:        envOrDefault(envCDFRawDB, base.RawDB),
		RPS:          floatEnvOrDefault(envUpstreamRPS, base.RPS),
		Burst:        intEnvOrDefault(envUpstreamBurst, base.Burst),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("https://%s.cognitedata.com", cfg.Cluster)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

// Scope is the OAuth scope requested for client credentials.
func (c CDFConfig) Scope() string {
	return c.BaseURL + "/.default"
}

// HasCredentials reports whether OAuth client credentials are configured.
func (c CDFConfig) HasCredentials() bool {
	return c.TokenURL != "" && c.ClientID != "" && c.ClientSecret != ""
}
