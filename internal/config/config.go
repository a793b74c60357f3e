package config

import (
	"fmt"
	"time"
)

// Defaults
const (
	DefaultMaxLogFiles     = 1000
	DefaultProviderTimeout = 10 * time.Second
	DefaultProviderURL     = "http://localhost:8000/api"
	DefaultServeAddr       = "localhost:8000"
)

// Flags carries command-line values. Zero values mean "not given".
type Flags struct {
	Provider    string
	ProviderURL string
	ServeAddr   string
}

// Config is the resolved runtime configuration
type Config struct {
	Provider         string
	ProviderTimeout  time.Duration
	ProviderURL      string
	ServeAddr        string
	SimulatorLatency time.Duration
}

// Resolve applies precedence: CLI flags > env vars > settings.json > defaults
func Resolve(flags Flags, e Env, settings *Settings) (Config, error) {
	if settings == nil {
		settings = &Settings{}
	}

	cfg := Config{
		Provider:        ProviderLocal,
		ProviderTimeout: DefaultProviderTimeout,
		ProviderURL:     DefaultProviderURL,
		ServeAddr:       DefaultServeAddr,
	}

	cfg.Provider = firstNonEmpty(flags.Provider, e.Provider, settings.Provider, cfg.Provider)
	cfg.ProviderURL = firstNonEmpty(flags.ProviderURL, e.ProviderURL, settings.ProviderURL, cfg.ProviderURL)
	cfg.ServeAddr = firstNonEmpty(flags.ServeAddr, e.ServeAddr, settings.ServeAddr, cfg.ServeAddr)

	switch {
	case e.ProviderTimeout > 0:
		cfg.ProviderTimeout = e.ProviderTimeout
	case settings.ProviderTimeoutSeconds != nil:
		cfg.ProviderTimeout = time.Duration(*settings.ProviderTimeoutSeconds) * time.Second
	}

	switch {
	case e.SimulatorLatency > 0:
		cfg.SimulatorLatency = e.SimulatorLatency
	case settings.SimulatorLatencyMillis != nil:
		cfg.SimulatorLatency = time.Duration(*settings.SimulatorLatencyMillis) * time.Millisecond
	}

	if cfg.Provider != ProviderLocal && cfg.Provider != ProviderRemote {
		return Config{}, fmt.Errorf("unknown provider %q (expected %s or %s)", cfg.Provider, ProviderLocal, ProviderRemote)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
