package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the TIDELINE_* environment overrides.
// TIDELINE_HOME is read by the paths package.
type Env struct {
	Debug            string        `env:"TIDELINE_DEBUG"`
	DebugFile        string        `env:"TIDELINE_DEBUG_FILE"`
	MaxLogFiles      *int          `env:"TIDELINE_MAX_LOG_FILES"`
	Provider         string        `env:"TIDELINE_PROVIDER"`
	ProviderTimeout  time.Duration `env:"TIDELINE_PROVIDER_TIMEOUT"`
	ProviderURL      string        `env:"TIDELINE_PROVIDER_URL"`
	ServeAddr        string        `env:"TIDELINE_SERVE_ADDR"`
	SimulatorLatency time.Duration `env:"TIDELINE_SIMULATOR_LATENCY"`
}

// ParseEnv loads the TIDELINE_* variables
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// DebugSetting reports whether TIDELINE_DEBUG is set and whether it turns
// debug logging on. Unrecognized values count as set and off.
func (e Env) DebugSetting() (enabled, set bool) {
	v := strings.ToLower(strings.TrimSpace(e.Debug))
	if v == "" {
		return false, false
	}
	switch v {
	case "yes", "y", "on":
		return true, true
	}
	enabled, _ = strconv.ParseBool(v)
	return enabled, true
}

// ResolveDebug applies precedence for debug logging:
// --debug > TIDELINE_DEBUG > settings.json > off
func ResolveDebug(flag bool, e Env, settings *Settings) bool {
	if flag {
		return true
	}
	if enabled, set := e.DebugSetting(); set {
		return enabled
	}
	return settings != nil && settings.Debug != nil && *settings.Debug
}

// ResolveDebugFile prefers --debug-file over TIDELINE_DEBUG_FILE
func ResolveDebugFile(flag string, e Env) string {
	return firstNonEmpty(flag, e.DebugFile)
}
