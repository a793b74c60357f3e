package config

import (
	"encoding/json"
	"fmt"
	"os"

	"tideline/internal/paths"
)

// Provider names accepted by the provider setting
const (
	ProviderLocal  = "local"
	ProviderRemote = "remote"
)

// Settings represents the structure of $TIDELINE_HOME/settings.json
type Settings struct {
	Debug                  *bool  `json:"debug,omitempty"`
	MaxLogFiles            *int   `json:"max_log_files,omitempty"`
	Provider               string `json:"provider,omitempty"`
	ProviderTimeoutSeconds *int   `json:"provider_timeout_seconds,omitempty"`
	ProviderURL            string `json:"provider_url,omitempty"`
	ServeAddr              string `json:"serve_addr,omitempty"`
	SimulatorLatencyMillis *int   `json:"simulator_latency_millis,omitempty"`
}

// LoadSettings loads settings from $TIDELINE_HOME/settings.json.
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(paths.GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $TIDELINE_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := paths.GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(paths.GetTidelineHome(), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
