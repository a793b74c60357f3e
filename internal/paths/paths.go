package paths

import (
	"os"
	"path/filepath"
)

// GetTidelineHome returns TIDELINE_HOME or ~/.tideline default
func GetTidelineHome() string {
	home := os.Getenv("TIDELINE_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".tideline"
		}
		return filepath.Join(homeDir, ".tideline")
	}
	return ExpandPath(home)
}

// GetDBPath returns $TIDELINE_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetTidelineHome(), "state.db")
}

// GetSettingsPath returns $TIDELINE_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetTidelineHome(), "settings.json")
}

// GetArchiveDir returns $TIDELINE_HOME/archive
func GetArchiveDir() string {
	return filepath.Join(GetTidelineHome(), "archive")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
