package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeEnvVar overrides the graphchat home directory.
const HomeEnvVar = "GRAPHCHAT_HOME"

// DefaultHomeDir returns $GRAPHCHAT_HOME, or ~/.graphchat. It falls back to
// a temporary directory if the user home cannot be determined.
func DefaultHomeDir() string {
	if home := os.Getenv(HomeEnvVar); home != "" {
		if expanded, err := ExpandPath(home); err == nil {
			return expanded
		}
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".graphchat")
	}
	return filepath.Join(userHome, ".graphchat")
}

// DefaultConfigPath returns the default config file path for a given home directory
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}

// ExpandPath expands a leading ~ to the user home directory and $VAR or
// ${VAR} references, then cleans the result.
//
//   - "~/.graphchat/config.yaml" -> "/home/user/.graphchat/config.yaml"
//   - "${XDG_CONFIG_HOME}/graphchat.yaml" -> "/home/user/.config/graphchat.yaml"
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}

	return filepath.Clean(os.ExpandEnv(path)), nil
}
