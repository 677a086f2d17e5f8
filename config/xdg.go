package config

import (
	"os"
	"path/filepath"
)

const appDirName = "md2gdocs"

// GetConfigDir holds config.toml and the OAuth client credentials.
func GetConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir holds the cached token and the publication registry.
func GetDataDir() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// xdgDir joins appDirName onto the base directory named by env. Relative
// values are invalid under the XDG spec and fall back to the home default.
func xdgDir(env string, fallback ...string) string {
	if base := os.Getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, appDirName)
	}
	home, _ := os.UserHomeDir()
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, appDirName)...)
}

// resolvePath expands a leading ~ and anchors relative paths at dir, the
// directory of the config file that named them.
func resolvePath(dir, path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil || expanded == "" {
		return expanded, err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(dir, expanded), nil
}
