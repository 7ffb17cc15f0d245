package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DataEnvVar overrides the configured data path.
	DataEnvVar = "PF_DATA"

	// DataDir is the conventional data directory inside a site checkout.
	DataDir = "data"

	// RecordsFile marks a directory as a data directory.
	RecordsFile = "publications.json"

	// MetricsFile holds the fetched Scholar profile metrics.
	MetricsFile = "metrics.json"

	// InputCSV is the default build input inside the data directory.
	InputCSV = "publications.csv"
)

// ErrDataPathNotFound is returned when no data directory can be resolved.
var ErrDataPathNotFound = errors.New("data directory not found")

// IsDataDir reports whether dir holds a records document.
func IsDataDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, RecordsFile))
	return err == nil && !info.IsDir()
}

// FindDataDir walks up from start looking for a directory that is a data
// directory or has one under DataDir.
func FindDataDir(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsDataDir(abs) {
			return abs, nil
		}
		if candidate := filepath.Join(abs, DataDir); IsDataDir(candidate) {
			return candidate, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%w (no %s found above %s)", ErrDataPathNotFound, RecordsFile, start)
		}
		abs = parent
	}
}

// ResolveDataPath picks the data location: flag, then PF_DATA, then the
// global config, then a search upward from the working directory. URLs
// are returned unchanged.
func ResolveDataPath(flag string) (string, error) {
	for _, candidate := range []string{flag, os.Getenv(DataEnvVar)} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return normalizeLocation(candidate), nil
		}
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.DataPath != "" {
		return normalizeLocation(cfg.DataPath), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return FindDataDir(wd)
}

// IsURL reports whether location is an http(s) URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func normalizeLocation(location string) string {
	if IsURL(location) {
		return location
	}
	return ExpandPath(location)
}
