package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"lectern/internal/config"
)

// resolveConfigPath normalizes a config path, defaulting to lectern.yml in
// the working directory.
func resolveConfigPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = config.DefaultFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}
