package writer

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the logical name of the page stylesheet.
	StylesheetName = "mcq.css"
	// ScriptName is the logical name of the feedback reveal script.
	ScriptName = "mcq.js"
	// AssetsDirName is the directory assets are copied into under the
	// output root.
	AssetsDirName = "assets"
)

// AssetURL resolves a logical asset name against a base URL, or against the
// copied assets directory when no base is configured.
func AssetURL(base, name string) string {
	if base == "" {
		return AssetsDirName + "/" + name
	}
	return strings.TrimRight(base, "/") + "/" + name
}

// CopyAssets writes the embedded static assets into the output tree. It is
// the final step of a build; pages reference the copied files by relative
// URL.
func CopyAssets(outputDir string) error {
	assetsDir := filepath.Join(outputDir, AssetsDirName)
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return fmt.Errorf("create assets dir: %w", err)
	}
	entries, err := embeddedAssets.ReadDir("assets")
	if err != nil {
		return fmt.Errorf("read embedded assets: %w", err)
	}
	for _, entry := range entries {
		data, err := embeddedAssets.ReadFile("assets/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded asset %s: %w", entry.Name(), err)
		}
		target := filepath.Join(assetsDir, entry.Name())
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write asset %s: %w", entry.Name(), err)
		}
	}
	return nil
}
