package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
title: "Course Notes"
source_dir: pages
output_dir: site

mcq:
  default_classes: []
`

const samplePage = `Getting Started
===============

Pages are plain structured text. Answer choices use an upper-alphabetic
list; each item may carry a feedback field.

.. mcq:: What is 2+2?
   :answer: B

   A. 3

      :feedback: Off by one.

   B. 4

      :feedback: Correct!

   C. 5

      :feedback: Off by one.
`

// Scaffold writes a starter project file and a sample page next to it.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	pagesDir := filepath.Join(filepath.Dir(configPath), "pages")
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		return fmt.Errorf("create pages dir: %w", err)
	}

	pagePath := filepath.Join(pagesDir, "index.rst")
	if _, err := os.Stat(pagePath); err == nil {
		return fmt.Errorf("page file already exists at %q", pagePath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat page file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(pagePath, []byte(samplePage), 0o644); err != nil {
		return fmt.Errorf("write page file: %w", err)
	}
	return nil
}
