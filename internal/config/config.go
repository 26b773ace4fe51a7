// Package config loads and validates the project file that describes a
// documentation build: where pages live, where output goes, and the
// question defaults applied to every page.
package config

// DefaultFileName is the project file looked up when no --config flag is
// given.
const DefaultFileName = "lectern.yml"

// Config is the parsed project file.
type Config struct {
	Version   int    `yaml:"version"`
	Title     string `yaml:"title"`
	SourceDir string `yaml:"source_dir"`
	OutputDir string `yaml:"output_dir"`
	MCQ       MCQ    `yaml:"mcq"`
}

// MCQ holds question-rendering defaults.
type MCQ struct {
	// DefaultClasses are style classes added to every question that does
	// not carry them already.
	DefaultClasses []string `yaml:"default_classes"`

	// AssetsBaseURL overrides the relative path pages use to reach the
	// copied stylesheet and script.
	AssetsBaseURL string `yaml:"assets_base_url"`
}
