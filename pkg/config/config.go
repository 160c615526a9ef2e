package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration files looked up by LoadConfiguration
const FileName = ".lfgradle.yml"

// Config represents the merged configuration from all .lfgradle.yml files
type Config struct {
	Gradle GradleConfig `yaml:"gradle"`
	// Files lists the merged configuration files, root first
	Files []string `yaml:"-"`
}

// GradleConfig represents configuration for the Gradle discoverer. Pointer
// fields distinguish unset values from explicit zero values while merging.
type GradleConfig struct {
	// Command overrides the wrapper or system gradle command
	Command *string `yaml:"command"`
	// IncludeGroups qualifies dependency names with their group id
	IncludeGroups *bool `yaml:"include_groups"`
	// ReportPattern is the doublestar pattern locating license reports
	ReportPattern *string `yaml:"report_pattern"`
}

// LoadConfiguration merges every .lfgradle.yml between the filesystem root
// and startDir. Files nearer to startDir override settings from files above.
func LoadConfiguration(startDir string) (*Config, error) {
	config := &Config{}
	for _, path := range lookupFiles(startDir) {
		if err := config.mergeConfigFile(path); err != nil {
			return nil, fmt.Errorf("failed to merge config file %s: %w", path, err)
		}
	}
	return config, nil
}

// lookupFiles returns the existing config files above dir, root first
func lookupFiles(dir string) []string {
	var found []string
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			found = append([]string{candidate}, found...)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return found
		}
		dir = parent
	}
}

// mergeConfigFile merges a single config file into the current configuration
func (c *Config) mergeConfigFile(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	err = yaml.Unmarshal(data, &fileConfig)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	c.Gradle.merge(fileConfig.Gradle)
	c.Files = append(c.Files, configPath)

	return nil
}

// merge overrides the fields set in other
func (g *GradleConfig) merge(other GradleConfig) {
	if other.Command != nil {
		g.Command = other.Command
	}
	if other.IncludeGroups != nil {
		g.IncludeGroups = other.IncludeGroups
	}
	if other.ReportPattern != nil {
		g.ReportPattern = other.ReportPattern
	}
}

// GetCommand returns the configured command override, or an empty string
func (g GradleConfig) GetCommand() string {
	if g.Command == nil {
		return ""
	}
	return *g.Command
}

// GetIncludeGroups returns the configured include_groups value, false if unset
func (g GradleConfig) GetIncludeGroups() bool {
	return g.IncludeGroups != nil && *g.IncludeGroups
}

// GetReportPattern returns the configured report pattern, or an empty string
func (g GradleConfig) GetReportPattern() string {
	if g.ReportPattern == nil {
		return ""
	}
	return *g.ReportPattern
}
