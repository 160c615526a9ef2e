package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration_Empty(t *testing.T) {
	config, err := LoadConfiguration(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", config.Gradle.GetCommand())
	assert.False(t, config.Gradle.GetIncludeGroups())
	assert.Equal(t, "", config.Gradle.GetReportPattern())
}

func TestLoadConfiguration_MergesHierarchy(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "team", "project")

	parent := writeConfig(t, root, `
gradle:
  command: gradle --offline
  include_groups: true
  report_pattern: "**/*.xml"
`)
	leaf := writeConfig(t, project, `
gradle:
  include_groups: false
`)

	config, err := LoadConfiguration(project)
	require.NoError(t, err)

	assert.Equal(t, "gradle --offline", config.Gradle.GetCommand())
	assert.False(t, config.Gradle.GetIncludeGroups())
	assert.Equal(t, "**/*.xml", config.Gradle.GetReportPattern())
	assert.Equal(t, []string{parent, leaf}, config.Files)
}

func TestLoadConfiguration_JSONSyntax(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"gradle": {"command": "./gradlew -q", "include_groups": true}}`)

	config, err := LoadConfiguration(dir)
	require.NoError(t, err)

	assert.Equal(t, "./gradlew -q", config.Gradle.GetCommand())
	assert.True(t, config.Gradle.GetIncludeGroups())
}

func TestLoadConfiguration_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "gradle: [unterminated")

	_, err := LoadConfiguration(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to merge config file")
}

func TestLoadConfiguration_SkipsDirectories(t *testing.T) {
	root := t.TempDir()
	parent := writeConfig(t, root, "gradle:\n  command: gradle\n")
	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, FileName), 0o755))

	config, err := LoadConfiguration(project)
	require.NoError(t, err)

	assert.Equal(t, "gradle", config.Gradle.GetCommand())
	assert.Equal(t, []string{parent}, config.Files)
}
