package gradle

import (
	"os"
	"path/filepath"
	"regexp"
)

const (
	settingsFile    = "settings.gradle"
	kotlinBuildFile = "build.gradle.kts"
	groovyBuildFile = "build.gradle"
)

var buildFileNameRegex = regexp.MustCompile(`rootProject.buildFileName = ['"](.*)['"]`)

// BuildFile returns the path of the build file governing projectPath.
//
// A rootProject.buildFileName directive in settings.gradle wins and is
// returned whether or not the named file exists. Otherwise build.gradle.kts
// is used when present, else build.gradle.
func BuildFile(projectPath string) string {
	if name, ok := buildFileFromSettings(projectPath); ok {
		return filepath.Join(projectPath, name)
	}

	kotlinPath := filepath.Join(projectPath, kotlinBuildFile)
	if _, err := os.Stat(kotlinPath); err == nil {
		return kotlinPath
	}

	return filepath.Join(projectPath, groovyBuildFile)
}

// buildFileFromSettings looks for a build file redirect in settings.gradle
func buildFileFromSettings(projectPath string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(projectPath, settingsFile))
	if err != nil {
		return "", false
	}

	matches := buildFileNameRegex.FindSubmatch(content)
	if matches == nil {
		return "", false
	}

	return string(matches[1]), true
}
