package gradle

import (
	"os"
	"path/filepath"
	"runtime"
)

// Platform selects the platform-specific Gradle executable names
type Platform int

const (
	// Unix covers every non-Windows host
	Unix Platform = iota
	// Windows uses the .bat variants
	Windows
)

// CurrentPlatform returns the platform of the running process
func CurrentPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// String returns the platform name
func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "unix"
}

// WrapperCommand returns the wrapper script invocation for the platform
func (p Platform) WrapperCommand() string {
	if p == Windows {
		return "gradlew.bat"
	}
	return "./gradlew"
}

// SystemCommand returns the system-installed Gradle command for the platform
func (p Platform) SystemCommand() string {
	if p == Windows {
		return "gradle.bat"
	}
	return "gradle"
}

// Command returns the Gradle command to run in projectPath. A non-empty
// override is returned verbatim; otherwise the wrapper script is preferred
// when it exists in projectPath, falling back to the system command.
func Command(projectPath, override string, platform Platform) string {
	if override != "" {
		return override
	}

	wrapper := platform.WrapperCommand()
	if _, err := os.Stat(filepath.Join(projectPath, wrapper)); err == nil {
		return wrapper
	}

	return platform.SystemCommand()
}
