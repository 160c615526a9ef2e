package gradle

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultReportPattern matches the reports written by the license plugin's
// downloadLicenses task in every module of a build
const DefaultReportPattern = "**/dependency-license.xml"

// ReportFinder locates generated license reports below a project root
type ReportFinder interface {
	// Find returns the report paths under projectPath. Finding no reports
	// is not an error.
	Find(projectPath string) ([]string, error)
}

// GlobReportFinder finds reports matching a doublestar pattern relative to
// the project root
type GlobReportFinder struct {
	pattern string
}

// NewGlobReportFinder creates a finder for pattern, using
// DefaultReportPattern when pattern is empty
func NewGlobReportFinder(pattern string) *GlobReportFinder {
	if pattern == "" {
		pattern = DefaultReportPattern
	}
	return &GlobReportFinder{
		pattern: pattern,
	}
}

// Pattern returns the glob pattern used by the finder
func (f *GlobReportFinder) Pattern() string {
	return f.pattern
}

// Find implements ReportFinder. Paths are returned sorted.
func (f *GlobReportFinder) Find(projectPath string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(projectPath), f.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to find license reports with pattern %q: %w", f.pattern, err)
	}
	slices.Sort(matches)

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, filepath.Join(projectPath, filepath.FromSlash(match)))
	}
	return paths, nil
}
