package gradle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGlobReportFinder_Find(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build/reports/license/dependency-license.xml"), "")
	writeFile(t, filepath.Join(dir, "app/build/reports/license/dependency-license.xml"), "")
	writeFile(t, filepath.Join(dir, "lib/build/reports/license/dependency-license.html"), "")
	writeFile(t, filepath.Join(dir, "lib/build/reports/license/license-dependency.xml"), "")

	finder := NewGlobReportFinder("")
	assert.Equal(t, DefaultReportPattern, finder.Pattern())

	paths, err := finder.Find(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "app/build/reports/license/dependency-license.xml"),
		filepath.Join(dir, "build/reports/license/dependency-license.xml"),
	}, paths)
}

func TestGlobReportFinder_CustomPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build/reports/license/dependency-license.xml"), "")
	writeFile(t, filepath.Join(dir, "build/reports/license/license-dependency.xml"), "")

	paths, err := NewGlobReportFinder("build/reports/license/*.xml").Find(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestGlobReportFinder_NoReports(t *testing.T) {
	paths, err := NewGlobReportFinder("").Find(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestGlobReportFinder_InvalidPattern(t *testing.T) {
	_, err := NewGlobReportFinder("[").Find(t.TempDir())
	require.Error(t, err)
}
