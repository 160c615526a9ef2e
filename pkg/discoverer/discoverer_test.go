package discoverer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lfgradle/pkg/license"
)

// MockDiscoverer implements the Discoverer interface for testing
type MockDiscoverer struct {
	name            string
	activeFunc      func(path string) bool
	discoverFunc    func(ctx context.Context, path string) ([]license.Dependency, error)
	subprojectsFunc func(ctx context.Context, path string) ([]string, error)
}

func NewMockDiscoverer(name string, activeFunc func(string) bool, discoverFunc func(context.Context, string) ([]license.Dependency, error)) *MockDiscoverer {
	return &MockDiscoverer{
		name:         name,
		activeFunc:   activeFunc,
		discoverFunc: discoverFunc,
	}
}

func (m *MockDiscoverer) Name() string {
	return m.name
}

func (m *MockDiscoverer) Active(path string) bool {
	if m.activeFunc != nil {
		return m.activeFunc(path)
	}
	return true
}

func (m *MockDiscoverer) Discover(ctx context.Context, path string) ([]license.Dependency, error) {
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, path)
	}
	return nil, nil
}

func (m *MockDiscoverer) Subprojects(ctx context.Context, path string) ([]string, error) {
	if m.subprojectsFunc != nil {
		return m.subprojectsFunc(ctx, path)
	}
	return nil, nil
}

func deps(names ...string) []license.Dependency {
	var result []license.Dependency
	for _, name := range names {
		result = append(result, license.NewDependency("", name, "", "", nil))
	}
	return result
}

func TestMultiDiscoverer_Discover(t *testing.T) {
	ctx := context.Background()

	gradleDiscoverer := NewMockDiscoverer("gradle",
		func(path string) bool { return path == "/project" },
		func(ctx context.Context, path string) ([]license.Dependency, error) {
			return deps("junit", "mockito-core"), nil
		})
	mavenDiscoverer := NewMockDiscoverer("maven",
		func(path string) bool { return true },
		func(ctx context.Context, path string) ([]license.Dependency, error) {
			return deps("mockito-core", "guava"), nil
		})
	inactiveDiscoverer := NewMockDiscoverer("inactive",
		func(path string) bool { return false },
		func(ctx context.Context, path string) ([]license.Dependency, error) {
			t.Error("Inactive discoverer should not run")
			return nil, nil
		})

	multi := NewMultiDiscoverer(gradleDiscoverer, mavenDiscoverer, inactiveDiscoverer)

	result, err := multi.Discover(ctx, "/project")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if result.Path != "/project" {
		t.Errorf("Expected path '/project', got '%s'", result.Path)
	}

	var names []string
	for _, dep := range result.Dependencies {
		names = append(names, dep.Name)
	}
	if strings.Join(names, ",") != "junit,mockito-core,guava" {
		t.Errorf("Expected deduplicated dependencies junit,mockito-core,guava, got %v", names)
	}

	if strings.Join(result.Discoverers, ",") != "gradle,maven" {
		t.Errorf("Expected active discoverers gradle,maven, got %v", result.Discoverers)
	}

	// Only maven applies to other paths
	result, err = multi.Discover(ctx, "/other")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(result.Dependencies) != 2 {
		t.Errorf("Expected 2 dependencies, got %d", len(result.Dependencies))
	}
}

func TestMultiDiscoverer_DiscoverError(t *testing.T) {
	cause := errors.New("Command 'gradle downloadLicenses' failed to execute: boom")
	failing := NewMockDiscoverer("gradle", nil,
		func(ctx context.Context, path string) ([]license.Dependency, error) {
			return nil, cause
		})

	multi := NewMultiDiscoverer(NewMockDiscoverer("maven", nil, nil), failing)

	result, err := multi.Discover(context.Background(), "/project")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if result != nil {
		t.Errorf("Expected no partial result, got %+v", result)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected error to wrap cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected error to contain stderr, got %v", err)
	}
}

func TestMultiDiscoverer_Subprojects(t *testing.T) {
	first := NewMockDiscoverer("first", nil, nil)
	first.subprojectsFunc = func(ctx context.Context, path string) ([]string, error) {
		return []string{path + "/a", path + "/b"}, nil
	}
	second := NewMockDiscoverer("second", func(string) bool { return false }, nil)
	second.subprojectsFunc = func(ctx context.Context, path string) ([]string, error) {
		return []string{path + "/ignored"}, nil
	}

	multi := NewMultiDiscoverer(first, second)
	paths, err := multi.Subprojects(context.Background(), "/p")
	if err != nil {
		t.Fatalf("Subprojects failed: %v", err)
	}
	if strings.Join(paths, ",") != "/p/a,/p/b" {
		t.Errorf("Expected /p/a,/p/b, got %v", paths)
	}

	first.subprojectsFunc = func(ctx context.Context, path string) ([]string, error) {
		return nil, errors.New("error")
	}
	if _, err := multi.Subprojects(context.Background(), "/p"); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestMultiDiscoverer_AddDiscoverer(t *testing.T) {
	multi := NewMultiDiscoverer()

	if multi.Active("/project") {
		t.Error("Expected empty MultiDiscoverer to be inactive")
	}
	if multi.Name() != "MultiDiscoverer" {
		t.Errorf("Expected name 'MultiDiscoverer', got '%s'", multi.Name())
	}

	multi.AddDiscoverer(NewMockDiscoverer("gradle", nil, nil))

	if len(multi.GetDiscoverers()) != 1 {
		t.Errorf("Expected 1 discoverer, got %d", len(multi.GetDiscoverers()))
	}
	if !multi.Active("/project") {
		t.Error("Expected MultiDiscoverer to be active")
	}
}
