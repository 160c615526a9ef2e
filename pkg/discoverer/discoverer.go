package discoverer

import (
	"context"
	"fmt"

	"lfgradle/pkg/license"
)

// DiscoveryResult represents the dependencies discovered for a path
type DiscoveryResult struct {
	// Dependencies contains the deduplicated dependencies
	Dependencies []license.Dependency
	// Discoverers names the discoverers that were active for the path
	Discoverers []string
	// Path is the path that was scanned
	Path string
}

// Discoverer is an interface for discovering dependencies of one package
// manager in a project directory
type Discoverer interface {
	// Name returns a human-readable name for this discoverer
	Name() string

	// Active reports whether the discoverer applies to the project at path
	Active(path string) bool

	// Discover runs the package manager for the project at path and returns
	// its dependencies
	Discover(ctx context.Context, path string) ([]license.Dependency, error)

	// Subprojects returns the directories of nested projects managed by the
	// project at path
	Subprojects(ctx context.Context, path string) ([]string, error)
}

// MultiDiscoverer combines multiple discoverers and runs every active one
type MultiDiscoverer struct {
	discoverers []Discoverer
}

// NewMultiDiscoverer creates a new MultiDiscoverer with the given discoverers
func NewMultiDiscoverer(discoverers ...Discoverer) *MultiDiscoverer {
	return &MultiDiscoverer{
		discoverers: discoverers,
	}
}

// Discover runs each active discoverer in order and combines the results.
// The first failure aborts discovery; no partial result is returned.
func (m *MultiDiscoverer) Discover(ctx context.Context, path string) (*DiscoveryResult, error) {
	result := &DiscoveryResult{
		Path: path,
	}

	var all []license.Dependency
	for _, discoverer := range m.discoverers {
		if !discoverer.Active(path) {
			continue
		}

		deps, err := discoverer.Discover(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%s failed for %s: %w", discoverer.Name(), path, err)
		}

		all = append(all, deps...)
		result.Discoverers = append(result.Discoverers, discoverer.Name())
	}

	result.Dependencies = license.Deduplicate(all)
	return result, nil
}

// Active reports whether any discoverer applies to path
func (m *MultiDiscoverer) Active(path string) bool {
	for _, discoverer := range m.discoverers {
		if discoverer.Active(path) {
			return true
		}
	}
	return false
}

// Subprojects combines the subprojects reported by every active discoverer
func (m *MultiDiscoverer) Subprojects(ctx context.Context, path string) ([]string, error) {
	var all []string
	for _, discoverer := range m.discoverers {
		if !discoverer.Active(path) {
			continue
		}

		paths, err := discoverer.Subprojects(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%s failed to list subprojects of %s: %w", discoverer.Name(), path, err)
		}
		all = append(all, paths...)
	}
	return all, nil
}

// Name returns the name of the MultiDiscoverer
func (m *MultiDiscoverer) Name() string {
	return "MultiDiscoverer"
}

// AddDiscoverer adds a new discoverer to the chain
func (m *MultiDiscoverer) AddDiscoverer(discoverer Discoverer) {
	m.discoverers = append(m.discoverers, discoverer)
}

// GetDiscoverers returns all registered discoverers
func (m *MultiDiscoverer) GetDiscoverers() []Discoverer {
	return m.discoverers
}
