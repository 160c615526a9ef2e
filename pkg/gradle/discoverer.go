package gradle

import (
	"context"

	"lfgradle/pkg/discoverer"
	"lfgradle/pkg/license"
)

var _ discoverer.Discoverer = (*GradleDiscoverer)(nil)

// GradleDiscoverer discovers Gradle dependencies for any project path. A
// fresh Gradle adapter is created for every call.
type GradleDiscoverer struct {
	options Options
}

// NewGradleDiscoverer creates a new Gradle discoverer. The ProjectPath of
// opts is ignored and replaced with the path of each call.
func NewGradleDiscoverer(opts Options) *GradleDiscoverer {
	return &GradleDiscoverer{
		options: opts,
	}
}

// Name returns the name of this discoverer
func (d *GradleDiscoverer) Name() string {
	return "gradle"
}

// Project returns the Gradle adapter for path
func (d *GradleDiscoverer) Project(path string) *Gradle {
	opts := d.options
	opts.ProjectPath = path
	return New(opts)
}

// Active reports whether path contains a Gradle build file
func (d *GradleDiscoverer) Active(path string) bool {
	return d.Project(path).Active()
}

// Discover returns the dependencies of the Gradle project at path
func (d *GradleDiscoverer) Discover(ctx context.Context, path string) ([]license.Dependency, error) {
	return d.Project(path).CurrentPackages(ctx)
}

// Subprojects returns the subproject directories of the Gradle project at path
func (d *GradleDiscoverer) Subprojects(ctx context.Context, path string) ([]string, error) {
	return d.Project(path).Subprojects(ctx)
}
