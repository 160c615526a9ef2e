package license

import (
	"strings"
)

// UnknownLicense is the license name used when a dependency declares none
const UnknownLicense = "unknown"

// License represents a single declared license of a dependency
type License struct {
	// Name is the license name exactly as reported
	Name string
	// URL is the license URL when the report carries one
	URL string
}

// Dependency represents one resolved dependency and its declared licenses
type Dependency struct {
	// ID is the raw identity string, usually group:artifact:version
	ID string
	// Name is the display name (artifact, or group:artifact)
	Name string
	// Group is the group segment of the identity, if any
	Group string
	// Version is the version segment of the identity, if any
	Version string
	// Licenses is never empty
	Licenses []License
}

// NewDependency creates a dependency, substituting the unknown license when
// no licenses are given
func NewDependency(id, name, group, version string, licenses []License) Dependency {
	if len(licenses) == 0 {
		licenses = []License{{Name: UnknownLicense}}
	}

	return Dependency{
		ID:       id,
		Name:     name,
		Group:    group,
		Version:  version,
		Licenses: licenses,
	}
}

// LicenseNames returns the license names in declaration order
func (d Dependency) LicenseNames() []string {
	names := make([]string, 0, len(d.Licenses))
	for _, l := range d.Licenses {
		names = append(names, l.Name)
	}
	return names
}

// String returns the display name followed by its licenses
func (d Dependency) String() string {
	return d.Name + " (" + strings.Join(d.LicenseNames(), ", ") + ")"
}
