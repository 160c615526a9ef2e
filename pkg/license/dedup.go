package license

import (
	"slices"
)

// Deduplicate removes dependencies that share a display name and license
// name sequence with an earlier one. The first occurrence is kept and the
// input order is preserved.
func Deduplicate(deps []Dependency) []Dependency {
	kept := make(map[string][][]string, len(deps))
	result := make([]Dependency, 0, len(deps))

	for _, dep := range deps {
		names := dep.LicenseNames()
		if slices.ContainsFunc(kept[dep.Name], func(seen []string) bool {
			return slices.Equal(seen, names)
		}) {
			continue
		}
		kept[dep.Name] = append(kept[dep.Name], names)
		result = append(result, dep)
	}

	return result
}
