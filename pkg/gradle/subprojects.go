package gradle

import (
	"context"
	"regexp"
	"strings"
)

const (
	subprojectsMarker = "subprojects: "
	projectDirMarker  = "projectDir"
	projectDirLabel   = "projectDir: "
)

// subprojectNoise matches everything removed from the subprojects line
// before the names are split on commas. Colons and the word "project" are
// removed from the names too.
var subprojectNoise = regexp.MustCompile(`\s|subprojects:|project|\[|\]|'|:`)

// Subprojects returns the root directories of the build's subprojects in
// the order Gradle reports them. A build without subprojects yields an
// empty slice and only one Gradle invocation.
func (g *Gradle) Subprojects(ctx context.Context) ([]string, error) {
	propertiesCommand := g.command + " properties"
	stdout, err := g.run(ctx, propertiesCommand, nil)
	if err != nil {
		return nil, err
	}

	names := ParseSubprojectNames(stdout)
	if len(names) == 0 {
		return []string{}, nil
	}
	g.logger.Debug().Strs("subprojects", names).Msg("found subprojects")

	tasks := make([]string, 0, len(names))
	for _, name := range names {
		tasks = append(tasks, ":"+name+":properties")
	}

	pathsCommand := g.command + " " + strings.Join(tasks, " ")
	stdout, err = g.run(ctx, pathsCommand, nil)
	if err != nil {
		return nil, err
	}

	return ParseProjectDirs(stdout), nil
}

// ParseSubprojectNames extracts subproject names from the output of the
// properties task
func ParseSubprojectNames(output string) []string {
	var b strings.Builder
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, subprojectsMarker) {
			b.WriteString(line)
		}
	}

	stripped := subprojectNoise.ReplaceAllString(b.String(), "")
	if stripped == "" {
		return nil
	}

	return trimTrailingEmpty(strings.Split(stripped, ","))
}

// ParseProjectDirs extracts one directory per projectDir line of the
// output of the :name:properties tasks
func ParseProjectDirs(output string) []string {
	var dirs []string
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, projectDirMarker) {
			continue
		}
		line = strings.TrimSuffix(line, "\r")
		dirs = append(dirs, strings.ReplaceAll(line, projectDirLabel, ""))
	}
	return dirs
}

func trimTrailingEmpty(parts []string) []string {
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
