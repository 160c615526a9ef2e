package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lfgradle/pkg/gradle"
	"lfgradle/pkg/license"
	"lfgradle/pkg/scan"
)

var (
	rootStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	licenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// jsonResult is the JSON shape of one scanned root
type jsonResult struct {
	Root         string           `json:"root"`
	Paths        []string         `json:"paths"`
	Dependencies []jsonDependency `json:"dependencies"`
}

type jsonDependency struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Group    string        `json:"group,omitempty"`
	Version  string        `json:"version,omitempty"`
	Licenses []jsonLicense `json:"licenses"`
}

type jsonLicense struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func writeJSON(w io.Writer, results []scan.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, result := range results {
		jr := jsonResult{
			Root:         result.Root,
			Paths:        result.Paths,
			Dependencies: make([]jsonDependency, 0, len(result.Dependencies)),
		}
		for _, dep := range result.Dependencies {
			jd := jsonDependency{ID: dep.ID, Name: dep.Name, Group: dep.Group, Version: dep.Version}
			for _, l := range dep.Licenses {
				jd.Licenses = append(jd.Licenses, jsonLicense{Name: l.Name, URL: l.URL})
			}
			jr.Dependencies = append(jr.Dependencies, jd)
		}
		out = append(out, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func writeText(w io.Writer, results []scan.Result) {
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d dependencies)\n", rootStyle.Render(result.Root), len(result.Dependencies))
		if len(result.Dependencies) == 0 {
			fmt.Fprintln(w, "  No dependencies discovered.")
			continue
		}

		for _, dep := range result.Dependencies {
			name := dep.Name
			if name == "" {
				name = "(unnamed)"
			}
			line := "  - " + nameStyle.Render(name)
			if dep.Version != "" {
				line += " " + versionStyle.Render(dep.Version)
			}
			fmt.Fprintf(w, "%s: %s\n", line, renderLicenses(dep.Licenses))
		}
	}
}

func renderLicenses(licenses []license.License) string {
	rendered := make([]string, 0, len(licenses))
	for _, l := range licenses {
		if l.Name == license.UnknownLicense {
			rendered = append(rendered, unknownStyle.Render(l.Name))
			continue
		}
		rendered = append(rendered, licenseStyle.Render(l.Name))
	}
	return strings.Join(rendered, ", ")
}

type detectionRow struct {
	label string
	value string
}

func writeDetection(w io.Writer, g *gradle.Gradle, opts gradle.Options) {
	rows := []detectionRow{
		{"Project", g.ProjectPath()},
		{"Build file", g.BuildFile()},
		{"Active", fmt.Sprintf("%v", g.Active())},
		{"Command", g.Command()},
		{"Platform", opts.Platform.String()},
		{"Include groups", fmt.Sprintf("%v", opts.IncludeGroups)},
	}
	if finder, ok := opts.Finder.(*gradle.GlobReportFinder); ok {
		rows = append(rows, detectionRow{"Report pattern", finder.Pattern()})
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(row.label+":"), row.value)
	}
}
