// Package gradle discovers the dependencies and declared licenses of a
// Gradle build by driving Gradle and reading the license plugin's reports.
package gradle

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"lfgradle/pkg/license"
	"lfgradle/pkg/shell"
)

// downloadLicensesTask generates the dependency-license.xml reports
const downloadLicensesTask = "downloadLicenses"

// Options configures a Gradle project adapter
type Options struct {
	// ProjectPath is the root directory of the Gradle build (required)
	ProjectPath string
	// Command overrides the Gradle command; empty selects wrapper or system gradle
	Command string
	// IncludeGroups qualifies dependency names with their group id
	IncludeGroups bool
	// Platform selects platform-specific executable names
	Platform Platform
	// Executor runs Gradle; defaults to a shell executor
	Executor shell.Executor
	// Finder locates generated reports; defaults to a GlobReportFinder
	Finder ReportFinder
	// Logger receives progress events; nil discards them
	Logger *zerolog.Logger
}

// Gradle discovers dependencies of one Gradle project
type Gradle struct {
	projectPath   string
	command       string
	includeGroups bool
	platform      Platform
	executor      shell.Executor
	finder        ReportFinder
	logger        zerolog.Logger
}

// New creates a Gradle adapter for the project described by opts
func New(opts Options) *Gradle {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("package_manager", "gradle").Str("project", opts.ProjectPath).Logger()
	}

	executor := opts.Executor
	if executor == nil {
		executor = shell.NewShellExecutor(logger)
	}

	finder := opts.Finder
	if finder == nil {
		finder = NewGlobReportFinder("")
	}

	g := &Gradle{
		projectPath:   opts.ProjectPath,
		includeGroups: opts.IncludeGroups,
		platform:      opts.Platform,
		executor:      executor,
		finder:        finder,
		logger:        logger,
	}
	g.command = Command(opts.ProjectPath, opts.Command, opts.Platform)

	return g
}

// ProjectPath returns the project root directory
func (g *Gradle) ProjectPath() string {
	return g.projectPath
}

// Command returns the resolved Gradle command
func (g *Gradle) Command() string {
	return g.command
}

// BuildFile returns the build file that decides whether the project is a
// Gradle project
func (g *Gradle) BuildFile() string {
	return BuildFile(g.projectPath)
}

// Active reports whether the project's build file exists
func (g *Gradle) Active() bool {
	_, err := os.Stat(g.BuildFile())
	return err == nil
}

// CurrentPackages runs the license report task and returns the
// deduplicated dependencies of every generated report
func (g *Gradle) CurrentPackages(ctx context.Context) ([]license.Dependency, error) {
	command := g.command + " " + downloadLicensesTask
	if _, err := g.run(ctx, command, map[string]string{"TERM": "dumb"}); err != nil {
		return nil, err
	}

	reports, err := g.finder.Find(g.projectPath)
	if err != nil {
		return nil, err
	}
	g.logger.Debug().Strs("reports", reports).Msg("found license reports")

	var deps []license.Dependency
	for _, report := range reports {
		reportDeps, err := ParseReportFile(report, g.includeGroups)
		if err != nil {
			return nil, err
		}
		deps = append(deps, reportDeps...)
	}

	unique := license.Deduplicate(deps)
	g.logger.Info().
		Int("reports", len(reports)).
		Int("dependencies", len(unique)).
		Int("duplicates", len(deps)-len(unique)).
		Msg("collected dependencies")

	return unique, nil
}

// run executes command in the project root, turning unsuccessful runs into
// a CommandError
func (g *Gradle) run(ctx context.Context, command string, env map[string]string) (string, error) {
	start := time.Now()
	result, err := g.executor.Run(ctx, g.projectPath, command, env)
	if err != nil {
		return "", &CommandError{Command: command, Err: err}
	}
	if !result.Success {
		g.logger.Error().Str("command", command).Int("exit_code", result.ExitCode).Msg("gradle command failed")
		return "", &CommandError{Command: command, Stderr: result.Stderr}
	}

	g.logger.Debug().Str("command", command).Dur("duration", time.Since(start)).Msg("gradle command succeeded")
	return result.Stdout, nil
}
