package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"lfgradle/pkg/config"
	"lfgradle/pkg/discoverer"
	"lfgradle/pkg/gradle"
	"lfgradle/pkg/scan"
	"lfgradle/pkg/shell"
)

const version = "1.0.0"

type CLI struct {
	Version       kong.VersionFlag `short:"v" help:"Show version information"`
	LogLevel      string           `help:"Log level" default:"warn" enum:"debug,info,warn,error"`
	GradleCommand string           `help:"Gradle command to run instead of the wrapper or system gradle"`
	IncludeGroups bool             `help:"Qualify dependency names with their group id"`

	Scan        ScanCmd        `cmd:"" help:"List dependencies and licenses of Gradle projects"`
	Subprojects SubprojectsCmd `cmd:"" help:"List the subproject directories of a Gradle project"`
	Detect      DetectCmd      `cmd:"" help:"Show how a directory would be scanned"`
}

type ScanCmd struct {
	Directories []string `arg:"" optional:"" help:"Project directories to scan (defaults to current directory)"`
	Recursive   bool     `short:"r" help:"Also scan every subproject reported by Gradle"`
	Parallel    int      `short:"j" help:"Number of project roots scanned in parallel" default:"1"`
	Format      string   `short:"f" help:"Output format" default:"text" enum:"text,json"`
}

type SubprojectsCmd struct {
	Directory string `arg:"" optional:"" help:"Project directory (defaults to current directory)"`
}

type DetectCmd struct {
	Directory string `arg:"" optional:"" help:"Project directory (defaults to current directory)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lfgradle"),
		kong.Description("Discover Gradle dependencies and their declared licenses."),
		kong.Vars{"version": "lfgradle version " + version},
	)

	if err := ctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (cmd *ScanCmd) Run(cli *CLI) error {
	logger, err := newLogger(cli.LogLevel)
	if err != nil {
		return err
	}

	directories := cmd.Directories
	if len(directories) == 0 {
		directories = []string{""}
	}

	var roots []string
	for _, dir := range directories {
		absDir, err := resolveDirectory(dir)
		if err != nil {
			return err
		}
		roots = append(roots, absDir)
	}

	source := newConfiguredSource(cli, logger)
	runner := scan.NewRunner(source, cmd.Recursive, logger)

	progressCallback := func(root string, status string, finished bool) {
		logger.Info().Str("root", root).Str("status", status).Bool("finished", finished).Msg("scan progress")
	}

	results, err := runner.ExecuteWithProgressParallel(context.Background(), roots, progressCallback, cmd.Parallel)
	if err != nil {
		return err
	}

	if cmd.Format == "json" {
		return writeJSON(os.Stdout, results)
	}
	writeText(os.Stdout, results)
	return nil
}

func (cmd *SubprojectsCmd) Run(cli *CLI) error {
	logger, err := newLogger(cli.LogLevel)
	if err != nil {
		return err
	}

	absDir, err := resolveDirectory(cmd.Directory)
	if err != nil {
		return err
	}

	paths, err := newConfiguredSource(cli, logger).Subprojects(context.Background(), absDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Println(path)
	}
	return nil
}

func (cmd *DetectCmd) Run(cli *CLI) error {
	logger, err := newLogger(cli.LogLevel)
	if err != nil {
		return err
	}

	absDir, err := resolveDirectory(cmd.Directory)
	if err != nil {
		return err
	}

	opts, err := newConfiguredSource(cli, logger).options(absDir)
	if err != nil {
		return err
	}

	writeDetection(os.Stdout, gradle.New(opts), opts)
	return nil
}

// configuredSource builds a Gradle discoverer for every path from the
// command line flags and the .lfgradle.yml files above that path. Flags
// win over configuration files.
type configuredSource struct {
	cli      *CLI
	logger   zerolog.Logger
	executor shell.Executor
	platform gradle.Platform
}

func newConfiguredSource(cli *CLI, logger zerolog.Logger) *configuredSource {
	return &configuredSource{
		cli:      cli,
		logger:   logger,
		executor: shell.NewShellExecutor(logger),
		platform: gradle.CurrentPlatform(),
	}
}

// options resolves the Gradle options for path
func (s *configuredSource) options(path string) (gradle.Options, error) {
	cfg, err := config.LoadConfiguration(path)
	if err != nil {
		return gradle.Options{}, err
	}
	if len(cfg.Files) > 0 {
		s.logger.Debug().Strs("files", cfg.Files).Str("path", path).Msg("loaded configuration")
	}

	command := s.cli.GradleCommand
	if command == "" {
		command = cfg.Gradle.GetCommand()
	}

	return gradle.Options{
		ProjectPath:   path,
		Command:       command,
		IncludeGroups: s.cli.IncludeGroups || cfg.Gradle.GetIncludeGroups(),
		Platform:      s.platform,
		Executor:      s.executor,
		Finder:        gradle.NewGlobReportFinder(cfg.Gradle.GetReportPattern()),
		Logger:        &s.logger,
	}, nil
}

func (s *configuredSource) discoverer(path string) (*discoverer.MultiDiscoverer, error) {
	opts, err := s.options(path)
	if err != nil {
		return nil, err
	}
	return discoverer.NewMultiDiscoverer(gradle.NewGradleDiscoverer(opts)), nil
}

// Discover implements scan.Source
func (s *configuredSource) Discover(ctx context.Context, path string) (*discoverer.DiscoveryResult, error) {
	d, err := s.discoverer(path)
	if err != nil {
		return nil, err
	}
	return d.Discover(ctx, path)
}

// Subprojects implements scan.Source
func (s *configuredSource) Subprojects(ctx context.Context, path string) ([]string, error) {
	d, err := s.discoverer(path)
	if err != nil {
		return nil, err
	}
	return d.Subprojects(ctx, path)
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger(), nil
}

// resolveDirectory returns the absolute path of dir, defaulting to the
// current directory
func resolveDirectory(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absDir, nil
}
