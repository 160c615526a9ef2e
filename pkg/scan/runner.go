// Package scan discovers the dependencies of several project roots.
package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"lfgradle/pkg/discoverer"
	"lfgradle/pkg/license"
)

// Source discovers dependencies and subprojects of a project path
type Source interface {
	Discover(ctx context.Context, path string) (*discoverer.DiscoveryResult, error)
	Subprojects(ctx context.Context, path string) ([]string, error)
}

// Result represents the dependencies found below one root
type Result struct {
	// Root is the project root as given to the runner
	Root string
	// Paths are the project paths that were scanned, root first
	Paths []string
	// Dependencies are deduplicated across all paths of the root
	Dependencies []license.Dependency
}

// ProgressCallback is called when the scan status of a root changes
type ProgressCallback func(root string, status string, finished bool)

// Runner scans project roots
type Runner struct {
	source    Source
	recursive bool
	logger    zerolog.Logger
}

// NewRunner creates a new runner. With recursive set, the subprojects of
// every root are scanned after the root itself.
func NewRunner(source Source, recursive bool, logger zerolog.Logger) *Runner {
	return &Runner{
		source:    source,
		recursive: recursive,
		logger:    logger,
	}
}

// Execute scans all roots sequentially
func (r *Runner) Execute(ctx context.Context, roots []string) ([]Result, error) {
	return r.ExecuteWithProgressParallel(ctx, roots, nil, 1)
}

// ExecuteWithProgressParallel scans roots using parallel workers. Results
// are returned in the order of roots. The paths of a single root are always
// scanned by one worker, one after another. The first failure stops the
// scan and is returned without results.
func (r *Runner) ExecuteWithProgressParallel(ctx context.Context, roots []string, progressCallback ProgressCallback, parallelWorkers int) ([]Result, error) {
	if parallelWorkers < 1 {
		parallelWorkers = 1
	}
	if parallelWorkers > len(roots) {
		parallelWorkers = len(roots)
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	rootQueue := make(chan int, len(roots))
	for i := range roots {
		rootQueue <- i
	}
	close(rootQueue)

	results := make([]Result, len(roots))
	errorChan := make(chan error, parallelWorkers)

	var progressMu sync.Mutex
	notify := func(root, status string, finished bool) {
		if progressCallback == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		progressCallback(root, status, finished)
	}

	var wg sync.WaitGroup
	for w := 0; w < parallelWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rootQueue {
				if ctx.Err() != nil {
					return
				}

				notify(roots[i], "running", false)
				result, err := r.scanRoot(ctx, roots[i])
				if err != nil {
					notify(roots[i], "failed", true)
					errorChan <- fmt.Errorf("failed to scan %s: %w", roots[i], err)
					cancel()
					return
				}
				results[i] = result
				notify(roots[i], "completed", true)
			}
		}()
	}

	wg.Wait()
	close(errorChan)

	if err, ok := <-errorChan; ok {
		return nil, err
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// scanRoot scans root and, in recursive mode, its subprojects
func (r *Runner) scanRoot(ctx context.Context, root string) (Result, error) {
	paths := []string{root}
	if r.recursive {
		subprojects, err := r.source.Subprojects(ctx, root)
		if err != nil {
			return Result{}, err
		}
		for _, path := range subprojects {
			if path != root {
				paths = append(paths, path)
			}
		}
	}

	var all []license.Dependency
	for _, path := range paths {
		result, err := r.source.Discover(ctx, path)
		if err != nil {
			return Result{}, err
		}
		r.logger.Debug().Str("path", path).Int("dependencies", len(result.Dependencies)).Msg("scanned project")
		all = append(all, result.Dependencies...)
	}

	return Result{
		Root:         root,
		Paths:        paths,
		Dependencies: license.Deduplicate(all),
	}, nil
}
