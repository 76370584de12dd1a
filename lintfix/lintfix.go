package lintfix

import (
	"fmt"
	"runtime/debug"

	"github.com/sokinpui/lintfix/cli"
	"github.com/sokinpui/lintfix/internal/fs"
	"github.com/sokinpui/lintfix/internal/manifest"
	"github.com/sokinpui/lintfix/internal/runner"
	"github.com/sokinpui/lintfix/internal/source"
	"github.com/sokinpui/lintfix/model"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	pathResolver     *fs.PathResolver
	sourceProvider   *source.Provider
	progressCallback ProgressUpdate
	batchCallback    func(model.BatchReport)
	writeCallback    func(path, before, after string)
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	pathResolver, err := fs.NewPathResolver(cfg.Roots)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	return &App{
		cfg:            cfg,
		pathResolver:   pathResolver,
		sourceProvider: source.New(cfg),
	}, nil
}

// SetProgressCallback sets a function to be called after each batch with the
// number of finished batches.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SetBatchCallback sets a function to be called with each finished batch.
func (a *App) SetBatchCallback(cb func(model.BatchReport)) {
	a.batchCallback = cb
}

// SetWriteCallback sets a function to be called after each file write with
// the resolved path and the content before and after.
func (a *App) SetWriteCallback(cb func(path, before, after string)) {
	a.writeCallback = cb
}

// Root returns the directory relative target paths resolve against.
func (a *App) Root() string {
	return a.pathResolver.Root()
}

// Execute loads the manifest and runs its batches.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	data, name, err := a.sourceProvider.Manifest()
	if err != nil {
		return model.Summary{}, err
	}
	return a.run(data, name)
}

// Plan loads, filters and compiles a manifest without touching any file.
func (a *App) Plan(data []byte, name string) ([]runner.Batch, error) {
	m, err := manifest.Load(data, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", name, err)
	}
	m, err = m.Select(a.cfg.Batches)
	if err != nil {
		return nil, err
	}
	return m.Compile()
}

func (a *App) run(data []byte, name string) (model.Summary, error) {
	batches, err := a.Plan(data, name)
	if err != nil {
		return model.Summary{}, err
	}

	r := runner.New(a.pathResolver)
	total := len(batches)
	done := 0
	if a.progressCallback != nil {
		a.progressCallback(0, total)
	}
	r.OnBatch(func(report model.BatchReport) {
		done++
		if a.batchCallback != nil {
			a.batchCallback(report)
		}
		if a.progressCallback != nil {
			a.progressCallback(done, total)
		}
	})
	if a.writeCallback != nil {
		r.OnWrite(a.writeCallback)
	}

	summary, err := r.Run(batches)
	summary.Message = fmt.Sprintf("Applied %s to %s", name, fs.Relative(a.pathResolver.Root()))
	return summary, err
}
