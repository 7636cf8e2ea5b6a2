package anew

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"unicode/utf8"
)

type App struct {
	cfg          *Config
	store        *Store
	pathResolver *PathResolver
	materializer *Materializer
	logger       *slog.Logger
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }
func (e *DetailedError) Unwrap() error { return e.Err }

func NewApp(cfg *Config, logger *slog.Logger) (*App, error) {
	pr, err := NewPathResolver()
	if err != nil {
		return nil, err
	}
	return NewAppAt(cfg, pr, logger)
}

// NewAppAt builds an App whose relative paths resolve against pr.
func NewAppAt(cfg *Config, pr *PathResolver, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := LocateStore(cfg.StoreDir, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:          cfg,
		store:        store,
		pathResolver: pr,
		materializer: NewMaterializer(DefaultLinker(), logger),
		logger:       logger,
	}, nil
}

func (a *App) Store() *Store { return a.store }

func (a *App) PathResolver() *PathResolver { return a.pathResolver }

func (a *App) SetProgressCallback(cb ProgressUpdate) { a.materializer.SetProgressCallback(cb) }

// DefaultMode is the create mode used when --no-copy is not given.
func (a *App) DefaultMode() Mode {
	if a.cfg.NoCopy {
		return ModeLink
	}
	return ModeCopy
}

func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
	}
}

// Create stores sources, which must be absolute, as template name.
func (a *App) Create(name string, sources []string, mode Mode) (summary Summary, err error) {
	defer recoverPanic(&err)

	templateDir, err := a.store.Path(name)
	if err != nil {
		return Summary{}, err
	}
	if len(sources) == 0 {
		return Summary{}, ErrEmptyFileSet
	}

	relative, err := Normalize(a.pathResolver.WorkDir(), sources)
	if err != nil {
		return Summary{}, err
	}

	entries := make([]Entry, len(sources))
	for i := range sources {
		entries[i] = Entry{Source: sources[i], Relative: relative[i]}
	}

	a.logger.Debug("creating template", "name", name, "entries", len(entries), "mode", mode)
	summary, err = a.materializer.Populate(templateDir, entries, mode)
	if err != nil {
		return summary, err
	}
	summary.Message = fmt.Sprintf("Created template %s", name)
	return summary, nil
}

// Apply copies template name into destination. A missing template fails
// before destination is touched.
func (a *App) Apply(name, destination string) (summary Summary, err error) {
	defer recoverPanic(&err)

	templateDir, err := a.store.Path(name)
	if err != nil {
		return Summary{}, err
	}
	if !a.store.Exists(name) {
		return Summary{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	a.logger.Debug("applying template", "name", name, "destination", destination)
	summary, err = a.materializer.Expand(templateDir, a.pathResolver.Resolve(destination))
	if err != nil {
		return summary, err
	}
	summary.Message = fmt.Sprintf("Applied template %s", name)
	return summary, nil
}

// Remove deletes template name without following links inside it. It reports
// false, and no error, when there was nothing to remove.
func (a *App) Remove(name string) (bool, error) {
	templateDir, err := a.store.Path(name)
	if err != nil {
		return false, err
	}
	if !a.store.Exists(name) {
		return false, nil
	}
	if err := os.RemoveAll(templateDir); err != nil {
		return false, err
	}
	a.logger.Debug("removed template", "name", name)
	return true, nil
}

// Templates yields the names of the store's immediate subdirectories. Entries
// that are not directories are ignored; names that are not valid UTF-8 are
// skipped with a warning.
func (a *App) Templates() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(a.store.Dir)
		if err != nil {
			yield("", err)
			return
		}

		for _, e := range entries {
			name := e.Name()
			if !utf8.ValidString(name) {
				a.logger.Warn("skipping template with invalid unicode name", "name", fmt.Sprintf("%q", name), "store", a.store.Dir)
				continue
			}

			info, err := os.Stat(filepath.Join(a.store.Dir, name))
			if err != nil || !info.IsDir() {
				continue
			}

			if !yield(name, nil) {
				return
			}
		}
	}
}

func (a *App) List() ([]string, error) {
	var names []string
	for name, err := range a.Templates() {
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Info gathers the long-listing record for name.
func (a *App) Info(name string) (TemplateInfo, error) {
	dir, err := a.store.Path(name)
	if err != nil {
		return TemplateInfo{}, err
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return TemplateInfo{}, err
	}

	n, err := CountEntries(resolved)
	if err != nil {
		return TemplateInfo{}, err
	}

	desc, err := Describe(resolved)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		a.logger.Warn("could not read template description", "name", name, "error", err)
	}

	return TemplateInfo{Name: name, Dir: dir, Entries: n, Description: desc}, nil
}
