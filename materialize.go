package anew

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

type ProgressUpdate func(current, total int)

// Materializer performs the filesystem work of create and apply. Both
// directions are fail-fast and non-transactional: the first error is
// returned and whatever was already written stays on disk.
type Materializer struct {
	linker   Linker
	logger   *slog.Logger
	progress ProgressUpdate
}

func NewMaterializer(linker Linker, logger *slog.Logger) *Materializer {
	if linker == nil {
		linker = DefaultLinker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{linker: linker, logger: logger}
}

func (m *Materializer) SetProgressCallback(cb ProgressUpdate) { m.progress = cb }

func (m *Materializer) reportProgress(current, total int) {
	if m.progress != nil {
		m.progress(current, total)
	}
}

// Populate writes entries into templateDir. Directories are created empty in
// copy mode; their contents must appear as entries of their own. Links left
// by an earlier link-mode create are replaced, never written through.
func (m *Materializer) Populate(templateDir string, entries []Entry, mode Mode) (Summary, error) {
	var s Summary
	root, name := filepath.Dir(templateDir), filepath.Base(templateDir)
	for i, e := range entries {
		info, err := os.Stat(e.Source)
		if err != nil {
			return s, err
		}

		rel := e.Relative
		if rel == "." && !info.IsDir() {
			rel = filepath.Base(e.Source)
		}
		target := filepath.Join(templateDir, rel)
		inStore := filepath.Join(name, rel)

		if err := MkdirNoFollow(root, filepath.Dir(inStore)); err != nil {
			return s, err
		}

		switch {
		case mode == ModeLink:
			if err := m.linker.Link(e.Source, target); err != nil {
				return s, err
			}
			s.Linked = append(s.Linked, target)
		case info.IsDir():
			if err := MkdirNoFollow(root, inStore); err != nil {
				return s, err
			}
			s.Directories = append(s.Directories, target)
		default:
			if err := CopyFile(e.Source, target); err != nil {
				return s, err
			}
			s.Created = append(s.Created, target)
		}

		m.logger.Debug("placed template entry", "source", e.Source, "target", target, "mode", mode)
		m.reportProgress(i+1, len(entries))
	}
	return s, nil
}

// Expand copies the tree under templateDir into destination. Symbolic links
// are resolved and their content copied, so the result never contains links
// back into the template or its sources. Each directory is created before
// anything beneath it is written.
func (m *Materializer) Expand(templateDir, destination string) (Summary, error) {
	var s Summary

	root, err := filepath.EvalSymlinks(templateDir)
	if err != nil {
		return s, err
	}
	if err := os.MkdirAll(destination, 0755); err != nil {
		return s, err
	}

	w := &expandWalk{m: m, dest: destination, summary: &s, active: make(map[string]struct{})}
	err = w.dir(root, ".")
	return s, err
}

type expandWalk struct {
	m       *Materializer
	dest    string
	summary *Summary
	active  map[string]struct{}
	files   int
}

func (w *expandWalk) dir(src, rel string) error {
	if _, ok := w.active[src]; ok {
		return fmt.Errorf("%w: %s", ErrSymlinkCycle, src)
	}
	w.active[src] = struct{}{}
	defer delete(w.active, src)

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, e := range entries {
		entryRel := filepath.Join(rel, e.Name())
		resolved, err := filepath.EvalSymlinks(filepath.Join(src, e.Name()))
		if err != nil {
			return err
		}
		info, err := os.Stat(resolved)
		if err != nil {
			return err
		}

		target := filepath.Join(w.dest, entryRel)
		if info.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			w.summary.Directories = append(w.summary.Directories, target)
			if err := w.dir(resolved, entryRel); err != nil {
				return err
			}
			continue
		}

		_, statErr := os.Lstat(target)
		if err := CopyFile(resolved, target); err != nil {
			return err
		}
		if statErr == nil {
			w.summary.Overwritten = append(w.summary.Overwritten, target)
		} else {
			w.summary.Created = append(w.summary.Created, target)
		}

		w.files++
		w.m.logger.Debug("applied template file", "source", resolved, "target", target)
		w.m.reportProgress(w.files, 0)
	}
	return nil
}
