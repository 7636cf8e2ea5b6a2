package anew

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type PathResolver struct {
	wd string
}

func NewPathResolver() (*PathResolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get current working directory: %w", err)
	}
	// Getwd may answer with $PWD, which keeps the links the shell followed.
	// Sources are canonical, so the working directory must be too.
	physical, err := filepath.EvalSymlinks(wd)
	if err != nil {
		return nil, fmt.Errorf("could not resolve working directory %s: %w", wd, err)
	}
	return NewPathResolverAt(physical), nil
}

func NewPathResolverAt(wd string) *PathResolver {
	return &PathResolver{wd: wd}
}

func (r *PathResolver) WorkDir() string { return r.wd }

func (r *PathResolver) Resolve(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return filepath.Clean(relativePath)
	}
	return filepath.Join(r.wd, relativePath)
}

// Canonicalize resolves path to an absolute path with every symlink evaluated.
// The path must exist.
func (r *PathResolver) Canonicalize(path string) (string, error) {
	return filepath.EvalSymlinks(r.Resolve(path))
}

// ExpandSources turns FILES arguments into the absolute source list create
// consumes. Patterns are globbed (with ** support) and canonicalized. In copy
// mode a directory is followed by its whole subtree, parents first, since the
// materializer never recurses on its own. Duplicates keep their first position.
func (r *PathResolver) ExpandSources(patterns []string, mode Mode) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, pattern := range patterns {
		matches, err := r.glob(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}

		for _, m := range matches {
			canonical, err := r.Canonicalize(m)
			if err != nil {
				return nil, fmt.Errorf("error opening file %s: %w", m, err)
			}

			info, err := os.Stat(canonical)
			if err != nil {
				return nil, err
			}
			if mode == ModeLink || !info.IsDir() {
				add(canonical)
				continue
			}

			err = filepath.WalkDir(canonical, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				add(path)
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (r *PathResolver) glob(pattern string) ([]string, error) {
	abs := r.Resolve(pattern)
	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := os.Lstat(abs); err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, err
		}
		return []string{abs}, nil
	}

	matches, err := doublestar.FilepathGlob(abs)
	if err != nil {
		return nil, fmt.Errorf("invalid path or glob pattern %q: %w", pattern, err)
	}
	return matches, nil
}

// CopyFile copies the bytes and permission bits of src to dst, replacing dst.
// A symbolic link at dst is removed first; its target is never written.
func CopyFile(src, dst string) error {
	if err := removeLink(dst); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}

// MkdirNoFollow creates root/rel one component at a time. Any symbolic link met
// below root is replaced by a real directory, so writes under rel stay inside
// root.
func MkdirNoFollow(root, rel string) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}

	p := root
	for _, part := range strings.Split(filepath.Clean(rel), string(filepath.Separator)) {
		if part == "." || part == "" {
			continue
		}
		p = filepath.Join(p, part)

		info, err := os.Lstat(p)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return err
		case info.Mode()&fs.ModeSymlink != 0:
			if err := os.Remove(p); err != nil {
				return err
			}
		case info.IsDir():
			continue
		}

		if err := os.Mkdir(p, 0755); err != nil {
			return err
		}
	}
	return nil
}

func removeLink(path string) error {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	return os.Remove(path)
}

func CountEntries(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir {
			n++
		}
		return nil
	})
	return n, err
}
