package anew

import "errors"

var (
	// ErrNoHome is returned when no home directory can be derived for the default store.
	ErrNoHome = errors.New("could not find or decode user home directory (try re-running with $HOME set)")

	ErrTemplateNotFound = errors.New("template does not exist")
	ErrEmptyFileSet     = errors.New("no files given for template")
	ErrInvalidName      = errors.New("invalid template name")
	ErrNoCommonAncestor = errors.New("source paths share no common ancestor")
	ErrSymlinkCycle     = errors.New("symbolic link cycle in template")
)
