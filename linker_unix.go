//go:build !windows

package anew

import "os"

type platformLinker struct{}

func (platformLinker) Link(source, target string) error {
	return os.Symlink(source, target)
}
