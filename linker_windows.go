//go:build windows

package anew

import (
	"fmt"
	"os"
)

// platformLinker relies on os.Symlink choosing a directory or file link from
// the target's type; creating either needs Developer Mode or elevation.
type platformLinker struct{}

func (platformLinker) Link(source, target string) error {
	if _, err := os.Stat(source); err != nil {
		return err
	}
	if err := os.Symlink(source, target); err != nil {
		return fmt.Errorf("%w (enable Developer Mode or run elevated to create symlinks)", err)
	}
	return nil
}
