package anew

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"
)

// NvimAddress returns the listen address of the Neovim instance this process
// runs under, if any.
func NvimAddress() string {
	if addr := os.Getenv("NVIM"); addr != "" {
		return addr
	}
	return os.Getenv("NVIM_LISTEN_ADDRESS")
}

type NvimManager struct {
	v *nvim.Nvim
}

func NewNvimManager(addr string) (*NvimManager, error) {
	if addr == "" {
		return nil, fmt.Errorf("no neovim address")
	}
	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, err
	}
	return &NvimManager{v: v}, nil
}

func (m *NvimManager) Close() {
	if m.v != nil {
		m.v.Close()
	}
}

// ReloadBuffers runs :checktime on every loaded buffer showing one of paths
// and returns the paths that were reloaded.
func (m *NvimManager) ReloadBuffers(paths []string) (reloaded []string) {
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			continue
		}

		var bufnr int
		if err := m.v.Call("bufnr", &bufnr, absPath); err != nil || bufnr <= 0 {
			continue
		}

		var loaded int
		if err := m.v.Call("bufloaded", &loaded, bufnr); err != nil || loaded == 0 {
			continue
		}

		if err := m.v.Command(fmt.Sprintf("checktime %d", bufnr)); err == nil {
			reloaded = append(reloaded, absPath)
		}
	}
	return reloaded
}

// ReloadOverwritten reloads buffers for files an apply replaced in the
// surrounding Neovim. Connection failures are logged and ignored.
func ReloadOverwritten(s Summary, logger *slog.Logger) {
	addr := NvimAddress()
	if addr == "" || len(s.Overwritten) == 0 {
		return
	}

	m, err := NewNvimManager(addr)
	if err != nil {
		logger.Debug("could not connect to neovim", "addr", addr, "error", err)
		return
	}
	defer m.Close()

	reloaded := m.ReloadBuffers(s.Overwritten)
	logger.Debug("reloaded neovim buffers", "count", len(reloaded))
}
