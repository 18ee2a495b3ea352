package csfix

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"
)

// NvimNotifier tells the surrounding Neovim instance to re-read buffers whose
// files were rewritten on disk.
type NvimNotifier struct {
	v *nvim.Nvim
}

// NewNvimNotifier connects to the Neovim instance the tool was launched from.
// It returns nil without error when no instance is advertised in the
// environment.
func NewNvimNotifier() (*NvimNotifier, error) {
	addr := os.Getenv("NVIM")
	if addr == "" {
		addr = os.Getenv("NVIM_LISTEN_ADDRESS")
	}
	if addr == "" {
		return nil, nil
	}

	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("could not reach nvim at %s: %w", addr, err)
	}
	return &NvimNotifier{v: v}, nil
}

func (m *NvimNotifier) Close() {
	if m.v != nil {
		m.v.Close()
	}
}

// ReloadFiles issues a checktime per rewritten path so open buffers pick up
// the new content.
func (m *NvimNotifier) ReloadFiles(paths []string) error {
	b := m.v.NewBatch()
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		b.Command(fmt.Sprintf("checktime %s", absPath))
	}
	return b.Execute()
}
