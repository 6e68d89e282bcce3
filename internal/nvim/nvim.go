// Package nvim tells a running Neovim instance to re-read files that insort
// rewrote, so open buffers do not go stale.
package nvim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neovim/go-client/nvim"
	"go.uber.org/zap"
)

// Client is the subset of *nvim.Nvim used by Reloader.
type Client interface {
	Call(fname string, result any, args ...any) error
	Command(cmd string) error
	Close() error
}

// Dialer connects to a Neovim instance at addr.
type Dialer func(addr string) (Client, error)

func dial(addr string) (Client, error) {
	return nvim.Dial(addr)
}

// Address returns the RPC address of the surrounding Neovim session, if any.
// NVIM is set inside :terminal buffers; NVIM_LISTEN_ADDRESS is the older name.
func Address() string {
	if addr := os.Getenv("NVIM"); addr != "" {
		return addr
	}
	return os.Getenv("NVIM_LISTEN_ADDRESS")
}

// Reloader refreshes buffers after their file changed on disk.
type Reloader struct {
	addr   string
	dial   Dialer
	logger *zap.Logger
}

// NewReloader creates a Reloader for addr. An empty addr disables it.
func NewReloader(addr string, logger *zap.Logger) *Reloader {
	return NewReloaderWithDialer(addr, dial, logger)
}

// NewReloaderWithDialer is NewReloader with a custom connection function.
func NewReloaderWithDialer(addr string, d Dialer, logger *zap.Logger) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reloader{addr: addr, dial: d, logger: logger}
}

// Enabled reports whether there is an instance to talk to.
func (r *Reloader) Enabled() bool {
	return r != nil && r.addr != ""
}

// Reload runs :checktime for the buffer holding path, if one is loaded. It
// reports whether a buffer was refreshed. Errors are logged and otherwise
// ignored, since the file itself is already written.
func (r *Reloader) Reload(path string) bool {
	if !r.Enabled() {
		return false
	}
	log := r.logger.With(zap.String("nvim", r.addr), zap.String("path", path))

	if err := r.reload(path); err != nil {
		log.Debug("buffer reload failed", zap.Error(err))
		return false
	}
	return true
}

func (r *Reloader) reload(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	client, err := r.dial(r.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to nvim: %w", err)
	}
	defer client.Close()

	var bufnr int
	if err := client.Call("bufnr", &bufnr, absPath); err != nil {
		return err
	}
	if bufnr < 0 {
		return fmt.Errorf("no buffer for %s", absPath)
	}
	return client.Command(fmt.Sprintf("checktime %d", bufnr))
}
