package nvim

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	bufnr    int
	callErr  error
	commands []string
	calls    []string
	closed   bool
}

func (f *fakeClient) Call(fname string, result any, args ...any) error {
	f.calls = append(f.calls, fname)
	if f.callErr != nil {
		return f.callErr
	}
	*(result.(*int)) = f.bufnr
	return nil
}

func (f *fakeClient) Command(cmd string) error {
	f.commands = append(f.commands, cmd)
	return nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func dialerFor(c *fakeClient, addrs *[]string) Dialer {
	return func(addr string) (Client, error) {
		*addrs = append(*addrs, addr)
		return c, nil
	}
}

func TestAddress(t *testing.T) {
	t.Setenv("NVIM", "")
	t.Setenv("NVIM_LISTEN_ADDRESS", "")
	assert.Empty(t, Address())

	t.Setenv("NVIM_LISTEN_ADDRESS", "/tmp/old.sock")
	assert.Equal(t, "/tmp/old.sock", Address())

	t.Setenv("NVIM", "/tmp/new.sock")
	assert.Equal(t, "/tmp/new.sock", Address())
}

func TestReloadDisabled(t *testing.T) {
	var addrs []string
	r := NewReloaderWithDialer("", dialerFor(&fakeClient{}, &addrs), nil)

	assert.False(t, r.Enabled())
	assert.False(t, r.Reload("list.txt"))
	assert.Empty(t, addrs)

	var nilReloader *Reloader
	assert.False(t, nilReloader.Reload("list.txt"))
}

func TestReloadLoadedBuffer(t *testing.T) {
	client := &fakeClient{bufnr: 3}
	var addrs []string
	r := NewReloaderWithDialer("/tmp/nvim.sock", dialerFor(client, &addrs), nil)

	assert.True(t, r.Reload("list.txt"))
	assert.Equal(t, []string{"/tmp/nvim.sock"}, addrs)
	assert.Equal(t, []string{"bufnr"}, client.calls)
	assert.Equal(t, []string{"checktime 3"}, client.commands)
	assert.True(t, client.closed)
}

func TestReloadNoBuffer(t *testing.T) {
	client := &fakeClient{bufnr: -1}
	var addrs []string
	r := NewReloaderWithDialer("/tmp/nvim.sock", dialerFor(client, &addrs), nil)

	assert.False(t, r.Reload("list.txt"))
	assert.Empty(t, client.commands)
	assert.True(t, client.closed)
}

func TestReloadFailures(t *testing.T) {
	failing := func(string) (Client, error) { return nil, errors.New("connection refused") }
	assert.False(t, NewReloaderWithDialer("/tmp/nvim.sock", failing, nil).Reload("list.txt"))

	client := &fakeClient{callErr: errors.New("rpc error")}
	var addrs []string
	assert.False(t, NewReloaderWithDialer("/tmp/nvim.sock", dialerFor(client, &addrs), nil).Reload("list.txt"))
	assert.True(t, client.closed)
}

func TestReloadUnreachableSocket(t *testing.T) {
	addr := filepath.Join(t.TempDir(), "missing.sock")
	r := NewReloader(addr, nil)

	require.True(t, r.Enabled())
	assert.False(t, r.Reload("list.txt"))
}
