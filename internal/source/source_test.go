package source

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdin(t *testing.T) {
	lines, err := Stdin(strings.NewReader("b\n\na\r\nc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, lines)
}

func TestStdinEmpty(t *testing.T) {
	lines, err := Stdin(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStdinError(t *testing.T) {
	_, err := Stdin(iotest.ErrReader(errors.New("broken pipe")))
	assert.ErrorContains(t, err, "failed to read from stdin: broken pipe")
}

func stubClipboard(t *testing.T, content string, err error) {
	t.Helper()
	orig := ClipboardReader
	ClipboardReader = func() (string, error) { return content, err }
	t.Cleanup(func() { ClipboardReader = orig })
}

func TestClipboard(t *testing.T) {
	stubClipboard(t, "x\ny\n\n", nil)

	lines, err := Clipboard()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, lines)
}

func TestClipboardError(t *testing.T) {
	stubClipboard(t, "", errors.New("no display"))

	_, err := Clipboard()
	assert.ErrorContains(t, err, "failed to read from clipboard: no display")
}
