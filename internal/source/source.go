// Package source reads candidate additions from places other than the
// command line.
package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/backplane/insort/internal/lineset"
)

// ClipboardReader returns the clipboard content. It is a variable so tests can
// run without a display.
var ClipboardReader = func() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("no clipboard utility available")
	}
	return clipboard.ReadAll()
}

// Stdin reads r to the end and returns its non-empty lines.
func Stdin(r io.Reader) ([]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	return lineset.Parse(string(content)), nil
}

// Clipboard returns the non-empty lines of the system clipboard.
func Clipboard() ([]string, error) {
	content, err := ClipboardReader()
	if err != nil {
		return nil, fmt.Errorf("failed to read from clipboard: %w", err)
	}
	return lineset.Parse(content), nil
}
