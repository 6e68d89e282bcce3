// Package insort exposes the sort-and-insert operation for use as a library.
package insort

import (
	"go.uber.org/zap"

	"github.com/backplane/insort/internal/reconcile"
	"github.com/backplane/insort/model"
)

// ErrNotFound is matched by errors returned when the file is missing and may
// not be created.
var ErrNotFound = reconcile.ErrNotFound

// Config for using insort as a library.
type Config struct {
	// Policy for a missing file. The zero value is model.Prompt.
	Policy model.CreationPolicy
	// Confirm is asked under model.Prompt. Nil declines.
	Confirm func(path string) (bool, error)
	// Warn receives recoverable problems such as empty additions. Nil discards them.
	Warn func(msg string)
	// Logger for debug output. Nil disables logging.
	Logger *zap.Logger
}

// Apply merges additions into the file at path, sorts and de-duplicates it,
// and rewrites it only if the content changed.
func Apply(path string, additions []string, config Config) (model.Outcome, error) {
	return reconcile.New(config.Confirm, config.Warn, config.Logger).Reconcile(path, additions, config.Policy)
}
