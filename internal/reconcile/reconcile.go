// Package reconcile merges additions into a line-oriented file, sorts and
// de-duplicates it, and rewrites the file only when its content changes.
package reconcile

import (
	"errors"
	iofs "io/fs"

	"go.uber.org/zap"

	"github.com/backplane/insort/internal/fs"
	"github.com/backplane/insort/internal/lineset"
	"github.com/backplane/insort/model"
)

// ErrNotFound matches every NotFoundError.
var ErrNotFound = errors.New("file not found")

const (
	reasonNotAllowed = "creation is not allowed"
	reasonDeclined   = "user declined creation"
)

// NotFoundError is returned when the target file is missing and the creation
// policy forbids or the user declines creating it.
type NotFoundError struct {
	Path   string
	Reason string
}

func (e *NotFoundError) Error() string {
	return "file not found and " + e.Reason
}

// Is lets errors.Is match both ErrNotFound and fs.ErrNotExist.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == iofs.ErrNotExist
}

// Confirmer asks whether a missing file may be created.
type Confirmer func(path string) (bool, error)

// Warner receives recoverable problems, such as an empty addition.
type Warner func(msg string)

// Reconciler performs one load, merge, normalize and persist cycle per call.
type Reconciler struct {
	confirm Confirmer
	warn    Warner
	logger  *zap.Logger
}

// New creates a Reconciler. A nil confirm declines every creation, a nil warn
// discards warnings and a nil logger logs nothing.
func New(confirm Confirmer, warn Warner, logger *zap.Logger) *Reconciler {
	if confirm == nil {
		confirm = func(string) (bool, error) { return false, nil }
	}
	if warn == nil {
		warn = func(string) {}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{confirm: confirm, warn: warn, logger: logger}
}

// Reconcile loads path, merges additions, normalizes the result and writes it
// back if it differs from what was loaded.
func (r *Reconciler) Reconcile(path string, additions []string, policy model.CreationPolicy) (model.Outcome, error) {
	log := r.logger.With(zap.String("path", path), zap.Stringer("policy", policy))

	original, missing, err := r.load(path, policy)
	if err != nil {
		return model.Outcome{}, err
	}
	log.Debug("loaded", zap.Int("lines", len(original)), zap.Bool("missing", missing))

	final := lineset.Normalize(lineset.Merge(original, additions, r.warn))
	outcome := model.Outcome{
		Path:     path,
		Original: original,
		Final:    final,
		Delta:    lineset.Delta(original, final),
	}

	if lineset.Equal(final, original) {
		log.Debug("unchanged")
		return outcome, nil
	}

	if err := fs.WriteFileAtomic(path, lineset.Format(final)); err != nil {
		return model.Outcome{}, err
	}
	outcome.Changed = true
	outcome.Created = missing
	log.Debug("written", zap.Int("lines", len(final)), zap.Int("delta", outcome.Delta))
	return outcome, nil
}

// load returns the original snapshot. missing is true when the file did not
// exist and the policy allowed starting from an empty snapshot.
func (r *Reconciler) load(path string, policy model.CreationPolicy) (lines []string, missing bool, err error) {
	content, err := fs.ReadFile(path)
	if err == nil {
		return lineset.Parse(content), false, nil
	}
	if !fs.IsNotExist(err) {
		return nil, false, err
	}

	switch policy {
	case model.AlwaysCreate:
		return []string{}, true, nil
	case model.NeverCreate:
		return nil, false, &NotFoundError{Path: path, Reason: reasonNotAllowed}
	default:
		ok, err := r.confirm(path)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, &NotFoundError{Path: path, Reason: reasonDeclined}
		}
		return []string{}, true, nil
	}
}
