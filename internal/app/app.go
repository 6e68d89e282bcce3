package app

import (
	"fmt"
	"io"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/backplane/insort/cli"
	"github.com/backplane/insort/internal/logger"
	"github.com/backplane/insort/internal/nvim"
	"github.com/backplane/insort/internal/reconcile"
	"github.com/backplane/insort/internal/source"
	"github.com/backplane/insort/internal/ui"
)

// Version is set at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

// Streams are the process streams the app reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// App orchestrates one invocation.
type App struct {
	cfg        *cli.Config
	streams    Streams
	printer    *ui.Printer
	logger     *zap.Logger
	reconciler *reconcile.Reconciler
	reloader   *nvim.Reloader
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config, streams Streams) *App {
	log := logger.New(streams.Err, cfg.Verbose)
	printer := ui.NewPrinter(streams.Out, streams.Err)

	a := &App{
		cfg:     cfg,
		streams: streams,
		printer: printer,
		logger:  log,
	}
	a.reconciler = reconcile.New(a.confirm, a.warn, log)
	if !cfg.NoReload {
		a.reloader = nvim.NewReloader(nvim.Address(), log)
	}
	return a
}

// SetReloader replaces the editor reloader.
func (a *App) SetReloader(r *nvim.Reloader) {
	a.reloader = r
}

// Run executes the main application logic based on parsed flags.
func (a *App) Run() (err error) {
	// Centralized panic recovery to provide stack traces for unexpected errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()
	defer a.logger.Sync()

	if a.cfg.Version {
		fmt.Fprintf(a.streams.Out, "insort %s\n", Version)
		return nil
	}

	additions, err := a.collectAdditions()
	if err != nil {
		return err
	}

	outcome, err := a.reconciler.Reconcile(a.cfg.Filename, additions, a.cfg.Policy())
	if err != nil {
		return err
	}
	a.printer.Report(outcome)

	if outcome.Changed && a.reloader.Enabled() {
		if a.reloader.Reload(outcome.Path) {
			a.logger.Debug("reloaded nvim buffer", zap.String("path", outcome.Path))
		}
	}
	return nil
}

// collectAdditions gathers additions from the command line, then stdin, then
// the clipboard.
func (a *App) collectAdditions() ([]string, error) {
	additions := append([]string{}, a.cfg.Additions...)

	if a.cfg.Stdin {
		lines, err := source.Stdin(a.streams.In)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("read additions from stdin", zap.Int("count", len(lines)))
		additions = append(additions, lines...)
	}

	if a.cfg.Clipboard {
		lines, err := source.Clipboard()
		if err != nil {
			return nil, err
		}
		a.logger.Debug("read additions from clipboard", zap.Int("count", len(lines)))
		additions = append(additions, lines...)
	}
	return additions, nil
}

func (a *App) confirm(path string) (bool, error) {
	return ui.Confirm(a.streams.In, a.streams.Out, path)
}

func (a *App) warn(msg string) {
	a.printer.Warning("%s", msg)
}
