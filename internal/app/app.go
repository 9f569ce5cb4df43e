// Package app implements the application layer for jobsync.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grindlemire/graft"
	"go.trai.ch/jobsync/internal/adapters/linear" //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/notify" //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	stdout       io.Writer
	teaOptions   []tea.ProgramOption
	graftOptions []graft.Option
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithStdout sets where command results are written.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithGraftOptions adds options applied to every session graph,
// such as replacing the job API in tests.
func (a *App) WithGraftOptions(opts ...graft.Option) *App {
	a.graftOptions = append(a.graftOptions, opts...)
	return a
}

// Options are the settings shared by every command.
type Options struct {
	// ConfigPath selects the configuration file. Empty means discovery.
	ConfigPath string
	// JSON forces JSON log output.
	JSON bool
}

type jsonSwitch interface {
	SetJSON(enable bool)
}

// Open loads the configuration and builds a session from it.
// The caller must Close the session.
func (a *App) Open(ctx context.Context, opts Options) (*Session, error) {
	return a.open(ctx, opts)
}

func (a *App) open(ctx context.Context, opts Options, extra ...graft.Option) (*Session, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.JSON {
		cfg.Log.JSON = true
	}
	if sw, ok := a.logger.(jsonSwitch); ok {
		sw.SetJSON(cfg.Log.JSON)
	}

	graftOpts := append([]graft.Option{graft.PatchValue[*domain.Config](cfg)}, extra...)
	graftOpts = append(graftOpts, a.graftOptions...)
	session, _, err := graft.ExecuteFor[*Session](ctx, graftOpts...)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to start session")
	}
	return session, nil
}

func (a *App) renderer() *linear.Renderer {
	return linear.NewRenderer(a.stdout)
}

// run opens a session, runs fn and closes the session. Failures reported
// while fn runs are logged as warnings unless fn itself fails.
func (a *App) run(ctx context.Context, opts Options, fn func(*Session) error) (err error) {
	session, err := a.Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var (
		mu      sync.Mutex
		notices []string
	)
	unsubscribe := session.Reporter.Subscribe(func(n notify.Notice) {
		mu.Lock()
		defer mu.Unlock()
		notices = append(notices, n.Message)
	})
	err = fn(session)
	unsubscribe()

	if err == nil {
		mu.Lock()
		defer mu.Unlock()
		for _, msg := range notices {
			a.logger.Warn(msg)
		}
	}
	return err
}
