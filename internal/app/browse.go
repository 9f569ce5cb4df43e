package app

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/jobsync/internal/adapters/notify"    //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/adapters/tui"       //nolint:depguard // Wired in app layer
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/jobsync/internal/state"
	"golang.org/x/sync/errgroup"
)

// Browse runs the interactive job browser until the user quits or ctx is done.
func (a *App) Browse(ctx context.Context, opts Options) error {
	pump := tui.NewPump()

	// Requests made by the session are shown in the status line.
	provider := telemetry.NewProvider(pump)
	setupOTel(provider)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracerFrom(provider, telemetry.InstrumentationName)

	session, err := a.open(ctx, opts, graft.PatchValue[ports.Tracer](tracer))
	if err != nil {
		return err
	}
	defer func() {
		_ = session.Close()
	}()

	controller := &browseController{ctx: ctx, session: session, pump: pump}
	model := tui.NewModel(os.Stderr, controller)

	optsTea := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, a.teaOptions...)
	program := tea.NewProgram(model, optsTea...)

	for _, unsubscribe := range subscribeSession(session, pump) {
		defer unsubscribe()
	}

	session.Init(ctx)
	if err := session.WatchBookmarks(ctx, func(err error) { pump.Send(noticeFor(err)) }); err != nil {
		pump.Send(noticeFor(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pump.Run(gctx, program)
		return nil
	})
	g.Go(func() error {
		defer pump.Close()
		_, err := program.Run()
		// A cancelled context ends the browser like quitting does.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}

// subscribeSession forwards every scope change and reported failure to the
// program, starting with the current state of each scope.
func subscribeSession(s *Session, pump *tui.Pump) []func() {
	scopes := s.Scopes
	pump.Send(tui.MsgSearchText{State: scopes.SearchText.State()})
	pump.Send(tui.MsgJobItems{State: scopes.JobItems.State()})
	pump.Send(tui.MsgActive{State: scopes.ActiveID.State()})
	pump.Send(tui.MsgBookmarks{State: scopes.Bookmarks.State()})

	return []func(){
		scopes.SearchText.Subscribe(func(st state.SearchTextState) {
			pump.Send(tui.MsgSearchText{State: st})
		}),
		scopes.JobItems.Subscribe(func(st state.JobItemsState) {
			pump.Send(tui.MsgJobItems{State: st})
		}),
		scopes.ActiveID.Subscribe(func(st state.ActiveItem) {
			pump.Send(tui.MsgActive{State: st})
		}),
		scopes.Bookmarks.Subscribe(func(st state.BookmarksState) {
			pump.Send(tui.MsgBookmarks{State: st})
		}),
		s.Reporter.Subscribe(func(n notify.Notice) {
			pump.Send(tui.MsgNotice{Notice: n})
		}),
	}
}

// noticeFor shows a failure that did not come from a query.
func noticeFor(err error) tui.MsgNotice {
	return tui.MsgNotice{Notice: notify.Notice{Message: domain.UserMessage(err), Err: err, At: time.Now()}}
}

// setupOTel registers provider as the global tracer provider.
func setupOTel(provider *sdktrace.TracerProvider) {
	otel.SetTracerProvider(provider)
}

// browseController applies the browser's actions to a session.
type browseController struct {
	ctx     context.Context
	session *Session
	pump    *tui.Pump
}

func (c *browseController) Search(text string) {
	c.session.Scopes.SearchText.OnInputChange(text)
}

func (c *browseController) Select(id int) {
	c.session.History.Navigate(domain.FragmentFor(id))
}

func (c *browseController) Back() {
	c.session.History.Back()
}

func (c *browseController) ToggleBookmark(id int) {
	if _, err := c.session.Scopes.Bookmarks.Toggle(c.ctx, id); err != nil {
		c.pump.Send(noticeFor(err))
	}
}

func (c *browseController) Refresh() {
	c.session.Scopes.JobItems.Refresh()
	c.session.Scopes.ActiveID.Refresh()
}

func (c *browseController) SetSort(by domain.SortBy) {
	c.session.Scopes.JobItems.SetSort(by)
}

func (c *browseController) NextPage() {
	c.session.Scopes.JobItems.NextPage()
}

func (c *browseController) PreviousPage() {
	c.session.Scopes.JobItems.PreviousPage()
}
