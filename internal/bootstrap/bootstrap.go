package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	sessioninadapter "mapty/internal/modules/session/adapter/in"
	sessionoutadapter "mapty/internal/modules/session/adapter/out"
	sessionout "mapty/internal/modules/session/port/out"
	sessionusecase "mapty/internal/modules/session/usecase"
	workoutinadapter "mapty/internal/modules/workout/adapter/in"
	workoutoutadapter "mapty/internal/modules/workout/adapter/out"
	workoutout "mapty/internal/modules/workout/port/out"
	workoutservice "mapty/internal/modules/workout/service"
	workoutusecase "mapty/internal/modules/workout/usecase"
	"mapty/internal/platform/clock"
	"mapty/internal/platform/config"
	"mapty/internal/platform/id"
	"mapty/internal/platform/logging"
	"mapty/internal/platform/metrics"
	uiapp "mapty/internal/ui/app"
	"mapty/internal/ui/components"
)

type Options struct {
	// Headless replaces the on-screen form and status line with a recording
	// form and a log-backed notifier.
	Headless bool
	// LogOutput receives logs when no log file is configured.
	LogOutput io.Writer
}

type App struct {
	Config   config.Config
	Logger   hclog.Logger
	Registry *prometheus.Registry

	SessionCLI sessioninadapter.CLIHandler
	SessionTUI sessioninadapter.TUIHandler
	WorkoutTUI workoutinadapter.TUIHandler

	Surface *sessionoutadapter.TerminalSurface
	Form    *components.WorkoutForm
	Status  *components.StatusLine

	closers []io.Closer
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.New(cfg.LogLevel, cfg.LogFile, opts.LogOutput)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	sessionMetrics := metrics.NewSession(app.Registry)

	store, err := newWorkoutStore(ctx, cfg.Store)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}
	logger.Debug("workout store ready", "store", cfg.Store)

	workoutUC := workoutusecase.NewInteractor(workoutservice.NewWorkoutService(clock.SystemClock{}, id.TimeOrdered{}, store))

	var locator sessionout.Locator = sessionoutadapter.NewUnknownLocator()
	if cfg.Home != nil {
		locator = sessionoutadapter.NewStaticLocator(cfg.Home.Lat, cfg.Home.Lng)
	}
	app.Surface = sessionoutadapter.NewTerminalSurface(locator)

	var (
		form     sessionout.Form
		notifier sessionout.Notifier
	)
	if opts.Headless {
		form = &sessionoutadapter.HeadlessForm{}
		notifier = sessionoutadapter.NewLogNotifier(logger)
	} else {
		app.Form = components.NewWorkoutForm()
		app.Status = components.NewStatusLine("Locating…")
		form = app.Form
		notifier = app.Status
	}

	controller := sessionusecase.NewController(workoutUC, app.Surface, form, notifier, sessionusecase.Options{
		Zoom:          cfg.Zoom,
		LocateTimeout: cfg.LocateTimeout,
		Logger:        logger,
		Metrics:       sessionMetrics,
	})

	app.SessionCLI = sessioninadapter.NewCLIHandler(controller)
	app.SessionTUI = sessioninadapter.NewTUIHandler(controller)
	app.WorkoutTUI = workoutinadapter.NewTUIHandler(workoutUC)
	return app, nil
}

func newWorkoutStore(ctx context.Context, kind string) (workoutout.WorkoutStore, error) {
	switch kind {
	case config.StoreSQLite:
		store, err := workoutoutadapter.NewSQLiteWorkoutStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("new sqlite workout store: %w", err)
		}
		return store, nil
	default:
		return workoutoutadapter.NewMemoryWorkoutStore(), nil
	}
}

// Close releases the store and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(ctx context.Context, app *App) error {
	if app.Form == nil || app.Status == nil {
		return errors.New("terminal ui needs an app built without Headless")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if addr := app.Config.MetricsAddr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, app.Registry); err != nil {
				app.Logger.Error("metrics server stopped", "addr", addr, "error", err)
			}
		}()
		app.Logger.Info("serving metrics", "addr", addr)
	}

	model := uiapp.NewModel(uiapp.Deps{
		Session:  app.SessionTUI,
		Workouts: app.WorkoutTUI,
		Surface:  app.Surface,
		Form:     app.Form,
		Status:   app.Status,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
