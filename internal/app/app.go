package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ActionCountdown/internal/calendar"
	"ActionCountdown/internal/config"
	"ActionCountdown/internal/infrastructure/cache"
	"ActionCountdown/internal/infrastructure/scheduler"
	"ActionCountdown/internal/infrastructure/sheets"
	"ActionCountdown/internal/logging"
	"ActionCountdown/internal/ports"
	"ActionCountdown/internal/tui"
	"ActionCountdown/internal/usecase"
	"ActionCountdown/internal/view/masonry"
	"ActionCountdown/internal/web"
)

const stopTimeout = 5 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	source   ports.ItemSource
	cache    *cache.Revalidating
	calendar *calendar.Calendar
	arranger *masonry.Arranger
	pages    *usecase.Pages
	renderer *web.Renderer
}

// New builds the application graph for cfg.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	client := sheets.NewClient(&http.Client{}, cfg.Source.CSVURL, cfg.Source.Timeout)
	source := sheets.NewSource(client, baseLogger.With("component", "sheets"))
	return newWithSource(cfg, baseLogger, source)
}

func newWithSource(cfg config.Config, baseLogger *slog.Logger, source ports.ItemSource) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	renderer, err := web.NewRenderer(cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	revalidating := cache.NewRevalidating(source, cfg.Source.Revalidate)
	cal := calendar.New(cfg.Campaign.Start(), cfg.Campaign.Location(), nil)
	arranger := masonry.NewArranger(time.Now().UnixNano())

	pages := usecase.NewPages(usecase.PagesDeps{
		Source:   revalidating,
		Calendar: cal,
		Arranger: arranger,
		Logger:   baseLogger.With("component", "pages"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		source:   source,
		cache:    revalidating,
		calendar: cal,
		arranger: arranger,
		pages:    pages,
		renderer: renderer,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	srv := web.NewServer(a.pages, a.renderer, web.Options{
		Site:       a.cfg.Site,
		Revalidate: a.cfg.Source.Revalidate,
		Logger:     a.logger.With("component", "web"),
	})
	return srv.ListenAndServe(ctx, a.cfg.Server.Addr)
}

// Export writes the static site once.
func (a *Application) Export(ctx context.Context, dir string) error {
	return a.exporter().Export(ctx, a.exportDir(dir))
}

// Watch re-exports on every revalidation interval until ctx is cancelled.
// Failed runs are logged and retried on the next tick.
func (a *Application) Watch(ctx context.Context, dir string) error {
	dir = a.exportDir(dir)
	exporter := a.exporter()

	job := func(ctx context.Context, _ time.Time) error {
		a.cache.Invalidate()
		return exporter.Export(ctx, dir)
	}
	sched := usecase.NewScheduler(
		scheduler.NewTicker(a.cfg.Source.Revalidate),
		job,
		a.logger.With("component", "export.watch"),
	)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start watch: %w", err)
	}
	a.logger.Info("watching", "dir", dir, "every", a.cfg.Source.Revalidate)

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()
	return sched.Stop(stopCtx)
}

// TUI runs the terminal interface. It fetches through the source directly so
// the refresh key always reaches the sheet.
func (a *Application) TUI(ctx context.Context, opener ports.Opener, opts ...tea.ProgramOption) error {
	return tui.Run(ctx, tui.Deps{
		Title:    a.cfg.Site.Title,
		Source:   a.source,
		Calendar: a.calendar,
		Arranger: a.arranger,
		Opener:   opener,
		Logger:   a.logger.With("component", "tui"),
	}, opts...)
}

func (a *Application) exporter() *web.Exporter {
	return web.NewExporter(a.pages, a.renderer, a.cfg.Site, a.logger.With("component", "export"))
}

func (a *Application) exportDir(dir string) string {
	if dir == "" {
		return a.cfg.Export.Dir
	}
	return dir
}
