// Package app implements the application layer for chroma.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/chroma/internal/adapters/config"
	"go.trai.ch/chroma/internal/adapters/memo"
	"go.trai.ch/chroma/internal/adapters/report"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/chroma/internal/engine/computer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	settings ports.SettingsLoader
	records  ports.RecordSource
	computer *computer.Computer
	watcher  ports.Watcher
	logger   ports.Logger
	metrics  prometheus.Gatherer
	stdout   io.Writer
	renderer ports.Renderer
}

// New creates a new App instance.
func New(
	settings ports.SettingsLoader,
	records ports.RecordSource,
	comp *computer.Computer,
	watcher ports.Watcher,
	log ports.Logger,
	metrics prometheus.Gatherer,
) *App {
	return &App{
		settings: settings,
		records:  records,
		computer: comp,
		watcher:  watcher,
		logger:   log,
		metrics:  metrics,
		stdout:   os.Stdout,
	}
}

// WithOutput redirects rendered views to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithRenderer forces a renderer regardless of the requested format.
// This is primarily used for testing.
func (a *App) WithRenderer(r ports.Renderer) *App {
	a.renderer = r
	return a
}

// View selects what a command renders.
type View int

const (
	// ViewTable renders the derived table.
	ViewTable View = iota
	// ViewPlot renders the plot value.
	ViewPlot
)

// Options configures one invocation.
type Options struct {
	// ConfigPath is the settings file; empty selects chroma.yaml.
	ConfigPath string
	Format     report.Format
	// Overrides are applied to the loaded settings in order.
	Overrides []func(*domain.Settings)
	// Metrics logs memo statistics after rendering.
	Metrics bool
}

// Table renders the derived table of the records at path.
func (a *App) Table(ctx context.Context, path string, opts Options) error {
	return a.render(ctx, path, ViewTable, opts)
}

// Plot renders the plot value of the records at path.
func (a *App) Plot(ctx context.Context, path string, opts Options) error {
	return a.render(ctx, path, ViewPlot, opts)
}

func (a *App) render(ctx context.Context, path string, view View, opts Options) error {
	s, err := a.loadSettings(opts)
	if err != nil {
		return err
	}
	raw, err := a.records.Load(ctx, path)
	if err != nil {
		return zerr.Wrap(err, "failed to load records")
	}
	if err := a.show(ctx, raw, s, view, opts.Format); err != nil {
		return err
	}
	if opts.Metrics {
		a.logMetrics()
	}
	return nil
}

// Watch renders view once and again whenever the records or the settings
// file change, until ctx is done. Failed reloads are logged and the last good
// inputs are kept.
//
//nolint:cyclop // event loop
func (a *App) Watch(ctx context.Context, path string, view View, opts Options) error {
	s, err := a.loadSettings(opts)
	if err != nil {
		return err
	}
	raw, err := a.records.Load(ctx, path)
	if err != nil {
		return zerr.Wrap(err, "failed to load records")
	}
	if err := a.show(ctx, raw, s, view, opts.Format); err != nil {
		return err
	}

	recordsPath, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve records path"), "path", path)
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultFilename
	}
	configPath, err = filepath.Abs(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve settings path"), "path", opts.ConfigPath)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	if err := a.watcher.Start(ctx, recordsPath, configPath); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	a.logger.Info(fmt.Sprintf("watching %s", path))

	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})

	g.Go(func() error {
		// The watcher may end on its own; release the stopper then.
		defer cancel()
		for event := range a.watcher.Events() {
			if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
				a.logger.Warn(fmt.Sprintf("%s was removed, keeping last view", event.Path))
				continue
			}

			switch event.Path {
			case configPath:
				next, err := a.loadSettings(opts)
				if err != nil {
					a.logger.Error(err)
					continue
				}
				s = next
			case recordsPath:
				next, err := a.records.Load(ctx, path)
				if err != nil {
					a.logger.Error(zerr.Wrap(err, "failed to reload records"))
					continue
				}
				raw = next
			default:
				continue
			}

			if err := a.show(ctx, raw, s, view, opts.Format); err != nil {
				a.logger.Error(err)
			}
			if opts.Metrics {
				a.logMetrics()
			}
		}
		return nil
	})

	return g.Wait()
}

func (a *App) loadSettings(opts Options) (domain.Settings, error) {
	s, err := a.settings.Load(opts.ConfigPath)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load settings")
	}
	for _, override := range opts.Overrides {
		override(&s)
	}
	if err := s.Validate(); err != nil {
		return domain.Settings{}, zerr.Wrap(err, "invalid settings")
	}
	return s, nil
}

func (a *App) show(ctx context.Context, raw domain.RawTable, s domain.Settings, view View, format report.Format) error {
	renderer := a.renderer
	if renderer == nil {
		renderer = report.New(format)
	}

	if view == ViewPlot {
		_, plot, err := a.computer.View(ctx, raw, s)
		if err != nil {
			return zerr.Wrap(err, "failed to compute plot")
		}
		return renderer.RenderPlot(a.stdout, plot, s)
	}

	table, err := a.computer.Table(ctx, raw, s)
	if err != nil {
		return zerr.Wrap(err, "failed to compute table")
	}
	return renderer.RenderTable(a.stdout, table, s)
}

func (a *App) logMetrics() {
	stats, err := memo.Snapshot(a.metrics)
	if err != nil {
		a.logger.Error(err)
		return
	}
	for _, st := range stats {
		a.logger.Info(fmt.Sprintf("memo %s: %d hits, %d misses, %d evictions", st.Stage, st.Hits, st.Misses, st.Evictions))
	}
}
