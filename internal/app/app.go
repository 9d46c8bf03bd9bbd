// Package app wires the dataset, the forecast service and the chart
// renderer into a single one-shot analysis run.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/farnsworth3010/revenue-forecast/internal/config"
	"github.com/farnsworth3010/revenue-forecast/internal/dataset"
	"github.com/farnsworth3010/revenue-forecast/internal/models"
	"github.com/farnsworth3010/revenue-forecast/internal/services/forecast"
	"github.com/farnsworth3010/revenue-forecast/internal/services/forecast/linear"
	"github.com/farnsworth3010/revenue-forecast/internal/services/forecast/seasonal"
	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
	"github.com/farnsworth3010/revenue-forecast/pkg/chart"
)

type Renderer interface {
	Render(*timeseries.Series, *models.Report) (string, error)
}

type App struct {
	log        *slog.Logger
	cfg        *config.Config
	forecaster *forecast.Service
	renderer   Renderer
	out        io.Writer
}

func New(log *slog.Logger, cfg *config.Config) *App {
	forecaster := forecast.New(
		log,
		linear.New(),
		seasonal.New(seasonal.Config{
			Drift:         cfg.Seasonal.Drift,
			MaxIterations: cfg.Seasonal.MaxIterations,
			Tolerance:     cfg.Seasonal.Tolerance,
		}),
		cfg.Forecast.Horizon,
		cfg.Forecast.ConfidenceLevel,
	)

	return &App{
		log:        log,
		cfg:        cfg,
		forecaster: forecaster,
		renderer:   chart.New(cfg.Output.Dir, cfg.Output.File),
		out:        os.Stdout,
	}
}

// MustRun runs the analysis and panics if any error occurs.
func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "app.Run"

	log := a.log.With(slog.String("op", op))

	series, err := a.loadSeries()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("revenue series loaded", slog.Int("observations", series.Len()))

	report, err := a.forecaster.Analyze(series)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, fc := range report.Forecasts {
		fmt.Fprintf(a.out, "Revenue forecast for month %d (linear trend): %.2f mln RUB\n", fc.Month, fc.Linear)
		fmt.Fprintf(a.out, "Revenue forecast for month %d (seasonal trend): %.2f mln RUB\n", fc.Month, fc.Seasonal)
	}

	path, err := a.renderer.Render(series, report)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("chart saved", slog.String("path", path))

	return nil
}

func (a *App) loadSeries() (*timeseries.Series, error) {
	obs := dataset.Default()
	if a.cfg.Data.CSVPath != "" {
		loaded, err := dataset.FromCSV(a.cfg.Data.CSVPath)
		if err != nil {
			return nil, err
		}
		obs = loaded
		a.log.Info("revenue series loaded from csv", slog.String("path", a.cfg.Data.CSVPath))
	}
	return timeseries.FromObservations(obs)
}
