// Package forecast fits both candidate trend models to a revenue series
// and projects future months under each of them.
package forecast

import (
	"fmt"
	"log/slog"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
	"github.com/farnsworth3010/revenue-forecast/internal/services/forecast/linear"
	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
)

type LinearFitter interface {
	Fit(*timeseries.Series) (models.LinearModel, error)
}

type SeasonalFitter interface {
	Fit(*timeseries.Series) (models.SeasonalModel, error)
}

type Service struct {
	log      *slog.Logger
	linear   LinearFitter
	seasonal SeasonalFitter

	horizon         int
	confidenceLevel float64
}

func New(
	log *slog.Logger,
	linearFitter LinearFitter,
	seasonalFitter SeasonalFitter,
	horizon int,
	confidenceLevel float64,
) *Service {
	if horizon < 1 {
		horizon = 1
	}
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = 0.95
	}
	return &Service{
		log:             log,
		linear:          linearFitter,
		seasonal:        seasonalFitter,
		horizon:         horizon,
		confidenceLevel: confidenceLevel,
	}
}

// Analyze fits both models to the series and evaluates them at the
// months following the observed range. Evaluation is pure: calling
// Analyze twice on the same series yields identical reports.
func (s *Service) Analyze(series *timeseries.Series) (*models.Report, error) {
	const op = "forecast.Analyze"

	log := s.log.With(slog.String("op", op))

	lin, err := s.linear.Fit(series)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("linear trend fitted",
		slog.Float64("slope", lin.Slope),
		slog.Float64("intercept", lin.Intercept),
		slog.Float64("r2", lin.Quality.R2),
	)

	seas, err := s.seasonal.Fit(series)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("seasonal trend fitted",
		slog.Float64("amplitude", seas.Amplitude),
		slog.Float64("omega", seas.Omega),
		slog.Float64("phase", seas.Phase),
		slog.Float64("offset", seas.Offset),
		slog.Int("iterations", seas.Iterations),
		slog.Float64("r2", seas.Quality.R2),
	)

	report := &models.Report{
		Linear:    lin,
		Seasonal:  seas,
		Forecasts: make([]models.Forecast, 0, s.horizon),
	}

	next := series.NextMonth()
	for h := 0; h < s.horizon; h++ {
		month := next + h
		t := float64(month)
		report.Forecasts = append(report.Forecasts, models.Forecast{
			Month:    month,
			Linear:   lin.Eval(t),
			LinearCI: linear.ConfidenceInterval(lin, series, t, s.confidenceLevel),
			Seasonal: seas.Eval(t),
		})
	}

	return report, nil
}
