// Package linear fits a straight-line trend by ordinary least squares.
package linear

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
	"github.com/farnsworth3010/revenue-forecast/internal/services/forecast/stats"
	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
)

var (
	ErrTooFewPoints = errors.New("need at least two observations")
	ErrDegenerate   = errors.New("all month indices are equal")
)

type Fitter struct{}

func New() *Fitter {
	return &Fitter{}
}

// Fit estimates slope and intercept minimizing the sum of squared
// residuals over the series.
func (f *Fitter) Fit(s *timeseries.Series) (models.LinearModel, error) {
	const op = "linear.Fit"

	if s == nil || s.Len() < 2 {
		return models.LinearModel{}, fmt.Errorf("%s: %w", op, ErrTooFewPoints)
	}
	if degenerate(s.Months) {
		return models.LinearModel{}, fmt.Errorf("%s: %w", op, ErrDegenerate)
	}

	alpha, beta := stat.LinearRegression(s.Months, s.Values, nil, false)

	m := models.LinearModel{Slope: beta, Intercept: alpha}
	m.Quality = stats.Evaluate(s, m.Eval)
	return m, nil
}

// ConfidenceInterval вычисляет доверительный интервал прогноза модели
// в точке t для заданного уровня значимости (0.90, 0.95 или 0.99).
func ConfidenceInterval(m models.LinearModel, s *timeseries.Series, t, confidenceLevel float64) models.Interval {
	n := float64(s.Len())
	pred := m.Eval(t)
	if n <= 2 {
		return models.Interval{Lower: pred, Upper: pred}
	}

	meanX := 0.0
	for _, x := range s.Months {
		meanX += x
	}
	meanX /= n

	sumSqDevX := 0.0
	sumSqResiduals := 0.0
	for i, x := range s.Months {
		sumSqDevX += (x - meanX) * (x - meanX)
		r := s.Values[i] - m.Eval(x)
		sumSqResiduals += r * r
	}

	standardError := math.Sqrt(sumSqResiduals / (n - 2))

	// приближение t-статистики Стьюдента
	tStat := 2.0
	switch confidenceLevel {
	case 0.99:
		tStat = 2.58
	case 0.90:
		tStat = 1.64
	}

	predictionStdError := standardError * math.Sqrt(1+1/n+(t-meanX)*(t-meanX)/sumSqDevX)
	margin := tStat * predictionStdError

	return models.Interval{
		Lower: pred - margin,
		Upper: pred + margin,
	}
}

func degenerate(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
