// Package stats computes fit-quality metrics used to compare the
// candidate trend models.
package stats

import (
	"math"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
)

// Evaluate считает метрики качества подгонки: сумму квадратов остатков,
// RMSE и коэффициент детерминации модели eval на ряде s.
func Evaluate(s *timeseries.Series, eval func(float64) float64) models.FitQuality {
	if s == nil || s.Len() == 0 {
		return models.FitQuality{}
	}

	sse := 0.0
	for i, t := range s.Months {
		r := s.Values[i] - eval(t)
		sse += r * r
	}

	mean := s.Mean()
	sst := 0.0
	for _, v := range s.Values {
		d := v - mean
		sst += d * d
	}

	q := models.FitQuality{
		SSE:  sse,
		RMSE: math.Sqrt(sse / float64(s.Len())),
	}
	if sst > 0 {
		q.R2 = 1 - sse/sst
	}
	return q
}
