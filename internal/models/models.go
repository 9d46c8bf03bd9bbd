package models

import "math"

// Observation is a single point of the revenue history: the month index
// (1-based) and the revenue for that month in mln RUB.
type Observation struct {
	Month   int
	Revenue float64
}

// LinearModel holds the parameters of a fitted straight-line trend
// y = Slope*t + Intercept.
type LinearModel struct {
	Slope     float64
	Intercept float64
	Quality   FitQuality
}

// Eval returns the model value at month index t.
func (m LinearModel) Eval(t float64) float64 {
	return m.Slope*t + m.Intercept
}

// SeasonalModel holds the parameters of a fitted sinusoidal trend
// y = Offset + Amplitude*sin(Omega*t + Phase) + Drift*t.
// Drift is zero unless the fitter was configured with a drift term.
type SeasonalModel struct {
	Amplitude float64
	Omega     float64
	Phase     float64
	Offset    float64
	Drift     float64

	Iterations int
	Quality    FitQuality
}

// Eval returns the model value at month index t.
func (m SeasonalModel) Eval(t float64) float64 {
	return m.Offset + m.Amplitude*math.Sin(m.Omega*t+m.Phase) + m.Drift*t
}

// FitQuality содержит метрики качества подгонки модели к данным.
type FitQuality struct {
	SSE  float64 // сумма квадратов остатков
	RMSE float64
	R2   float64 // коэффициент детерминации
}

// Interval is a two-sided confidence interval for a forecast value.
type Interval struct {
	Lower float64
	Upper float64
}

// Forecast is the projected revenue for one future month under both
// fitted models. The confidence interval applies to the linear value.
type Forecast struct {
	Month    int
	Linear   float64
	LinearCI Interval
	Seasonal float64
}

// Report is the result of one analysis run: both fitted models and the
// forecasts for the requested horizon.
type Report struct {
	Linear    LinearModel
	Seasonal  SeasonalModel
	Forecasts []Forecast
}
