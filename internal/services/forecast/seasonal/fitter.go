// Package seasonal fits a sinusoidal trend y = offset + amp*sin(w*t + phi)
// by nonlinear least squares (Levenberg-Marquardt with analytic Jacobian).
// An optional linear drift term models growth on top of the seasonal cycle.
package seasonal

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/farnsworth3010/revenue-forecast/internal/models"
	"github.com/farnsworth3010/revenue-forecast/internal/services/forecast/stats"
	"github.com/farnsworth3010/revenue-forecast/internal/timeseries"
)

const (
	defaultMaxIterations = 200
	defaultTolerance     = 1e-9

	initialDamping = 1e-3
	maxDamping     = 1e12
)

var ErrNoConvergence = errors.New("seasonal fit did not converge")

type Config struct {
	Drift         bool
	MaxIterations int
	Tolerance     float64
}

type Fitter struct {
	cfg Config
}

func New(cfg Config) *Fitter {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = defaultTolerance
	}
	return &Fitter{cfg: cfg}
}

// Fit estimates the sinusoid parameters minimizing the sum of squared
// residuals. The initial guess is derived from the series itself:
// offset = mean, amplitude = half the value range, one full cycle over
// the observed months, zero phase and drift. The procedure is fully
// deterministic for a given series.
func (f *Fitter) Fit(s *timeseries.Series) (models.SeasonalModel, error) {
	const op = "seasonal.Fit"

	p := f.paramCount()
	if s == nil || s.Len() < p {
		return models.SeasonalModel{}, fmt.Errorf("%s: need at least %d observations", op, p)
	}

	theta := f.initialGuess(s)

	sse := f.sumSquares(theta, s)
	lambda := initialDamping
	n := s.Len()

	jac := mat.NewDense(n, p, nil)
	resid := mat.NewVecDense(n, nil)
	jtj := mat.NewDense(p, p, nil)
	jtr := mat.NewVecDense(p, nil)

	iterations := 0
	improved := false
	done := false

	for iter := 0; iter < f.cfg.MaxIterations && !done; iter++ {
		iterations = iter + 1

		for i := 0; i < n; i++ {
			t := s.Months[i]
			resid.SetVec(i, s.Values[i]-f.eval(theta, t))
			f.jacobianRow(jac, i, theta, t)
		}

		jtj.Mul(jac.T(), jac)
		for i := 0; i < p; i++ {
			jtj.Set(i, i, jtj.At(i, i)+lambda)
		}
		jtr.MulVec(jac.T(), resid)

		var delta mat.VecDense
		if err := delta.SolveVec(jtj, jtr); err != nil {
			lambda *= 10
			done = lambda > maxDamping
			continue
		}

		trial := make([]float64, p)
		finite := true
		for i := range theta {
			trial[i] = theta[i] + delta.AtVec(i)
			if math.IsNaN(trial[i]) || math.IsInf(trial[i], 0) {
				finite = false
			}
		}
		if !finite {
			lambda *= 10
			done = lambda > maxDamping
			continue
		}

		trialSSE := f.sumSquares(trial, s)
		if trialSSE < sse {
			improvement := sse - trialSSE
			theta = trial
			sse = trialSSE
			improved = true
			lambda = math.Max(lambda/10, 1e-12)
			if improvement <= f.cfg.Tolerance*(sse+f.cfg.Tolerance) {
				done = true
			}
		} else {
			// no improvement along the damped step: raise damping and
			// retry; an exploded lambda means a (local) minimum
			lambda *= 10
			done = lambda > maxDamping
		}
	}

	if !improved {
		return models.SeasonalModel{}, fmt.Errorf("%s after %d iterations: %w", op, iterations, ErrNoConvergence)
	}

	m := models.SeasonalModel{
		Offset:     theta[0],
		Amplitude:  theta[1],
		Omega:      theta[2],
		Phase:      theta[3],
		Iterations: iterations,
	}
	if f.cfg.Drift {
		m.Drift = theta[4]
	}
	m.Quality = stats.Evaluate(s, m.Eval)
	return m, nil
}

func (f *Fitter) paramCount() int {
	if f.cfg.Drift {
		return 5
	}
	return 4
}

// initialGuess mirrors the textbook heuristic: baseline at the mean,
// amplitude at half the range, angular frequency of one cycle over the
// observed span.
func (f *Fitter) initialGuess(s *timeseries.Series) []float64 {
	amp := (s.Max() - s.Min()) / 2
	if amp == 0 {
		amp = 1
	}
	theta := []float64{s.Mean(), amp, 2 * math.Pi / float64(s.Len()), 0}
	if f.cfg.Drift {
		theta = append(theta, 0)
	}
	return theta
}

func (f *Fitter) eval(theta []float64, t float64) float64 {
	v := theta[0] + theta[1]*math.Sin(theta[2]*t+theta[3])
	if f.cfg.Drift {
		v += theta[4] * t
	}
	return v
}

func (f *Fitter) jacobianRow(jac *mat.Dense, i int, theta []float64, t float64) {
	arg := theta[2]*t + theta[3]
	sin, cos := math.Sincos(arg)

	jac.Set(i, 0, 1)
	jac.Set(i, 1, sin)
	jac.Set(i, 2, theta[1]*t*cos)
	jac.Set(i, 3, theta[1]*cos)
	if f.cfg.Drift {
		jac.Set(i, 4, t)
	}
}

func (f *Fitter) sumSquares(theta []float64, s *timeseries.Series) float64 {
	sse := 0.0
	for i, t := range s.Months {
		r := s.Values[i] - f.eval(theta, t)
		sse += r * r
	}
	return sse
}

